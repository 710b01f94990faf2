package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hitoshi/songbook/internal/model"
)

// pqUniqueViolation はPostgreSQLの一意制約違反エラーコード。
const pqUniqueViolation = "23505"

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	var profile []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT username, profile, created_at, updated_at FROM users WHERE username = $1`,
		username,
	).Scan(&user.Username, &profile, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	if err := json.Unmarshal(profile, &user.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
	}

	return user, nil
}

// List は全ユーザーを登録順で返す。
func (r *PostgresUserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT username, profile, created_at, updated_at FROM users ORDER BY created_at, username`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user := &model.User{}
		var profile []byte
		if err := rows.Scan(&user.Username, &profile, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		if err := json.Unmarshal(profile, &user.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// Create はユーザーを作成する。
// ユーザー名の一意性はPRIMARY KEY制約で担保し、違反時はAPIErrorに変換する。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	profile, err := json.Marshal(user.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (username, profile, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)`,
		user.Username, profile, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return model.NewDuplicateUsernameError(user.Username)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
