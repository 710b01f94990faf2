package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/songbook/internal/model"
)

// PostgresTokenRepo はPostgreSQLを使用したトークンリポジトリ。
type PostgresTokenRepo struct {
	db *sql.DB
}

// NewPostgresTokenRepo はPostgresTokenRepoを生成する。
func NewPostgresTokenRepo(db *sql.DB) *PostgresTokenRepo {
	return &PostgresTokenRepo{db: db}
}

// FindByValue は指定値のトークンを取得する。
// 見つからない場合および期限切れの場合はnilを返す。
// 失効の物理削除はワーカーに任せ、読み取りはクエリ条件で除外する。
func (r *PostgresTokenRepo) FindByValue(ctx context.Context, value string) (*model.Token, error) {
	token := &model.Token{}
	var username, songID sql.NullString
	var expiresAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT token, username, song_id, expires_at, created_at FROM tokens
		 WHERE token = $1 AND (expires_at IS NULL OR expires_at > now())`,
		value,
	).Scan(&token.Value, &username, &songID, &expiresAt, &token.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find token by value: %w", err)
	}

	token.Username = username.String
	token.SongID = songID.String
	if expiresAt.Valid {
		t := expiresAt.Time
		token.ExpiresAt = &t
	}

	return token, nil
}

// List は全トークンを発行順で返す。期限切れのトークンは含まない。
func (r *PostgresTokenRepo) List(ctx context.Context) ([]*model.Token, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT token, username, song_id, expires_at, created_at FROM tokens
		 WHERE expires_at IS NULL OR expires_at > now()
		 ORDER BY created_at, token`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	tokens := []*model.Token{}
	for rows.Next() {
		token := &model.Token{}
		var username, songID sql.NullString
		var expiresAt sql.NullTime
		if err := rows.Scan(&token.Value, &username, &songID, &expiresAt, &token.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan token row: %w", err)
		}
		token.Username = username.String
		token.SongID = songID.String
		if expiresAt.Valid {
			t := expiresAt.Time
			token.ExpiresAt = &t
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate token rows: %w", err)
	}

	return tokens, nil
}

// Create はトークンを作成し、token.Valueに生成した一意な値を設定する。
func (r *PostgresTokenRepo) Create(ctx context.Context, token *model.Token) error {
	token.Value = uuid.New().String()
	token.CreatedAt = time.Now()

	var username, songID sql.NullString
	if token.Username != "" {
		username = sql.NullString{String: token.Username, Valid: true}
	}
	if token.SongID != "" {
		songID = sql.NullString{String: token.SongID, Valid: true}
	}

	var expiresAt sql.NullTime
	if token.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *token.ExpiresAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tokens (token, username, song_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		token.Value, username, songID, expiresAt, token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}

	return nil
}

// DeleteExpired は期限切れトークンを物理削除し、削除件数を返す。
// 冪等: 削除対象がない場合でもエラーにならない。
func (r *PostgresTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE expires_at IS NOT NULL AND expires_at <= now()`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// compile-time interface check
var _ TokenRepository = (*PostgresTokenRepo)(nil)
