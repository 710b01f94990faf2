package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hitoshi/songbook/internal/model"
)

// pqForeignKeyViolation はPostgreSQLの外部キー制約違反エラーコード。
const pqForeignKeyViolation = "23503"

// PostgresSongRepo はPostgreSQLを使用した楽曲リポジトリ。
type PostgresSongRepo struct {
	db *sql.DB
}

// NewPostgresSongRepo はPostgresSongRepoを生成する。
func NewPostgresSongRepo(db *sql.DB) *PostgresSongRepo {
	return &PostgresSongRepo{db: db}
}

// FindByID は指定IDの楽曲を取得する。見つからない場合はnilを返す。
func (r *PostgresSongRepo) FindByID(ctx context.Context, id string) (*model.Song, error) {
	song := &model.Song{}
	var attrs []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner, attrs, created_at, updated_at FROM songs WHERE id = $1`,
		id,
	).Scan(&song.ID, &song.Owner, &attrs, &song.CreatedAt, &song.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find song by id: %w", err)
	}

	if err := json.Unmarshal(attrs, &song.Attrs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal song attrs: %w", err)
	}

	return song, nil
}

// List は全楽曲を登録順で返す。
func (r *PostgresSongRepo) List(ctx context.Context) ([]*model.Song, error) {
	return r.query(ctx,
		`SELECT id, owner, attrs, created_at, updated_at FROM songs ORDER BY created_at, id`,
	)
}

// ListByOwner は指定ユーザーが所有する楽曲を登録順で返す。
func (r *PostgresSongRepo) ListByOwner(ctx context.Context, owner string) ([]*model.Song, error) {
	return r.query(ctx,
		`SELECT id, owner, attrs, created_at, updated_at FROM songs WHERE owner = $1 ORDER BY created_at, id`,
		owner,
	)
}

// Create は楽曲を作成し、song.IDに採番したUUIDを設定する。
// ownerの参照整合性は外部キー制約で担保し、違反時はAPIErrorに変換する。
func (r *PostgresSongRepo) Create(ctx context.Context, song *model.Song) error {
	attrs, err := json.Marshal(song.Attrs)
	if err != nil {
		return fmt.Errorf("failed to marshal song attrs: %w", err)
	}

	now := time.Now()
	song.ID = uuid.New().String()
	song.CreatedAt = now
	song.UpdatedAt = now

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO songs (id, owner, attrs, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		song.ID, song.Owner, attrs, song.CreatedAt, song.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return model.NewUnknownOwnerError(song.Owner)
		}
		return fmt.Errorf("failed to insert song: %w", err)
	}

	return nil
}

// Update は既存楽曲の属性を上書き更新する。ownerは変更しない。
func (r *PostgresSongRepo) Update(ctx context.Context, song *model.Song) error {
	attrs, err := json.Marshal(song.Attrs)
	if err != nil {
		return fmt.Errorf("failed to marshal song attrs: %w", err)
	}

	song.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx,
		`UPDATE songs SET attrs = $2, updated_at = $3 WHERE id = $1`,
		song.ID, attrs, song.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewSongNotFoundError(song.ID)
	}

	return nil
}

// query は楽曲行を読み出す共通処理。
func (r *PostgresSongRepo) query(ctx context.Context, q string, args ...any) ([]*model.Song, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []*model.Song{}
	for rows.Next() {
		song := &model.Song{}
		var attrs []byte
		if err := rows.Scan(&song.ID, &song.Owner, &attrs, &song.CreatedAt, &song.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan song row: %w", err)
		}
		if err := json.Unmarshal(attrs, &song.Attrs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal song attrs: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate song rows: %w", err)
	}

	return songs, nil
}

// compile-time interface check
var _ SongRepository = (*PostgresSongRepo)(nil)
