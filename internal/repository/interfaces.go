// Package repository はデータ永続化のインターフェースを定義する。
// 各リソースはこのパッケージのインターフェースを通じてのみストレージに
// アクセスし、具体的な永続化技術には依存しない。
package repository

import (
	"context"

	"github.com/hitoshi/songbook/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByUsername は指定ユーザー名のユーザーを取得する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// List は全ユーザーを登録順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// Create はユーザーを作成する。
	// ユーザー名が重複している場合はmodel.ErrCodeDuplicateUsernameのAPIErrorを返す。
	Create(ctx context.Context, user *model.User) error
}

// SongRepository は楽曲データの永続化インターフェース。
type SongRepository interface {
	// FindByID は指定IDの楽曲を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Song, error)

	// List は全楽曲を登録順で返す。
	List(ctx context.Context) ([]*model.Song, error)

	// ListByOwner は指定ユーザーが所有する楽曲を登録順で返す。
	// 所有楽曲がない場合は空スライスを返す。所有者の存在確認は行わない。
	ListByOwner(ctx context.Context, owner string) ([]*model.Song, error)

	// Create は楽曲を作成し、song.IDに採番したIDを設定する。
	// ownerが存在しないユーザーを参照している場合は
	// model.ErrCodeUnknownOwnerのAPIErrorを返す。
	Create(ctx context.Context, song *model.Song) error

	// Update は既存楽曲の属性を上書き更新する。ownerは変更しない。
	// 対象が存在しない場合はmodel.ErrCodeSongNotFoundのAPIErrorを返す。
	Update(ctx context.Context, song *model.Song) error
}

// TokenRepository はトークンデータの永続化インターフェース。
type TokenRepository interface {
	// FindByValue は指定値のトークンを取得する。
	// 見つからない場合および期限切れの場合はnilを返す。
	FindByValue(ctx context.Context, value string) (*model.Token, error)

	// List は全トークンを発行順で返す。期限切れのトークンは含まない。
	List(ctx context.Context) ([]*model.Token, error)

	// Create はトークンを作成し、token.Valueに生成した一意な値を設定する。
	Create(ctx context.Context, token *model.Token) error

	// DeleteExpired は期限切れトークンを物理削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}
