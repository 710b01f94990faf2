// Package song は楽曲管理のドメインロジックを提供する。
package song

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/songbook/internal/model"
	"github.com/hitoshi/songbook/internal/repository"
	"github.com/hitoshi/songbook/internal/security"
)

// Service は楽曲管理のサービス層。
// 楽曲の登録、取得、一覧、所有者別一覧、更新のビジネスロジックを提供する。
type Service struct {
	songRepo  repository.SongRepository
	userRepo  repository.UserRepository
	sanitizer security.FieldSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	songRepo repository.SongRepository,
	userRepo repository.UserRepository,
	sanitizer security.FieldSanitizerService,
) *Service {
	return &Service{
		songRepo:  songRepo,
		userRepo:  userRepo,
		sanitizer: sanitizer,
	}
}

// CreateSong はリクエストフィールドから楽曲を作成する。
// ownerは必須で、登録済みユーザーを参照していなければならない。
// owner以外のフィールドは楽曲属性として不透明に保存し、IDはゲートウェイが採番する。
func (s *Service) CreateSong(ctx context.Context, fields map[string]any) (*model.Song, error) {
	owner, _ := fields["owner"].(string)
	if owner == "" {
		return nil, model.NewMissingFieldError("owner")
	}

	// 事前チェックで未登録ownerを検出する。同時リクエストの競合は
	// リポジトリの外部キー制約違反で同じエラーに落ちる。
	user, err := s.userRepo.FindByUsername(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("ownerの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUnknownOwnerError(owner)
	}

	attrs := s.sanitizer.SanitizeFields(fields)
	delete(attrs, "owner")

	song := &model.Song{
		Owner: owner,
		Attrs: attrs,
	}

	if err := s.songRepo.Create(ctx, song); err != nil {
		return nil, err
	}

	slog.Info("楽曲を作成しました",
		slog.String("song_id", song.ID),
		slog.String("owner", song.Owner),
	)

	return song, nil
}

// GetSong は指定IDの楽曲を返す。見つからない場合は未検出エラーを返す。
func (s *Service) GetSong(ctx context.Context, id string) (*model.Song, error) {
	song, err := s.songRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("楽曲の取得に失敗しました: %w", err)
	}
	if song == nil {
		return nil, model.NewSongNotFoundError(id)
	}
	return song, nil
}

// ListSongs は全楽曲を登録順で返す。
func (s *Service) ListSongs(ctx context.Context) ([]*model.Song, error) {
	songs, err := s.songRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("楽曲一覧の取得に失敗しました: %w", err)
	}
	return songs, nil
}

// ListByOwner は指定ユーザーが所有する楽曲を登録順で返す。
// ユーザーが存在しない場合はユーザー未検出エラーを返す。
// 存在するユーザーに所有楽曲がない場合は空スライスを返す。
func (s *Service) ListByOwner(ctx context.Context, username string) ([]*model.Song, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError(username)
	}

	songs, err := s.songRepo.ListByOwner(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("所有楽曲一覧の取得に失敗しました: %w", err)
	}
	return songs, nil
}

// UpdateSong は指定IDの楽曲属性を上書き更新する。
// ownerはルックアップキーのため変更できず、リクエスト中のowner指定は無視する。
func (s *Service) UpdateSong(ctx context.Context, id string, fields map[string]any) (*model.Song, error) {
	song, err := s.songRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("楽曲の取得に失敗しました: %w", err)
	}
	if song == nil {
		return nil, model.NewSongNotFoundError(id)
	}

	attrs := s.sanitizer.SanitizeFields(fields)
	delete(attrs, "owner")
	delete(attrs, "id")
	song.Attrs = attrs

	if err := s.songRepo.Update(ctx, song); err != nil {
		return nil, err
	}

	slog.Info("楽曲を更新しました",
		slog.String("song_id", song.ID),
	)

	return song, nil
}
