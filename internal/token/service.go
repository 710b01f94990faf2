// Package token は認可トークンの発行と解決のドメインロジックを提供する。
package token

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/songbook/internal/model"
	"github.com/hitoshi/songbook/internal/repository"
)

// ServiceConfig はトークンサービスの設定。
type ServiceConfig struct {
	// TokenTTL は新規トークンのデフォルト有効期間。0の場合は失効しない。
	TokenTTL time.Duration
}

// Service はトークン管理のサービス層。
// 不透明なトークン値から対象エンティティを解決する契約を提供する。
// トークンを起点とする認証ポリシーそのものはこの層の責務ではない。
type Service struct {
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
	songRepo  repository.SongRepository
	config    ServiceConfig
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	tokenRepo repository.TokenRepository,
	userRepo repository.UserRepository,
	songRepo repository.SongRepository,
	config ServiceConfig,
) *Service {
	return &Service{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		songRepo:  songRepo,
		config:    config,
	}
}

// IssueToken はリクエストフィールドからトークンを発行する。
// 対象としてusernameまたはsong_idのどちらか一方の指定が必須で、
// 参照先のエンティティが存在しなければならない。
// トークン値はゲートウェイが生成し、レスポンスに含めて返す。
// ttl_secondsが正の値で指定された場合はデフォルトTTLより優先する。
func (s *Service) IssueToken(ctx context.Context, fields map[string]any) (*model.Token, error) {
	username, _ := fields["username"].(string)
	songID, _ := fields["song_id"].(string)

	switch {
	case username == "" && songID == "":
		return nil, model.NewInvalidSubjectError("対象が指定されていません")
	case username != "" && songID != "":
		return nil, model.NewInvalidSubjectError("usernameとsong_idは同時に指定できません")
	}

	if username != "" {
		user, err := s.userRepo.FindByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
		}
		if user == nil {
			return nil, model.NewInvalidSubjectError(fmt.Sprintf("ユーザーが存在しません: %s", username))
		}
	} else {
		song, err := s.songRepo.FindByID(ctx, songID)
		if err != nil {
			return nil, fmt.Errorf("楽曲の取得に失敗しました: %w", err)
		}
		if song == nil {
			return nil, model.NewInvalidSubjectError(fmt.Sprintf("楽曲が存在しません: %s", songID))
		}
	}

	token := &model.Token{
		Username: username,
		SongID:   songID,
	}

	ttl := s.config.TokenTTL
	if secs, ok := fields["ttl_seconds"].(float64); ok && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}
	if ttl > 0 {
		expiresAt := time.Now().Add(ttl)
		token.ExpiresAt = &expiresAt
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	// トークン値そのものは credential のためログに残さない
	slog.Info("トークンを発行しました",
		slog.String("username", token.Username),
		slog.String("song_id", token.SongID),
		slog.Bool("expires", token.ExpiresAt != nil),
	)

	return token, nil
}

// ResolveToken は不透明なトークン値をトークンレコードに解決する。
// 未知の値および期限切れのトークンは未検出エラーを返す。
func (s *Service) ResolveToken(ctx context.Context, value string) (*model.Token, error) {
	token, err := s.tokenRepo.FindByValue(ctx, value)
	if err != nil {
		return nil, fmt.Errorf("トークンの取得に失敗しました: %w", err)
	}
	if token == nil {
		return nil, model.NewTokenNotFoundError()
	}
	return token, nil
}

// ListTokens は全トークンを発行順で返す。期限切れのトークンは含まない。
func (s *Service) ListTokens(ctx context.Context) ([]*model.Token, error) {
	tokens, err := s.tokenRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("トークン一覧の取得に失敗しました: %w", err)
	}
	return tokens, nil
}
