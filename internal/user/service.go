// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/songbook/internal/model"
	"github.com/hitoshi/songbook/internal/repository"
	"github.com/hitoshi/songbook/internal/security"
)

// Service はユーザー管理のサービス層。
// ユーザー登録と一覧取得のビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	sanitizer security.FieldSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, sanitizer security.FieldSanitizerService) *Service {
	return &Service{
		userRepo:  userRepo,
		sanitizer: sanitizer,
	}
}

// CreateUser はリクエストフィールドからユーザーを作成する。
// usernameは必須。username以外のフィールドはプロフィールとして不透明に保存する。
// ユーザー名が既に使用されている場合は重複エラーを返す。
func (s *Service) CreateUser(ctx context.Context, fields map[string]any) (*model.User, error) {
	username, _ := fields["username"].(string)
	if username == "" {
		return nil, model.NewMissingFieldError("username")
	}
	username = s.sanitizer.Sanitize(username)
	if username == "" {
		return nil, model.NewMissingFieldError("username")
	}

	// 事前チェックで通常の重複を検出する。同時リクエストの競合は
	// リポジトリの一意制約違反で同じエラーに落ちる。
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateUsernameError(username)
	}

	profile := s.sanitizer.SanitizeFields(fields)
	delete(profile, "username")

	user := &model.User{
		Username: username,
		Profile:  profile,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("ユーザーを作成しました",
		slog.String("username", user.Username),
	)

	return user, nil
}

// ListUsers は全ユーザーを登録順で返す。
func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}
