package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/songbook/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// CreateUser はリクエストフィールドからユーザーを作成する。
	CreateUser(ctx context.Context, fields map[string]any) (*model.User, error)
	// ListUsers は全ユーザーを登録順で返す。
	ListUsers(ctx context.Context) ([]*model.User, error)
}

// UserHandler はユーザーコレクションのHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// CreateUser はユーザー登録を処理する。
// POST /users/
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	fields, apiErr := decodeRequestFields(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	user, err := h.service.CreateUser(r.Context(), fields)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toUserResponse(user))
}

// ListUsers はユーザー一覧を返す。
// GET /users/
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]map[string]any, len(users))
	for i, user := range users {
		responses[i] = toUserResponse(user)
	}

	writeJSONResponse(w, http.StatusOK, responses)
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
// 不透明なプロフィールフィールドをトップレベルに展開し、usernameを重ねる。
func toUserResponse(user *model.User) map[string]any {
	resp := make(map[string]any, len(user.Profile)+1)
	for k, v := range user.Profile {
		resp[k] = v
	}
	resp["username"] = user.Username
	return resp
}
