package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/songbook/internal/model"
)

// TokenServiceInterface はトークンハンドラーが必要とするサービスインターフェース。
type TokenServiceInterface interface {
	// IssueToken はリクエストフィールドからトークンを発行する。
	IssueToken(ctx context.Context, fields map[string]any) (*model.Token, error)
	// ResolveToken は不透明なトークン値をトークンレコードに解決する。
	ResolveToken(ctx context.Context, value string) (*model.Token, error)
	// ListTokens は全トークンを発行順で返す。
	ListTokens(ctx context.Context) ([]*model.Token, error)
}

// TokenHandler はトークンコレクションのHTTPハンドラー。
type TokenHandler struct {
	service TokenServiceInterface
}

// NewTokenHandler はTokenHandlerを生成する。
func NewTokenHandler(service TokenServiceInterface) *TokenHandler {
	return &TokenHandler{
		service: service,
	}
}

// IssueToken はトークン発行を処理する。
// POST /tokens/
func (h *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	fields, apiErr := decodeRequestFields(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	token, err := h.service.IssueToken(r.Context(), fields)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toTokenResponse(token))
}

// ListTokens はトークン一覧を返す。
// GET /tokens/
func (h *TokenHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.service.ListTokens(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]map[string]any, len(tokens))
	for i, token := range tokens {
		responses[i] = toTokenResponse(token)
	}

	writeJSONResponse(w, http.StatusOK, responses)
}

// ResolveToken は不透明なトークン値をレコードに解決する。
// GET /tokens/{token}
func (h *TokenHandler) ResolveToken(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "token")

	token, err := h.service.ResolveToken(r.Context(), value)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toTokenResponse(token))
}

// toTokenResponse はmodel.TokenからAPIレスポンスに変換する。
// 対象参照は設定されている側のみ含める。
func toTokenResponse(token *model.Token) map[string]any {
	resp := map[string]any{
		"token":      token.Value,
		"created_at": token.CreatedAt.Format(time.RFC3339),
	}
	if token.Username != "" {
		resp["username"] = token.Username
	}
	if token.SongID != "" {
		resp["song_id"] = token.SongID
	}
	if token.ExpiresAt != nil {
		resp["expires_at"] = token.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}
