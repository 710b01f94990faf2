package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/songbook/internal/model"
)

// mockTokenService はTokenServiceInterfaceのモック実装。
type mockTokenService struct {
	issueTokenFn   func(ctx context.Context, fields map[string]any) (*model.Token, error)
	resolveTokenFn func(ctx context.Context, value string) (*model.Token, error)
	listTokensFn   func(ctx context.Context) ([]*model.Token, error)
}

func (m *mockTokenService) IssueToken(ctx context.Context, fields map[string]any) (*model.Token, error) {
	if m.issueTokenFn != nil {
		return m.issueTokenFn(ctx, fields)
	}
	username, _ := fields["username"].(string)
	return &model.Token{Value: "issued-token", Username: username}, nil
}

func (m *mockTokenService) ResolveToken(ctx context.Context, value string) (*model.Token, error) {
	if m.resolveTokenFn != nil {
		return m.resolveTokenFn(ctx, value)
	}
	return &model.Token{Value: value, Username: "alice"}, nil
}

func (m *mockTokenService) ListTokens(ctx context.Context) ([]*model.Token, error) {
	if m.listTokensFn != nil {
		return m.listTokensFn(ctx)
	}
	return []*model.Token{}, nil
}

func newTokenTestRouter(h *TokenHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/tokens/", h.IssueToken)
	r.Get("/tokens/", h.ListTokens)
	r.Get("/tokens/{token}", h.ResolveToken)
	return r
}

func TestTokenHandler_IssueToken_ReturnsGeneratedValue(t *testing.T) {
	router := newTokenTestRouter(NewTokenHandler(&mockTokenService{}))

	req := httptest.NewRequest(http.MethodPost, "/tokens/", strings.NewReader(`{"username":"alice"}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["token"] != "issued-token" {
		t.Errorf("token = %v, want %q", body["token"], "issued-token")
	}
	if body["username"] != "alice" {
		t.Errorf("username = %v, want %q", body["username"], "alice")
	}
	if _, ok := body["song_id"]; ok {
		t.Errorf("song_id should be omitted for user tokens: %v", body)
	}
}

func TestTokenHandler_IssueToken_InvalidSubject_ReturnsBadRequest(t *testing.T) {
	svc := &mockTokenService{
		issueTokenFn: func(ctx context.Context, fields map[string]any) (*model.Token, error) {
			return nil, model.NewInvalidSubjectError("usernameとsong_idは同時に指定できない")
		},
	}
	router := newTokenTestRouter(NewTokenHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/tokens/", strings.NewReader(`{"username":"alice","song_id":"song-1"}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
	}
}

func TestTokenHandler_ResolveToken_ExtractsPathParam(t *testing.T) {
	var gotValue string
	expires := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := &mockTokenService{
		resolveTokenFn: func(ctx context.Context, value string) (*model.Token, error) {
			gotValue = value
			return &model.Token{Value: value, SongID: "song-7", ExpiresAt: &expires}, nil
		},
	}
	router := newTokenTestRouter(NewTokenHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/tokens/abc-123", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if gotValue != "abc-123" {
		t.Errorf("value = %q, want %q", gotValue, "abc-123")
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["song_id"] != "song-7" {
		t.Errorf("song_id = %v, want %q", body["song_id"], "song-7")
	}
	if body["expires_at"] != expires.Format(time.RFC3339) {
		t.Errorf("expires_at = %v, want %q", body["expires_at"], expires.Format(time.RFC3339))
	}
}

func TestTokenHandler_ResolveToken_NotFound_Returns404(t *testing.T) {
	svc := &mockTokenService{
		resolveTokenFn: func(ctx context.Context, value string) (*model.Token, error) {
			return nil, model.NewTokenNotFoundError()
		},
	}
	router := newTokenTestRouter(NewTokenHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/tokens/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}

func TestTokenHandler_ListTokens_Empty_ReturnsEmptyArray(t *testing.T) {
	router := newTokenTestRouter(NewTokenHandler(&mockTokenService{}))

	req := httptest.NewRequest(http.MethodGet, "/tokens/", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("body = %q, want %q", got, "[]")
	}
}
