package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRouter() http.Handler {
	return NewRouter(&RouterDeps{
		HealthChecker: &mockHealthChecker{},
		UserService:   &mockUserService{},
		SongService:   &mockSongService{},
		TokenService:  &mockTokenService{},
	})
}

func TestNewRouter_RouteMatrix(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"list users", http.MethodGet, "/users/", "", http.StatusOK},
		{"list users without trailing slash", http.MethodGet, "/users", "", http.StatusOK},
		{"create user", http.MethodPost, "/users/", `{"username":"alice"}`, http.StatusCreated},
		{"user songs view", http.MethodGet, "/users/alice/songs", "", http.StatusOK},
		{"list songs", http.MethodGet, "/songs/", "", http.StatusOK},
		{"create song", http.MethodPost, "/songs/", `{"owner":"alice"}`, http.StatusCreated},
		{"get song", http.MethodGet, "/songs/song-1", "", http.StatusOK},
		{"update song", http.MethodPut, "/songs/song-1", `{"title":"x"}`, http.StatusOK},
		{"list tokens", http.MethodGet, "/tokens/", "", http.StatusOK},
		{"issue token", http.MethodPost, "/tokens/", `{"username":"alice"}`, http.StatusCreated},
		{"resolve token", http.MethodGet, "/tokens/abc", "", http.StatusOK},
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"unmatched path", http.MethodGet, "/albums/", "", http.StatusNotFound},
		{"wrong method on users", http.MethodDelete, "/users/", "", http.StatusMethodNotAllowed},
		{"wrong method on song item", http.MethodPost, "/songs/song-1", `{}`, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bodyReader *strings.Reader
			if tt.body != "" {
				bodyReader = strings.NewReader(tt.body)
			} else {
				bodyReader = strings.NewReader("")
			}
			req := httptest.NewRequest(tt.method, tt.path, bodyReader)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Result().StatusCode != tt.wantStatus {
				t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, w.Result().StatusCode, tt.wantStatus)
			}
		})
	}
}

// 全レスポンス（エラー含む）にCORSヘッダーが付くこと。
func TestNewRouter_CORSHeadersOnEveryResponse(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/"},
		{http.MethodGet, "/no/such/route"},
		{http.MethodDelete, "/songs/"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s %s: Access-Control-Allow-Origin = %q, want %q", p.method, p.path, got, "*")
		}
	}
}

func TestNewRouter_PreflightRequest(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/songs/", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got != "*" {
		t.Errorf("Access-Control-Allow-Methods = %q, want %q", got, "*")
	}
}
