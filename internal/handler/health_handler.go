package handler

import (
	"context"
	"net/http"
)

// HealthChecker はヘルスチェックで疎通確認する依存のインターフェース。
// *sql.DB がそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		checker: checker,
	}
}

// Check はプロセスとデータベースの疎通を確認する。
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		if err := h.checker.PingContext(r.Context()); err != nil {
			writeJSONResponse(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
			return
		}
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
