package middleware

import (
	"net/http"
	"time"

	"github.com/hitoshi/songbook/internal/metrics"
)

// NewMetricsMiddleware はリクエストの処理結果をメトリクスとして記録する
// ミドルウェアを返す。recorderがnilの場合は何も記録しない。
func NewMetricsMiddleware(recorder metrics.HTTPMetricsRecorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if recorder == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r)

			recorder.RecordHTTPRequest(r.Method, rec.statusCode, time.Since(start))
		})
	}
}
