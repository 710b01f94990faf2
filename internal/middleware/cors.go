package middleware

import "net/http"

// NewCORSMiddleware は全オリジン・全メソッド・全ヘッダーを許可する
// CORSミドルウェアを返す。ポリシーはプロセス全体で一様であり、
// ルートごとの上書きは存在しない。
// ワイルドカードオリジンのためcredentialsヘッダーは付与しない。
// OPTIONSプリフライトリクエストには204で応答する。
func NewCORSMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "*")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Set("Access-Control-Max-Age", "86400")

			// OPTIONSプリフライトリクエストには204で応答
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
