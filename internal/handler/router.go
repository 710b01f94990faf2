package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/songbook/internal/metrics"
	"github.com/hitoshi/songbook/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker   HealthChecker
	RateLimiter     *middleware.RateLimiter
	MetricsRecorder metrics.HTTPMetricsRecorder
	MetricsGatherer prometheus.Gatherer

	// リソース
	UserService  UserServiceInterface
	SongService  SongServiceInterface
	TokenService TokenServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → RecoveryMiddleware → LoggingMiddleware → MetricsMiddleware → RateLimitMiddleware
//
// CORSはルートごとの上書きなしに全レスポンスへ一様に適用する。
// 運用エンドポイント（/health、/metrics）はレート制限の外に配置する。
// リソースハンドラーはリクエストごとではなくルーター構築時に1回だけ生成し共有する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(slog.Default()))
	r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))

	userHandler := NewUserHandler(deps.UserService)
	songHandler := NewSongHandler(deps.SongService)
	tokenHandler := NewTokenHandler(deps.TokenService)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	// --- 運用エンドポイント ---

	r.Get("/health", healthHandler.Check)
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- リソースエンドポイント ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		// ユーザーコレクション
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.ListUsers)

			// GET /users/{username}/songs - ユーザー別の楽曲ビュー
			r.Get("/{username}/songs", songHandler.ListUserSongs)
		})

		// 楽曲コレクション
		r.Route("/songs", func(r chi.Router) {
			r.Get("/", songHandler.ListSongs)
			r.Post("/", songHandler.CreateSong)

			r.Route("/{pk}", func(r chi.Router) {
				r.Get("/", songHandler.GetSong)
				r.Put("/", songHandler.UpdateSong)
			})
		})

		// トークンコレクション
		r.Route("/tokens", func(r chi.Router) {
			r.Get("/", tokenHandler.ListTokens)
			r.Post("/", tokenHandler.IssueToken)
			r.Get("/{token}", tokenHandler.ResolveToken)
		})
	})

	return r
}
