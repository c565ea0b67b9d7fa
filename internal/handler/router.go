package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/vidtalk/internal/metrics"
	"github.com/hitoshi/vidtalk/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	Metrics           metrics.MetricsCollector
	MetricsHandler    http.Handler
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	RequestTimeout    time.Duration

	// ヘルスチェック
	DB              Pinger
	ReadinessProbes []ReadinessProbe

	// サービス
	UserService    UserServiceInterface
	VideoService   VideoServiceInterface
	CommentService CommentServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Logging → Recovery → SecurityHeaders → CORS → Timeout → RateLimit(General)
//
// コメントの書き込み（POST/PUT/DELETE）には書き込み専用のレート制限を追加する。
// /health と /metrics はレート制限とタイムアウトの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger, deps.Metrics))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	healthHandler := NewHealthHandler(deps.DB, deps.ReadinessProbes...)
	userHandler := NewUserHandler(deps.UserService)
	videoHandler := NewVideoHandler(deps.VideoService)
	commentHandler := NewCommentHandler(deps.CommentService)

	// --- 運用系ルート ---
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- API ---
	// ミドルウェアスタック: Timeout → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewTimeoutMiddleware(deps.RequestTimeout))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/", healthHandler.Index)

		r.Post("/saveUser", userHandler.SaveUser)
		r.Post("/addVideo/{videoId}", videoHandler.AddVideo)
		r.Get("/comments/{videoId}", commentHandler.ListComments)

		// コメント書き込み（書き込み専用レート制限を追加）
		r.Group(func(r chi.Router) {
			r.Use(deps.RateLimiter.CommentWriteMiddleware())

			r.Post("/comment", commentHandler.AddComment)
			r.Put("/comment/{videoId}/{commentId}", commentHandler.UpdateComment)
			r.Delete("/comment/{videoId}/{commentId}", commentHandler.DeleteComment)
		})
	})

	return r
}
