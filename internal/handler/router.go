package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dateroad/admin-gateway/internal/audit"
	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/middleware"
	"github.com/dateroad/admin-gateway/internal/upstream"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// データソース（プロキシまたはフィクスチャ）
	Source upstream.DataSource

	// 監査
	Auditor audit.Recorder

	// 可観測性
	Logger   *slog.Logger
	Metrics  metrics.MetricsCollector
	Gatherer prometheus.Gatherer

	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// リクエストボディ上限（バイト）
	MaxBodySize int64
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → Logging → SecurityHeaders → CORS
//	→（認証ルートのみ）Auth → RateLimit(General)
//
// /api/login は認証前のエンドポイントのため、IP単位のログイン用レート制限のみ適用する。
// /health と /metrics はミドルウェアチェーンの最小構成で公開する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	loginHandler := NewLoginHandler(deps.Source, deps.Metrics, deps.MaxBodySize)
	courseHandler := NewCourseHandler(deps.Source, deps.Auditor, deps.Metrics)
	userHandler := NewUserHandler(deps.Source, deps.Auditor, deps.Metrics)
	statsHandler := NewStatsHandler(deps.Source, deps.Metrics)

	// --- 認証不要のルート ---

	r.Get("/health", Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))

	// ログイン（IP単位のレート制限のみ）
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/api/login", loginHandler.Login)

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware())
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// コース管理
		r.Route("/api/courses", func(r chi.Router) {
			r.Get("/", courseHandler.ListCourses)
			r.Delete("/{id}", courseHandler.DeleteCourse)
		})

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/courses", userHandler.UserCourses)
				r.Post("/ban", userHandler.BanUser)
			})
		})

		// 管理詳細系（元ダッシュボードのパス体系を維持）
		r.Route("/api/admin", func(r chi.Router) {
			r.Get("/stats", statsHandler.Stats)

			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/detail", userHandler.UserDetail)
				r.Get("/courses", userHandler.UserCourses)
			})
		})
	})

	return r
}
