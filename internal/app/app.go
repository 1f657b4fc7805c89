package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dateroad/admin-gateway/internal/audit"
	"github.com/dateroad/admin-gateway/internal/config"
	"github.com/dateroad/admin-gateway/internal/database"
	"github.com/dateroad/admin-gateway/internal/handler"
	"github.com/dateroad/admin-gateway/internal/logger"
	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/middleware"
	"github.com/dateroad/admin-gateway/internal/security"
	"github.com/dateroad/admin-gateway/internal/upstream"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("upstream_base_url", cfg.UpstreamBaseURL),
		slog.String("data_source", string(cfg.DataSource)),
	)

	switch cmd {
	case CommandServe:
		return runServe(cfg)
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はゲートウェイサーバーモードで起動する。
// 全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 2. コンテンツサニタイザの初期化
	var sanitizer security.ContentSanitizerService
	if cfg.SanitizeContent {
		sanitizer = security.NewContentSanitizer()
	} else {
		sanitizer = security.NopSanitizer{}
	}
	reshaper := upstream.NewReshaper(sanitizer, collector)

	// 3. データソースの初期化
	var source upstream.DataSource
	if cfg.DataSource == config.DataSourceFixture {
		source = upstream.NewFixtureSource()
		slog.Info("using fixture data source")
	} else {
		ssrfGuard := security.NewSSRFGuard()
		if err := ssrfGuard.ValidateBaseURL(cfg.UpstreamBaseURL); err != nil {
			return fmt.Errorf("unsafe upstream base URL: %w", err)
		}

		httpClient := ssrfGuard.NewSafeClient(cfg.UpstreamTimeout)
		source = upstream.NewClient(
			httpClient, cfg.UpstreamBaseURL,
			slog.Default(), collector, reshaper, cfg.UpstreamMaxBodySize,
		)
	}

	// 4. 監査レコーダの初期化（AUDIT_DATABASE_URL未設定時は無効化）
	var auditor audit.Recorder = audit.NopRecorder{}
	if cfg.AuditDatabaseURL != "" {
		db, err := database.Open(cfg.AuditDatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open audit database: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to audit database: %w", err)
		}

		auditor = audit.NewPostgresRecorder(db, slog.Default())
		slog.Info("audit log enabled")
	}

	// 5. ルーターの構築
	rateLimiterCfg := middleware.NewRateLimiterConfig(cfg.RateLimitGeneral, cfg.RateLimitLogin)

	deps := &handler.RouterDeps{
		Source:   source,
		Auditor:  auditor,
		Logger:   slog.Default(),
		Metrics:  collector,
		Gatherer: registry,

		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       middleware.NewRateLimiter(rateLimiterCfg),

		MaxBodySize: cfg.UpstreamMaxBodySize,
	}

	router := handler.NewRouter(deps)

	// 6. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("gateway server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down gateway server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("gateway server stopped gracefully")
	return nil
}

// runMigrate は監査ログデータベースのマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.AuditDatabaseURL == "" {
		return fmt.Errorf("AUDIT_DATABASE_URL is not set")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.AuditDatabaseURL)),
	)

	if err := database.RunMigrations(cfg.AuditDatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
