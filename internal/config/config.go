// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DataSourceMode は一覧・詳細系データの取得元を表す。
type DataSourceMode string

const (
	// DataSourceUpstream は実際の上流APIへプロキシする。
	DataSourceUpstream DataSourceMode = "upstream"
	// DataSourceFixture はデモ用のフィクスチャデータを返す。
	// 元ダッシュボードの「テストモード」に相当する。
	DataSourceFixture DataSourceMode = "fixture"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Upstream
	UpstreamBaseURL     string
	UpstreamTimeout     time.Duration
	UpstreamMaxBodySize int64

	// Data source
	DataSource DataSourceMode

	// Audit（空文字列の場合は監査ログを無効化する）
	AuditDatabaseURL string

	// Rate Limit（単位: req/min）
	RateLimitGeneral int
	RateLimitLogin   int

	// Content
	SanitizeContent bool

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// defaultUpstreamBaseURL は上流APIのデフォルトURL。
// 元ダッシュボードの lib/config.ts と同一のフォールバック。
const defaultUpstreamBaseURL = "https://api.dateroad-main.p-e.kr"

// Load は環境変数からConfigを読み込む。
// 不正な値が設定されている場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.UpstreamBaseURL = getEnvString("UPSTREAM_BASE_URL", defaultUpstreamBaseURL)
	cfg.UpstreamTimeout = getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	cfg.UpstreamMaxBodySize = getEnvInt64("UPSTREAM_MAX_BODY_SIZE", 5242880)

	mode := DataSourceMode(strings.ToLower(getEnvString("DATA_SOURCE", string(DataSourceUpstream))))
	if mode != DataSourceUpstream && mode != DataSourceFixture {
		return nil, fmt.Errorf("invalid DATA_SOURCE: %q (allowed: upstream, fixture)", mode)
	}
	cfg.DataSource = mode

	cfg.AuditDatabaseURL = os.Getenv("AUDIT_DATABASE_URL")

	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitLogin = getEnvInt("RATE_LIMIT_LOGIN", 10)

	cfg.SanitizeContent = getEnvBool("SANITIZE_CONTENT", true)

	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
