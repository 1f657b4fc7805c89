// Package database は監査ログデータベースの接続とスキーマ管理を提供する。
// ゲートウェイ自体はステートレスであり、ここで扱うのは破壊的操作の
// 監査証跡（audit_logsテーブル）のみ。
package database

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NewMigrator は監査ログスキーマのマイグレーション実行用のmigrateインスタンスを生成する。
// databaseURLはAUDIT_DATABASE_URLに設定するPostgreSQL接続URLと同じ形式。
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, nil
}

// RunMigrations は監査ログスキーマのマイグレーションをすべて適用する。
// すでに最新の場合はエラーなしで返る。migrateサブコマンドから呼ばれる。
func RunMigrations(databaseURL string) error {
	m, err := NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
