// Package audit は破壊的操作（コース削除・ユーザー停止）の監査証跡を提供する。
// トークンそのものは保存せず、SHA-256フィンガープリントのみを記録する。
package audit

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// 監査対象のアクション種別。
const (
	ActionCourseDelete = "course_delete"
	ActionUserBan      = "user_ban"
)

// fingerprintLength はトークンフィンガープリントの長さ（16進文字数）。
// 識別には十分で、元トークンの推測材料にはならない長さにしている。
const fingerprintLength = 12

// Entry は1件の監査レコードを表す。
type Entry struct {
	ID               uuid.UUID
	Action           string
	TargetID         string
	TokenFingerprint string
	UpstreamStatus   int
	RequestID        string
	OccurredAt       time.Time
}

// NewEntry は監査レコードを生成する。
// tokenは保存前にフィンガープリント化される。
func NewEntry(action, targetID, token string, upstreamStatus int, requestID string) Entry {
	return Entry{
		ID:               uuid.New(),
		Action:           action,
		TargetID:         targetID,
		TokenFingerprint: Fingerprint(token),
		UpstreamStatus:   upstreamStatus,
		RequestID:        requestID,
		OccurredAt:       time.Now().UTC(),
	}
}

// Fingerprint はトークンのSHA-256ハッシュ先頭12桁（16進）を返す。
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}

// Recorder は監査レコードの永続化インターフェース。
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// PostgresRecorder はPostgreSQLへ監査レコードを保存するRecorder実装。
type PostgresRecorder struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresRecorder はPostgresRecorderの新しいインスタンスを生成する。
func NewPostgresRecorder(db *sql.DB, logger *slog.Logger) *PostgresRecorder {
	return &PostgresRecorder{
		db:     db,
		logger: logger,
	}
}

// Record は監査レコードをaudit_logsテーブルへ挿入する。
func (r *PostgresRecorder) Record(ctx context.Context, entry Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, action, target_id, token_fingerprint, upstream_status, request_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Action, entry.TargetID, entry.TokenFingerprint,
		entry.UpstreamStatus, entry.RequestID, entry.OccurredAt,
	)
	if err != nil {
		r.logger.Error("監査レコードの保存に失敗しました",
			slog.String("action", entry.Action),
			slog.String("target_id", entry.TargetID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// NopRecorder は監査を無効化するRecorder実装。
// AUDIT_DATABASE_URLが未設定の場合に使用する。
type NopRecorder struct{}

// Record は何もせずnilを返す。
func (NopRecorder) Record(ctx context.Context, entry Entry) error { return nil }
