package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const requestIDContextKey contextKey = "request_id"

// RequestIDHeader はリクエストIDを伝搬するHTTPヘッダー名。
const RequestIDHeader = "X-Request-Id"

// RequestIDFromContext はコンテキストからリクエストIDを取得する。
// 存在しない場合は空文字列を返す。
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// NewRequestIDMiddleware は各リクエストにUUIDを割り当てるミドルウェアを返す。
// クライアントがX-Request-Idヘッダーを送信した場合はその値を引き継ぎ、
// 無い場合は新規に生成する。割り当てたIDはレスポンスヘッダーにも設定する。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, id)

			ctx := context.WithValue(r.Context(), requestIDContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
