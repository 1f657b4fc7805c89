// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dateroad/admin-gateway/internal/model"
)

type contextKey string

const tokenContextKey contextKey = "admin_token"

// ErrNoToken はコンテキストにトークンが存在しない場合に返される。
var ErrNoToken = errors.New("no token in context")

// ContextWithToken はトークンを格納した新しいコンテキストを返す。
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext はコンテキストから管理者トークンを取得する。
func TokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// NewAuthMiddleware はAuthorizationヘッダーの存在を検証するミドルウェアを返す。
// ヘッダーが無い場合は上流へ到達する前に401を返す。
// トークンの真正性検証は上流APIの責務であり、ここでは行わない。
func NewAuthMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"message": model.MsgAuthRequired,
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithToken(r.Context(), token)))
		})
	}
}

// bearerToken はAuthorizationヘッダーからトークン部分を取り出す。
// "Bearer "プレフィックスは大文字小文字を区別せずに除去する。
// プレフィックスの無いヘッダー値はそのままトークンとして扱う。
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return header
}
