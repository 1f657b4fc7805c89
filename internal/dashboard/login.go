package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dateroad/admin-gateway/internal/jsonfield"
)

// defaultAdminName は応答に表示名が含まれない場合のフォールバック。
const defaultAdminName = "관리자"

// ErrTokenMissing は2xx応答にtoken.accessTokenが含まれない場合の検証エラー。
// HTTPエラーとは区別される（ステータスは成功だが応答の形が契約を満たさない）。
var ErrTokenMissing = errors.New("로그인 응답에 토큰이 없습니다.")

// loginFailedFallback はログイン失敗応答にメッセージが無い場合の文言。
const loginFailedFallback = "로그인에 실패했습니다."

// Login は認証情報をゲートウェイへ送信し、成功時にセッションを保存する。
//
// 失敗の区別:
//   - 非2xx応答: 応答のmessage（またはerror）を文言とするエラー
//   - 2xx応答だがtoken.accessTokenが欠如: ErrTokenMissing（セッションは保存しない）
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return errors.New(loginFailedFallback)
	}

	status, respBody, err := c.send(ctx, http.MethodPost, "/api/login", nil, body, "")
	if err != nil {
		return errors.New(loginFailedFallback)
	}

	doc, _ := decodeBody(respBody).(map[string]any)

	if status < 200 || status >= 300 {
		if msg := jsonfield.String(doc, "message", ""); msg != "" {
			return errors.New(msg)
		}
		if msg := jsonfield.String(doc, "error", ""); msg != "" {
			return errors.New(msg)
		}
		return errors.New(loginFailedFallback)
	}

	accessToken := jsonfield.String(doc, "token.accessToken", "")
	if accessToken == "" {
		return ErrTokenMissing
	}

	name := jsonfield.String(doc, "name", "")
	if name == "" {
		name = defaultAdminName
	}

	c.sessions.Save(Session{
		AccessToken:  accessToken,
		RefreshToken: jsonfield.String(doc, "token.refreshToken", ""),
		AdminName:    name,
	})
	return nil
}

// Logout はセッションを破棄する。
func (c *Client) Logout() {
	c.sessions.Clear()
}
