package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dateroad/admin-gateway/internal/jsonfield"
	"github.com/dateroad/admin-gateway/internal/model"
)

// maxResponseSize はゲートウェイ応答の読み取り上限。
const maxResponseSize = 5 << 20

// ErrNotAuthenticated はセッションが存在しない状態でAPIを呼び出した場合に返される。
var ErrNotAuthenticated = errors.New("로그인이 필요합니다.")

// Client はゲートウェイAPIの型付きクライアント。
// セッションはコンストラクタで渡されたストアから都度取得する。
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionStore
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(baseURL string, httpClient *http.Client, sessions SessionStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		sessions:   sessions,
	}
}

// Courses はコース一覧を取得する。ページング状態はPagerから読み取り、
// 応答のtotalPagesをPagerへ反映する。
func (c *Client) Courses(ctx context.Context, pager *Pager) (map[string]any, error) {
	doc, err := c.getJSON(ctx, "/api/courses", pager.query(), model.MsgCourseListFailed)
	if err != nil {
		return nil, err
	}
	pager.SetTotalPages(int(jsonfield.Int64(doc, "totalPages", 1)))
	return doc, nil
}

// Users はユーザー一覧を取得する。
func (c *Client) Users(ctx context.Context, pager *Pager) (map[string]any, error) {
	doc, err := c.getJSON(ctx, "/api/users", pager.query(), model.MsgUserListFailed)
	if err != nil {
		return nil, err
	}
	pager.SetTotalPages(int(jsonfield.Int64(doc, "totalPages", 1)))
	return doc, nil
}

// Stats は統計情報を取得する。
func (c *Client) Stats(ctx context.Context) (map[string]any, error) {
	return c.getJSON(ctx, "/api/admin/stats", nil, model.MsgStatsFailed)
}

// UserDetail は指定ユーザーの詳細情報を取得する。
func (c *Client) UserDetail(ctx context.Context, userID string) (map[string]any, error) {
	return c.getJSON(ctx, "/api/admin/users/"+url.PathEscape(userID)+"/detail", nil, model.MsgUserDetailFailed)
}

// UserCourses は指定ユーザーが作成したコース一覧を取得する。
// 応答はコースの素の配列と {courses: [...]} エンベロープの両方を受け付ける。
func (c *Client) UserCourses(ctx context.Context, userID string) ([]any, error) {
	doc, err := c.doJSONValue(ctx, http.MethodGet, "/api/admin/users/"+url.PathEscape(userID)+"/courses", nil, nil, model.MsgUserCoursesFailed)
	if err != nil {
		return nil, err
	}

	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		list, _ := jsonfield.Slice(v, "courses")
		return list, nil
	}
	return nil, nil
}

// DeleteCourse は指定IDのコースを削除する。
func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/api/courses/"+url.PathEscape(courseID), nil, nil, model.MsgCourseDeleteFailed)
	return err
}

// BanUser は指定ユーザーを停止する。
func (c *Client) BanUser(ctx context.Context, userID string) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/ban", nil, nil, model.MsgUserBanFailed)
	return err
}

// getJSON は認証付きGETの共通パターン。
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, defaultMsg string) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, defaultMsg)
}

// doJSON はゲートウェイへの認証付きリクエストを実行し、JSONオブジェクトを返す。
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body []byte, defaultMsg string) (map[string]any, error) {
	doc, err := c.doJSONValue(ctx, method, path, query, body, defaultMsg)
	if err != nil {
		return nil, err
	}
	if m, ok := doc.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{}, nil
}

// doJSONValue はゲートウェイへの認証付きリクエストを実行し、JSONボディを返す。
// ボディはオブジェクトと配列の両方がありうるためanyとして返す。
// 非2xx応答はボディのmessageを抽出してエラーに変換する。
func (c *Client) doJSONValue(ctx context.Context, method, path string, query url.Values, body []byte, defaultMsg string) (any, error) {
	session, ok := c.sessions.Current()
	if !ok {
		return nil, ErrNotAuthenticated
	}

	status, respBody, err := c.send(ctx, method, path, query, body, "Bearer "+session.AccessToken)
	if err != nil {
		return nil, errors.New(defaultMsg)
	}

	doc := decodeBody(respBody)
	if status < 200 || status >= 300 {
		if m, ok := doc.(map[string]any); ok {
			if msg := jsonfield.String(m, "message", ""); msg != "" {
				return nil, errors.New(msg)
			}
		}
		return nil, errors.New(defaultMsg)
	}

	return doc, nil
}

// send はHTTPリクエストを送信してステータスとボディを返す。
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body []byte, authorization string) (int, []byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// decodeBody はJSONボディをデコードする。失敗時は空マップを返す。
func decodeBody(body []byte) any {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}

// query はPagerの状態からクエリパラメータを構築する。
func (p *Pager) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page()))
	q.Set("size", strconv.Itoa(p.Size()))
	if s := p.Search(); s != "" {
		q.Set("search", s)
	}
	return q
}
