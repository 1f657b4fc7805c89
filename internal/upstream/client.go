package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dateroad/admin-gateway/internal/jsonfield"
	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/model"
)

// Client は上流管理APIへプロキシするDataSource実装。
// 上流の非2xx応答とローカル障害を*model.ProxyErrorへ正規化する。
// 生のエラー内容はログにのみ記録し、呼び出し元へは漏らさない。
type Client struct {
	httpClient  *http.Client
	baseURL     string
	logger      *slog.Logger
	metrics     metrics.MetricsCollector
	reshaper    *Reshaper
	maxBodySize int64
}

// NewClient はClientの新しいインスタンスを生成する。
// httpClientにはSSRF防止機能付きのクライアントを渡す（テストでは素のクライアント可）。
func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger, collector metrics.MetricsCollector, reshaper *Reshaper, maxBodySize int64) *Client {
	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		logger:      logger,
		metrics:     collector,
		reshaper:    reshaper,
		maxBodySize: maxBodySize,
	}
}

// Login は認証リクエストを上流へ転送する。
// ボディは無加工で転送し、上流のステータスとボディをそのまま返す。
// ローカル障害は500 + 固定メッセージに正規化する。
func (c *Client) Login(ctx context.Context, body []byte) (*LoginResult, error) {
	status, respBody, err := c.do(ctx, http.MethodPost, pathLogin, "", nil, body, "login")
	if err != nil {
		return nil, model.NewInternalError(model.MsgLoginFailed)
	}

	var data any
	if err := json.Unmarshal(respBody, &data); err != nil {
		c.logger.Error("ログイン応答のパースに失敗しました",
			slog.Int("upstream_status", status),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError(model.MsgLoginFailed)
	}

	return &LoginResult{Status: status, Body: data}, nil
}

// ListCourses はコース一覧を取得し、整形した結果を返す。
// searchが空の場合はクエリパラメータ自体を付与しない。
func (c *Client) ListCourses(ctx context.Context, token string, page, size int, search string) (any, error) {
	query := pageQuery(page, size)
	if search != "" {
		query.Set("search", search)
	}

	doc, err := c.fetchJSON(ctx, http.MethodGet, pathCourses, token, query, "courses", model.MsgCourseListFailed)
	if err != nil {
		return nil, err
	}
	return c.reshaper.Document(doc), nil
}

// DeleteCourse は指定IDのコースを削除する。
func (c *Client) DeleteCourse(ctx context.Context, token, courseID string) error {
	status, respBody, err := c.do(ctx, http.MethodDelete, pathCourse(courseID), token, nil, nil, "course_delete")
	if err != nil {
		return model.NewInternalError(model.MsgCourseDeleteFailed)
	}
	if !is2xx(status) {
		return model.NewUpstreamError(status, extractErrorMessage(respBody), model.MsgCourseDeleteFailed)
	}
	return nil
}

// ListUsers はユーザー一覧を取得する。整形は行わずそのまま返す。
func (c *Client) ListUsers(ctx context.Context, token string, page, size int, search string) (any, error) {
	query := pageQuery(page, size)
	query.Set("search", search)

	return c.fetchJSON(ctx, http.MethodGet, pathUsers, token, query, "users", model.MsgUserListFailed)
}

// UserCourses は指定ユーザーが作成したコース一覧を取得し、整形した結果を返す。
func (c *Client) UserCourses(ctx context.Context, token, userID string) (any, error) {
	doc, err := c.fetchJSON(ctx, http.MethodGet, pathUserCourses(userID), token, nil, "user_courses", model.MsgUserCoursesFailed)
	if err != nil {
		return nil, err
	}
	return c.reshaper.Document(doc), nil
}

// BanUser は指定ユーザーを停止し、上流の応答ボディを返す。
func (c *Client) BanUser(ctx context.Context, token, userID string) (any, error) {
	return c.fetchJSON(ctx, http.MethodPost, pathUserBan(userID), token, nil, "user_ban", model.MsgUserBanFailed)
}

// UserDetail は指定ユーザーの詳細情報を取得する。
func (c *Client) UserDetail(ctx context.Context, token, userID string) (any, error) {
	return c.fetchJSON(ctx, http.MethodGet, pathUserDetail(userID), token, nil, "user_detail", model.MsgUserDetailFailed)
}

// Stats はダッシュボードの統計情報を取得する。
func (c *Client) Stats(ctx context.Context, token string) (any, error) {
	return c.fetchJSON(ctx, http.MethodGet, pathStats, token, nil, "stats", model.MsgStatsFailed)
}

// fetchJSON は上流へのJSONリクエストの共通パターンを実装する。
// 2xxならボディをデコードして返し、非2xxなら上流メッセージを抽出して
// *model.ProxyErrorに正規化する。ローカル障害は500 + defaultMsgに正規化する。
func (c *Client) fetchJSON(ctx context.Context, method, path, token string, query url.Values, resource, defaultMsg string) (any, error) {
	status, respBody, err := c.do(ctx, method, path, token, query, nil, resource)
	if err != nil {
		return nil, model.NewInternalError(defaultMsg)
	}

	if !is2xx(status) {
		return nil, model.NewUpstreamError(status, extractErrorMessage(respBody), defaultMsg)
	}

	var data any
	if err := json.Unmarshal(respBody, &data); err != nil {
		c.logger.Error("上流応答のパースに失敗しました",
			slog.String("resource", resource),
			slog.Int("upstream_status", status),
			slog.String("error", err.Error()),
		)
		return nil, model.NewInternalError(defaultMsg)
	}

	return data, nil
}

// do は上流へHTTPリクエストを送信し、ステータスとボディを返す。
// メトリクスの記録とエラーログの出力もここで行う。
// 戻り値のerrはHTTP応答を受け取れなかったことを意味する（ネットワーク障害等）。
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body []byte, resource string) (int, []byte, error) {
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
		c.logger.Error("上流リクエストの作成に失敗しました",
			slog.String("resource", resource),
			slog.String("error", err.Error()),
		)
		c.metrics.RecordUpstreamFailure(resource)
		return 0, nil, err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.RecordUpstreamLatency(resource, time.Since(start))
	if err != nil {
		c.logger.Error("上流APIの呼び出しに失敗しました",
			slog.String("resource", resource),
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		c.metrics.RecordUpstreamFailure(resource)
		return 0, nil, err
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstreamStatus(resource, resp.StatusCode)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		c.logger.Error("上流応答ボディの読み取りに失敗しました",
			slog.String("resource", resource),
			slog.String("error", err.Error()),
		)
		c.metrics.RecordUpstreamFailure(resource)
		return 0, nil, err
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("上流APIがエラーステータスを返しました",
			slog.String("resource", resource),
			slog.String("method", method),
			slog.Int("upstream_status", resp.StatusCode),
		)
	}

	return resp.StatusCode, respBody, nil
}

// pageQuery はページネーション用のクエリパラメータを構築する。
func pageQuery(page, size int) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	return query
}

// extractErrorMessage は上流エラーボディからUI表示用メッセージを抽出する。
// message キーを優先し、無ければ error キーを参照する。
// どちらも無い、またはJSONでない場合は空文字列を返す（呼び出し元でデフォルトを適用）。
func extractErrorMessage(body []byte) string {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	if msg := jsonfield.String(doc, "message", ""); msg != "" {
		return msg
	}
	return jsonfield.String(doc, "error", "")
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
