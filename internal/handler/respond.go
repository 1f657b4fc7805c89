// Package handler は管理ゲートウェイのHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/model"
)

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("レスポンスのエンコードに失敗しました", slog.String("error", err.Error()))
	}
}

// writeMessage は {"message": msg} 形式のレスポンスを書き込む。
// ゲートウェイが生成するエラー・成功メッセージはすべてこの形をとる。
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// handleProxyError は正規化済みエラーをHTTPレスポンスへ変換する。
// *model.ProxyErrorの場合はそのステータスとメッセージを使用し、
// それ以外の想定外のエラーは500 + defaultMsgに丸める。
func handleProxyError(w http.ResponseWriter, err error, resource, defaultMsg string, collector metrics.MetricsCollector) {
	var pe *model.ProxyError
	if errors.As(err, &pe) {
		collector.RecordProxyError(resource, pe.Status)
		writeMessage(w, pe.Status, pe.Message)
		return
	}

	slog.Error("未分類のエラーが発生しました",
		slog.String("resource", resource),
		slog.String("error", err.Error()),
	)
	collector.RecordProxyError(resource, http.StatusInternalServerError)
	writeMessage(w, http.StatusInternalServerError, defaultMsg)
}

// queryInt はクエリパラメータを整数として取得する。
// 欠落または数値でない場合はデフォルト値を返す。
func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
