// Package model はドメインモデルを定義する。
package model

import "fmt"

// 管理画面に表示する固定メッセージ。
// 元のダッシュボードと同一の文言を使用し、リソースごとにデフォルトを持つ。
const (
	// MsgAuthRequired は認可ヘッダー欠如時の固定メッセージ。
	MsgAuthRequired = "인증이 필요합니다."
	// MsgCourseListFailed はコース一覧取得失敗時のデフォルトメッセージ。
	MsgCourseListFailed = "코스 목록을 불러오는데 실패했습니다."
	// MsgCourseDeleteFailed はコース削除失敗時のデフォルトメッセージ。
	MsgCourseDeleteFailed = "코스 삭제에 실패했습니다."
	// MsgCourseDeleted はコース削除成功時の固定メッセージ。
	MsgCourseDeleted = "코스가 성공적으로 삭제되었습니다."
	// MsgUserListFailed はユーザー一覧取得失敗時のデフォルトメッセージ。
	MsgUserListFailed = "사용자 목록을 불러오는데 실패했습니다."
	// MsgUserBanFailed はユーザー停止失敗時のデフォルトメッセージ。
	MsgUserBanFailed = "사용자 정지에 실패했습니다."
	// MsgUserCoursesFailed はユーザーのコース一覧取得失敗時のデフォルトメッセージ。
	MsgUserCoursesFailed = "사용자의 코스 목록을 불러오는데 실패했습니다."
	// MsgUserDetailFailed はユーザー詳細取得失敗時のデフォルトメッセージ。
	MsgUserDetailFailed = "사용자 정보를 불러오는데 실패했습니다."
	// MsgStatsFailed は統計取得失敗時のデフォルトメッセージ。
	MsgStatsFailed = "통계 정보를 불러오는데 실패했습니다."
	// MsgLoginFailed はログイン処理のローカル障害時のメッセージ。
	MsgLoginFailed = "로그인 중 오류가 발생했습니다."
	// MsgInternalError は分類できない内部障害時の汎用メッセージ。
	MsgInternalError = "오류가 발생했습니다."
)

// ProxyError は上流APIエラーの正規化結果を表す。
// ハンドラーはStatusをそのままHTTPステータスとして再送出し、
// ボディは {"message": Message} の形で返す。
//
// エラー分類:
//   - 上流が非2xxを返した場合: Statusは上流のステータス、Messageは
//     上流ボディのmessage（またはerror）フィールド、抽出できなければ
//     リソース固有のデフォルト。
//   - ネットワーク障害・JSONパース失敗などのローカル障害: Statusは500、
//     Messageはリソース固有のデフォルト。生の例外は呼び出し元に漏らさない。
type ProxyError struct {
	Status  int    // 呼び出し元へ再送出するHTTPステータスコード
	Message string // UI表示用メッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ProxyError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
}

// NewUpstreamError は上流の非2xx応答から正規化エラーを生成する。
// messageが空の場合はdefaultMsgを使用する。
func NewUpstreamError(status int, message, defaultMsg string) *ProxyError {
	if message == "" {
		message = defaultMsg
	}
	return &ProxyError{Status: status, Message: message}
}

// NewInternalError はローカル障害（ネットワーク例外・パース失敗）を
// 500 + 固定メッセージに正規化する。
func NewInternalError(defaultMsg string) *ProxyError {
	return &ProxyError{Status: 500, Message: defaultMsg}
}
