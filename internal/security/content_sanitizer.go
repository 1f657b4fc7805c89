package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService はコース説明文のサニタイズ機能のインターフェース。
// 上流レスポンスの整形時に使用し、上流データに混入したHTMLタグやスクリプトが
// 管理画面でそのまま描画されることを防ぐ。
type ContentSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去してプレーンテキストを返す。
	// タグを含まない入力はそのまま返す（冪等）。空文字列には空文字列を返す。
	Sanitize(text string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズを行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// コース説明文は本来プレーンテキストのため、タグを一切許可しない
// StrictPolicyを使用する。scriptタグ、on*イベント属性などはすべて除去される。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からすべてのHTMLタグを除去してプレーンテキストを返す。
func (s *contentSanitizer) Sanitize(text string) string {
	return s.policy.Sanitize(text)
}

// NopSanitizer はサニタイズを行わないContentSanitizerServiceの実装。
// SANITIZE_CONTENT=false の場合に使用する。
type NopSanitizer struct{}

// Sanitize は入力をそのまま返す。
func (NopSanitizer) Sanitize(text string) string { return text }
