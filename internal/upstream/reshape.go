package upstream

import (
	"github.com/dateroad/admin-gateway/internal/jsonfield"
	"github.com/dateroad/admin-gateway/internal/metrics"
	"github.com/dateroad/admin-gateway/internal/security"
)

// Reshaper はコースレコードをUI向けの形に整形する。
// フラットな userId / userName をネストした user オブジェクトに持ち上げ、
// それ以外のフィールドはすべて保持する。未知のフィールドも素通しする。
type Reshaper struct {
	sanitizer security.ContentSanitizerService
	metrics   metrics.MetricsCollector
}

// NewReshaper はReshaperの新しいインスタンスを生成する。
func NewReshaper(sanitizer security.ContentSanitizerService, collector metrics.MetricsCollector) *Reshaper {
	return &Reshaper{
		sanitizer: sanitizer,
		metrics:   collector,
	}
}

// Course は単一のコースレコードを整形する。
// 入力は変更せず、新しいマップを返す。
// userId / userName が欠けている場合、userオブジェクトの対応キーは出力されない。
func (r *Reshaper) Course(course map[string]any) map[string]any {
	out := make(map[string]any, len(course)+1)
	for k, v := range course {
		if k == "userId" || k == "userName" {
			continue
		}
		out[k] = v
	}

	user := make(map[string]any, 2)
	if v, ok := jsonfield.Get(course, "userId"); ok {
		user["id"] = v
	}
	if v, ok := jsonfield.Get(course, "userName"); ok {
		user["name"] = v
	}
	out["user"] = user

	if desc, ok := out["description"].(string); ok {
		out["description"] = r.sanitizer.Sanitize(desc)
	}

	return out
}

// Document はレスポンスドキュメント全体を整形する。
// 次の形を認識する:
//   - ページ付きエンベロープ: {"content": [course, ...], ...}
//   - ユーザーコース応答: {"courses": [course, ...], ...}
//   - コースの素の配列: [course, ...]
//
// いずれにも該当しない場合はそのまま返す。エンベロープの他のキーは保持する。
func (r *Reshaper) Document(v any) any {
	switch doc := v.(type) {
	case []any:
		return r.reshapeSlice(doc)
	case map[string]any:
		for _, key := range []string{"content", "courses"} {
			if items, ok := jsonfield.Slice(doc, key); ok {
				out := make(map[string]any, len(doc))
				for k, val := range doc {
					out[k] = val
				}
				out[key] = r.reshapeSlice(items)
				return out
			}
		}
		return doc
	default:
		return v
	}
}

// reshapeSlice はコースレコードの配列を整形する。
// マップでない要素はそのまま保持する。
func (r *Reshaper) reshapeSlice(items []any) []any {
	out := make([]any, len(items))
	reshaped := 0
	for i, item := range items {
		if course, ok := item.(map[string]any); ok {
			out[i] = r.Course(course)
			reshaped++
		} else {
			out[i] = item
		}
	}
	if r.metrics != nil && reshaped > 0 {
		r.metrics.RecordCoursesReshaped(reshaped)
	}
	return out
}
