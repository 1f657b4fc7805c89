// Package jsonfield はデコード済みJSON（map[string]any）に対する
// 防御的なフィールドアクセスを提供する。
//
// 上流APIのレスポンスはスキーマが保証されないため、ネストしたフィールドの
// 欠落や型不一致があってもpanicせず、呼び出し元が指定したデフォルト値を
// 返すことを保証する。ドットパス（例: "user.name"）で辿る。
package jsonfield

import "strings"

// Get はドットパスでネストしたフィールドを辿り、値と存在有無を返す。
// 途中のノードが欠落している、nilである、またはオブジェクトでない場合は
// (nil, false) を返す。panicは発生しない。
func Get(doc map[string]any, path string) (any, bool) {
	if doc == nil || path == "" {
		return nil, false
	}

	keys := strings.Split(path, ".")
	current := doc
	for i, key := range keys {
		v, ok := current[key]
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// String はドットパスの文字列値を返す。欠落・型不一致時はdefを返す。
func String(doc map[string]any, path, def string) string {
	v, ok := Get(doc, path)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

// Int64 はドットパスの数値を整数として返す。欠落・型不一致時はdefを返す。
// encoding/jsonは数値をfloat64にデコードするため、float64からの変換を行う。
func Int64(doc map[string]any, path string, def int64) int64 {
	v, ok := Get(doc, path)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return def
	}
}

// Float64 はドットパスの数値を返す。欠落・型不一致時はdefを返す。
func Float64(doc map[string]any, path string, def float64) float64 {
	v, ok := Get(doc, path)
	if !ok {
		return def
	}
	n, ok := v.(float64)
	if !ok {
		return def
	}
	return n
}

// Bool はドットパスの真偽値を返す。欠落・型不一致時はdefを返す。
func Bool(doc map[string]any, path string, def bool) bool {
	v, ok := Get(doc, path)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Map はドットパスのオブジェクトを返す。欠落・型不一致時は(nil, false)を返す。
func Map(doc map[string]any, path string) (map[string]any, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// Slice はドットパスの配列を返す。欠落・型不一致時は(nil, false)を返す。
func Slice(doc map[string]any, path string) ([]any, bool) {
	v, ok := Get(doc, path)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}
