// Package dashboard は管理画面のクライアント側セマンティクスを提供する。
// ゲートウェイの自身のAPIに対する型付きクライアントであり、
// セッション管理、ページング、確認付き破壊的操作の各契約を実装する。
package dashboard

import "sync"

// Session は認証済み管理者のセッション情報。
// 元ダッシュボードのlocalStorageキー（adminToken / refreshToken / adminName）に対応する。
type Session struct {
	AccessToken  string
	RefreshToken string
	AdminName    string
}

// SessionStore はセッションの保存・取得・破棄のインターフェース。
// ログアウト時は3つの値すべてを同時に破棄する。
type SessionStore interface {
	Save(s Session)
	Current() (Session, bool)
	Clear()
}

// MemorySessionStore はメモリ上にセッションを保持するSessionStore実装。
type MemorySessionStore struct {
	mu      sync.RWMutex
	session Session
	active  bool
}

// NewMemorySessionStore はMemorySessionStoreの新しいインスタンスを生成する。
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// Save はセッションを保存する。
func (m *MemorySessionStore) Save(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.active = true
}

// Current は現在のセッションを返す。未ログインの場合は2番目の戻り値がfalse。
func (m *MemorySessionStore) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, m.active
}

// Clear はセッションを破棄する。
func (m *MemorySessionStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.active = false
}
