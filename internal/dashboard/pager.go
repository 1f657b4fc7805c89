package dashboard

import "fmt"

// DefaultPageSize は一覧表示の1ページあたりの件数。
const DefaultPageSize = 10

// Pager は一覧画面のページング状態を管理する。
// ページ番号は内部的に0始まりで、表示ラベルは1始まり。
type Pager struct {
	page       int
	totalPages int
	size       int
	search     string
}

// NewPager はデフォルトサイズのPagerを生成する。
func NewPager() *Pager {
	return &Pager{
		totalPages: 1,
		size:       DefaultPageSize,
	}
}

// Page は現在のページ番号（0始まり）を返す。
func (p *Pager) Page() int { return p.page }

// Size は1ページあたりの件数を返す。
func (p *Pager) Size() int { return p.size }

// Search は現在の検索キーワードを返す。
func (p *Pager) Search() string { return p.search }

// TotalPages は総ページ数を返す。
func (p *Pager) TotalPages() int { return p.totalPages }

// SetTotalPages は総ページ数を更新する。最小値は1。
// 現在ページが範囲外になった場合は最終ページへクランプする。
func (p *Pager) SetTotalPages(n int) {
	if n < 1 {
		n = 1
	}
	p.totalPages = n
	if p.page > n-1 {
		p.page = n - 1
	}
}

// SetSearch は検索キーワードを変更し、ページを先頭へ戻す。
// キーワードが変わらない場合はページ位置を維持する。
func (p *Pager) SetSearch(search string) {
	if p.search == search {
		return
	}
	p.search = search
	p.page = 0
}

// CanPrev は前のページへ移動できるかを返す。
func (p *Pager) CanPrev() bool { return p.page > 0 }

// CanNext は次のページへ移動できるかを返す。
func (p *Pager) CanNext() bool { return p.page < p.totalPages-1 }

// Prev は前のページへ移動する。移動できた場合にtrueを返す。
func (p *Pager) Prev() bool {
	if !p.CanPrev() {
		return false
	}
	p.page--
	return true
}

// Next は次のページへ移動する。移動できた場合にtrueを返す。
func (p *Pager) Next() bool {
	if !p.CanNext() {
		return false
	}
	p.page++
	return true
}

// Label は表示用のページラベル（1始まり）を返す。例: "2 / 5"
func (p *Pager) Label() string {
	return fmt.Sprintf("%d / %d", p.page+1, p.totalPages)
}
