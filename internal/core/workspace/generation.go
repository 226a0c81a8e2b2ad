package workspace

import (
	"sync"
	"sync/atomic"

	"github.com/ogurasousui/admin-console-sync/internal/core/store"
)

// Generation は画面などの呼び出し元の世代を数えます。
// 世代が進むと、以前の世代で受け取った応答は適用されなくなります。
// ストアへの反映は世代と無関係に必ず行われます。
type Generation struct {
	n atomic.Uint64
}

// Ticket は発行時点の世代です。
type Ticket struct {
	gen *Generation
	n   uint64
}

// Next は世代を進め、新しい世代の Ticket を返します。
func (g *Generation) Next() Ticket {
	return Ticket{gen: g, n: g.n.Add(1)}
}

// Current は現在の世代の Ticket を返します。
func (g *Generation) Current() Ticket {
	return Ticket{gen: g, n: g.n.Load()}
}

// Live は t が最新の世代かどうかを返します。
func (t Ticket) Live() bool {
	return t.gen != nil && t.gen.n.Load() == t.n
}

// Scope は 1 つの世代に属する購読をまとめ、Close で確実に解除します。
type Scope struct {
	ticket Ticket

	mu     sync.Mutex
	subs   []*store.Subscription
	closed bool
}

// Begin は世代を進めて新しい Scope を開始します。以前の Scope は無効になります。
func (g *Generation) Begin() *Scope {
	return &Scope{ticket: g.Next()}
}

// Live は Scope が閉じられておらず、最新の世代であるかを返します。
func (s *Scope) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.ticket.Live()
}

// Apply は Scope が有効な場合に限り fn を呼び出し、呼び出したかどうかを返します。
func (s *Scope) Apply(fn func()) bool {
	if !s.Live() {
		return false
	}
	fn()
	return true
}

// Close は Scope に属する購読をすべて解除します。複数回呼んでも安全です。
func (s *Scope) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

func (s *Scope) track(sub *store.Subscription) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.subs = append(s.subs, sub)
	return true
}

// Watch は st を購読し、Scope が有効な間だけ fn へスナップショットを渡します。
// 購読は Scope の Close で解除されます。
func Watch[T any](s *Scope, st *store.Store[T], fn store.Observer[T]) {
	sub := st.Subscribe(func(snapshot []T) {
		if s.Live() {
			fn(snapshot)
		}
	})
	if !s.track(sub) {
		sub.Cancel()
	}
}
