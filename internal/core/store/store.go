// Package store はエンティティ一覧をメモリ上に保持し、変更を購読者へ配信します。
//
// 新しい購読者には登録直後に現在のスナップショットを渡し、以後は変更が適用された順に
// スナップショットを配信します。配信はストアの変更と同じ順序で直列化されるため、
// 購読者が変更途中の状態を観測することはありません。
package store

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Observer はスナップショットを受け取るコールバックです。
// 受け取ったスライスは購読者ごとの複製で、変更しても他に影響しません。
// コールバック内からストアを変更してはいけません (配信が完了するまで待つため停止します)。
type Observer[T any] func(snapshot []T)

// Store は 1 種類のエンティティのスナップショットを保持します。
type Store[T any] struct {
	key func(T) string

	// deliverMu は変更と配信を 1 単位として直列化します。
	deliverMu sync.Mutex

	mu        sync.RWMutex
	items     []T
	observers []*observer[T]
}

type observer[T any] struct {
	fn        Observer[T]
	cancelled atomic.Bool
}

func (o *observer[T]) deliver(items []T) {
	if o.cancelled.Load() {
		return
	}
	o.fn(slices.Clone(items))
}

// New は key で識別子を取り出す空のストアを生成します。
func New[T any](key func(T) string) *Store[T] {
	return &Store[T]{key: key}
}

// Snapshot は現在の一覧の複製を返します。
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len は保持しているエンティティ数を返します。
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get は id に一致するエンティティを返します。
func (s *Store[T]) Get(id string) (T, bool) {
	v, _, ok := s.Lookup(id)
	return v, ok
}

// Lookup は id に一致するエンティティとその位置を返します。
func (s *Store[T]) Lookup(id string) (T, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		var zero T
		return zero, -1, false
	}
	return s.items[idx], idx, true
}

// Subscribe は購読者を登録し、現在のスナップショットを即座に配信します。
func (s *Store[T]) Subscribe(fn Observer[T]) *Subscription {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	o := &observer[T]{fn: fn}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	current := s.items
	s.mu.Unlock()

	o.deliver(current)

	return &Subscription{cancel: func() { s.unsubscribe(o) }}
}

func (s *Store[T]) unsubscribe(o *observer[T]) {
	o.cancelled.Store(true)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slices.DeleteFunc(s.observers, func(existing *observer[T]) bool {
		return existing == o
	})
}

// ReplaceAll は一覧全体を置き換えます。同じ id が複数ある場合は後の値を先の位置に残します。
func (s *Store[T]) ReplaceAll(items []T) {
	s.mutate(func(_ []T) ([]T, bool) {
		next := make([]T, 0, len(items))
		seen := make(map[string]int, len(items))
		for _, item := range items {
			id := s.key(item)
			if idx, ok := seen[id]; ok {
				next[idx] = item
				continue
			}
			seen[id] = len(next)
			next = append(next, item)
		}
		return next, true
	})
}

// Upsert は id が一致するエンティティを置き換え、無ければ末尾に追加します。
func (s *Store[T]) Upsert(item T) {
	s.mutate(func(items []T) ([]T, bool) {
		next := slices.Clone(items)
		if idx := indexOf(next, s.key, s.key(item)); idx >= 0 {
			next[idx] = item
			return next, true
		}
		return append(next, item), true
	})
}

// Remove は id に一致するエンティティを取り除きます。存在しない場合は何もせず、配信もしません。
func (s *Store[T]) Remove(id string) bool {
	var removed bool
	s.mutate(func(items []T) ([]T, bool) {
		idx := indexOf(items, s.key, id)
		if idx < 0 {
			return items, false
		}
		removed = true
		return slices.Delete(slices.Clone(items), idx, idx+1), true
	})
	return removed
}

// Replace は id が存在する場合に限り置き換えます。
func (s *Store[T]) Replace(id string, item T) bool {
	var replaced bool
	s.mutate(func(items []T) ([]T, bool) {
		idx := indexOf(items, s.key, id)
		if idx < 0 {
			return items, false
		}
		replaced = true
		next := slices.Clone(items)
		next[idx] = item
		return next, true
	})
	return replaced
}

// Swap は仮 id のエンティティを同じ位置で item に置き換えます。
// item と同じ id の別要素は取り除くため、仮 id と確定 id が同時に存在することはありません。
// 仮 id が見つからない場合は Upsert と同じ動作になります。
func (s *Store[T]) Swap(placeholderID string, item T) {
	s.mutate(func(items []T) ([]T, bool) {
		id := s.key(item)
		next := make([]T, 0, len(items)+1)
		swapped := false
		for _, existing := range items {
			switch s.key(existing) {
			case placeholderID:
				next = append(next, item)
				swapped = true
			case id:
				continue
			default:
				next = append(next, existing)
			}
		}
		if !swapped {
			next = append(next, item)
		}
		return next, true
	})
}

// Restore は item を index の位置に戻します。同じ id が既にある場合は何もしません。
// index は現在の長さに収まるよう切り詰めます。
func (s *Store[T]) Restore(index int, item T) bool {
	var restored bool
	s.mutate(func(items []T) ([]T, bool) {
		if indexOf(items, s.key, s.key(item)) >= 0 {
			return items, false
		}
		index = max(0, min(index, len(items)))
		restored = true
		return slices.Insert(slices.Clone(items), index, item), true
	})
	return restored
}

func (s *Store[T]) mutate(fn func(items []T) ([]T, bool)) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	next, changed := fn(s.items)
	if !changed {
		s.mu.Unlock()
		return
	}
	s.items = next
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.deliver(next)
	}
}

func (s *Store[T]) indexOf(id string) int {
	return indexOf(s.items, s.key, id)
}

func indexOf[T any](items []T, key func(T) string, id string) int {
	return slices.IndexFunc(items, func(item T) bool { return key(item) == id })
}

// Subscription は購読の解除手段です。
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel は以後の配信を止めます。進行中の同期処理には影響しません。複数回呼んでも安全です。
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
