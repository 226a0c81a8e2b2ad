package coordinator

import (
	"context"
	"fmt"
	"sync"
)

// lanes は id ごとの変更を到着順に直列化します。
// 作成が確定した仮 id は alias で確定 id に付け替え、待機中の変更を確定 id 側へ流します。
// 仮 id の alias は、その id の列に誰も並んでいなくなった時点で削除します。
type lanes struct {
	mu      sync.Mutex
	tails   map[string]chan struct{}
	aliases map[string]string
}

func newLanes() *lanes {
	return &lanes{
		tails:   make(map[string]chan struct{}),
		aliases: make(map[string]string),
	}
}

// acquire は id の順番が来るまで待ち、解放関数と実際の対象 id を返します。
// 待機中に ctx が終わった場合、確保した順番は前の変更の終了後に自動で解放されます。
func (l *lanes) acquire(ctx context.Context, id string) (func(), string, error) {
	for {
		release, prev, target, ok := l.enqueue(id)
		if !ok {
			return nil, "", fmt.Errorf("%q: %w", id, ErrNotFound)
		}

		if err := wait(ctx, prev, release); err != nil {
			return nil, "", err
		}

		// 自分の順番を手放す前に付け替え先を読みます。手放すと alias が削除されることがあります。
		next, ok := l.resolve(target)
		if ok && next == target {
			return release, target, nil
		}
		release()
		if !ok {
			return nil, "", fmt.Errorf("%q: %w", id, ErrNotFound)
		}
		id = next
	}
}

// enqueue は id を解決し、同じロックの中で対象 id の列の末尾に並びます。
func (l *lanes) enqueue(id string) (func(), chan struct{}, string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	target, ok := l.resolveLocked(id)
	if !ok {
		return nil, nil, "", false
	}

	mine := make(chan struct{})
	prev := l.tails[target]
	l.tails[target] = mine

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			if l.tails[target] == mine {
				delete(l.tails, target)
				delete(l.aliases, target)
			}
			l.mu.Unlock()
			close(mine)
		})
	}
	return release, prev, target, true
}

func wait(ctx context.Context, prev chan struct{}, release func()) error {
	if prev == nil {
		return nil
	}
	select {
	case <-prev:
		return nil
	case <-ctx.Done():
		go func() {
			<-prev
			release()
		}()
		return ctx.Err()
	}
}

// alias は仮 id を確定 id に対応付けます。to が空文字の場合、仮 id は消滅した扱いになります。
// 呼び出し元は from の列の順番を保持している必要があります。
func (l *lanes) alias(from, to string) {
	if from == to {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.aliases[from] = to
}

func (l *lanes) resolve(id string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolveLocked(id)
}

func (l *lanes) resolveLocked(id string) (string, bool) {
	for range len(l.aliases) + 1 {
		next, ok := l.aliases[id]
		if !ok {
			return id, true
		}
		if next == "" {
			return "", false
		}
		id = next
	}
	return id, true
}

func (l *lanes) busy(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.tails[id]
	return ok
}
