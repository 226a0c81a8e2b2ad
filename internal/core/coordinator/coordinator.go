// Package coordinator はリモートの一覧とローカルのストアを楽観的に同期します。
//
// 変更はリモート呼び出しの前にストアへ反映し、呼び出しが成功すればサーバーの値で確定、
// 失敗すれば変更前の状態へ戻します。同じ id への変更は到着順に 1 件ずつ処理します。
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/admin-console-sync/internal/core/store"
)

// Remote はリモートの一覧に対する CRUD 呼び出しです。
type Remote[T, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) error
}

// Entity はエンティティ型ごとの操作をまとめます。
type Entity[T, P any] struct {
	Key    func(T) string
	WithID func(T, string) T
	Apply  func(T, P) T
}

// Option は Coordinator の設定を変更します。
type Option func(*options)

type options struct {
	logger  zerolog.Logger
	metrics Metrics
	tokens  func() string
	timeout time.Duration
}

// WithLogger はロガーを設定します。
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics は計測先を設定します。
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTokenSource は作成時の仮 id の採番方法を差し替えます。
func WithTokenSource(next func() string) Option {
	return func(o *options) {
		if next != nil {
			o.tokens = next
		}
	}
}

// WithTimeout はリモート呼び出し 1 回あたりの上限時間を設定します。0 は無制限です。
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// SequentialTokens は "tmp-1", "tmp-2" のように連番の仮 id を返す採番関数を生成します。
func SequentialTokens(prefix string) func() string {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s%d", prefix, n.Add(1))
	}
}

// Coordinator は 1 種類のエンティティの同期を担当します。
type Coordinator[T, P any] struct {
	name   string
	store  *store.Store[T]
	remote Remote[T, P]
	entity Entity[T, P]

	log     zerolog.Logger
	metrics Metrics
	tokens  func() string
	timeout time.Duration

	lanes    *lanes
	inflight sync.WaitGroup
	pending  atomic.Int64
}

// New は Coordinator を生成します。同じ種類のエンティティには同じ Store を共有してください。
func New[T, P any](name string, st *store.Store[T], remote Remote[T, P], entity Entity[T, P], opts ...Option) *Coordinator[T, P] {
	o := options{
		logger:  zerolog.Nop(),
		metrics: nopMetrics{},
		tokens:  func() string { return "tmp-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Coordinator[T, P]{
		name:    name,
		store:   st,
		remote:  remote,
		entity:  entity,
		log:     o.logger.With().Str("collection", name).Logger(),
		metrics: o.metrics,
		tokens:  o.tokens,
		timeout: o.timeout,
		lanes:   newLanes(),
	}
}

// Name はコレクション名を返します。
func (c *Coordinator[T, P]) Name() string {
	return c.name
}

// Store は同期先のストアを返します。
func (c *Coordinator[T, P]) Store() *store.Store[T] {
	return c.store
}

// Reload はリモートの一覧でストアを置き換えます。
// 一覧の取得に失敗した場合は警告を記録して空の一覧を反映し、原因をラップして返します。
func (c *Coordinator[T, P]) Reload(ctx context.Context) error {
	items, err := c.remote.List(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("list failed; publishing empty collection")
		c.metrics.IncReloadFailure(c.name)
		c.store.ReplaceAll(nil)
		return fmt.Errorf("reload %s: %w", c.name, err)
	}
	c.store.ReplaceAll(items)
	c.log.Debug().Int("count", len(items)).Msg("collection reloaded")
	return nil
}

// Get はリモートから 1 件取得します。失敗はそのまま返し、ストアは変更しません。
func (c *Coordinator[T, P]) Get(ctx context.Context, id string) (T, error) {
	target, ok := c.lanes.resolve(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("get %s %q: %w", c.name, id, ErrNotFound)
	}
	return c.remote.Get(ctx, target)
}

// Create は仮 id を付けた draft をストアへ追加してから作成を依頼します。
// 成功するとサーバーが採番した値で仮のエンティティを置き換え、失敗すると取り除きます。
func (c *Coordinator[T, P]) Create(ctx context.Context, draft T) (T, error) {
	token := c.tokens()
	release, _, err := c.lanes.acquire(ctx, token)
	if err != nil {
		var zero T
		return zero, err
	}

	c.store.Upsert(c.entity.WithID(draft, token))

	return c.await(ctx, OpCreate, token, release, func(rctx context.Context) (T, error) {
		created, err := c.remote.Create(rctx, c.entity.WithID(draft, ""))
		if err != nil {
			c.store.Remove(token)
			c.lanes.alias(token, "")
			var zero T
			return zero, &MutationError{Op: OpCreate, ID: token, Err: err}
		}
		c.store.Swap(token, created)
		c.lanes.alias(token, c.entity.Key(created))
		return created, nil
	})
}

// Update は patch をストアの値へ先に適用してから更新を依頼します。
// 失敗した場合は変更前の値へ戻します。ストアに無いエンティティは成功時にサーバーの値を追加します。
func (c *Coordinator[T, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	release, target, err := c.lanes.acquire(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}

	prior, _, found := c.store.Lookup(target)
	if found {
		c.store.Replace(target, c.entity.Apply(prior, patch))
	}

	return c.await(ctx, OpUpdate, target, release, func(rctx context.Context) (T, error) {
		updated, err := c.remote.Update(rctx, target, patch)
		if err != nil {
			if found {
				c.store.Replace(target, prior)
			}
			var zero T
			return zero, &MutationError{Op: OpUpdate, ID: target, Err: err}
		}
		c.store.Upsert(updated)
		return updated, nil
	})
}

// Delete はストアから先に取り除いてから削除を依頼します。失敗した場合は元の位置へ戻します。
// 成功した場合は、その時点のストアに id が残っていても取り除きます。
func (c *Coordinator[T, P]) Delete(ctx context.Context, id string) error {
	release, target, err := c.lanes.acquire(ctx, id)
	if err != nil {
		return err
	}

	prior, index, found := c.store.Lookup(target)
	if found {
		c.store.Remove(target)
	}

	_, err = c.await(ctx, OpDelete, target, release, func(rctx context.Context) (T, error) {
		var zero T
		if err := c.remote.Delete(rctx, target); err != nil {
			if found {
				c.store.Restore(index, prior)
			}
			return zero, &MutationError{Op: OpDelete, ID: target, Err: err}
		}
		c.store.Remove(target)
		return zero, nil
	})
	return err
}

// Pending は id に対する変更が処理中または待機中かどうかを返します。
func (c *Coordinator[T, P]) Pending(id string) bool {
	target, ok := c.lanes.resolve(id)
	if !ok {
		return false
	}
	return c.lanes.busy(target)
}

// Wait は処理中の変更がすべて終端状態になるまで待ちます。
func (c *Coordinator[T, P]) Wait() {
	c.inflight.Wait()
}

// await はリモート呼び出しと確定処理を別 goroutine で実行し、結果を待ちます。
// ctx が先に終わっても確定処理は続き、ストアには必ず反映されます。
func (c *Coordinator[T, P]) await(ctx context.Context, op Op, id string, release func(), reconcile func(context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	done := make(chan result, 1)
	started := time.Now()
	c.inflight.Add(1)
	c.metrics.SetPending(c.name, int(c.pending.Add(1)))

	go func() {
		defer c.inflight.Done()
		defer func() { c.metrics.SetPending(c.name, int(c.pending.Add(-1))) }()
		defer release()

		rctx, cancel := c.remoteContext(ctx)
		defer cancel()

		value, err := reconcile(rctx)
		outcome := OutcomeConfirmed
		if err != nil {
			outcome = OutcomeRolledBack
			c.log.Warn().Err(err).Str("op", string(op)).Str("id", id).Msg("mutation rolled back")
		} else {
			c.log.Debug().Str("op", string(op)).Str("id", id).Msg("mutation confirmed")
		}
		c.metrics.ObserveMutation(c.name, op, outcome, time.Since(started))
		done <- result{value: value, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (c *Coordinator[T, P]) remoteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		return context.WithTimeout(base, c.timeout)
	}
	return context.WithCancel(base)
}
