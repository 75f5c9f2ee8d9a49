package creds

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultKey        = "rdspgbadger-creds"
	DefaultTTL        = 24 * time.Hour
	DefaultIssueDelay = 5 * time.Second // 発行直後のキーが使えるようになるまでの待機
)

// Cache は発行した認証情報を共有キャッシュに保存し、期限内は再発行しない。
// 同じキーの発行はプロセス内ではsingleflight、プロセス間ではStoreのロックで1回に絞る
type Cache struct {
	store      Store
	issuer     Issuer
	key        string
	ttl        time.Duration
	issueDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error

	group singleflight.Group

	mu   sync.Mutex
	memo *Credentials
}

// Option はCacheの設定を変更する
type Option func(*Cache)

// WithKey はキャッシュキーを変更する
func WithKey(key string) Option {
	return func(c *Cache) { c.key = key }
}

// WithTTL はキャッシュの有効期限を変更する
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithIssueDelay は発行後の待機時間を変更する
func WithIssueDelay(d time.Duration) Option {
	return func(c *Cache) { c.issueDelay = d }
}

// NewCache はCacheを作成する
func NewCache(store Store, issuer Issuer, opts ...Option) *Cache {
	c := &Cache{
		store:      store,
		issuer:     issuer,
		key:        DefaultKey,
		ttl:        DefaultTTL,
		issueDelay: DefaultIssueDelay,
		sleep:      sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get は認証情報を返す。プロセス内で一度取得できた値はそのまま再利用する。
// 共有される取得処理は呼び出し元のキャンセルでは止まらず、
// キャンセルされた呼び出し元だけが ctx.Err() で戻る
func (c *Cache) Get(ctx context.Context) (Credentials, error) {
	if cred, ok := c.memoized(); ok {
		return cred, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.key, func() (interface{}, error) {
		cred, err := c.fetch(shared)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.memo == nil {
			c.memo = &cred
		}
		c.mu.Unlock()
		return cred, nil
	})

	select {
	case <-ctx.Done():
		return Credentials{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Credentials{}, res.Err
		}
		return res.Val.(Credentials), nil
	}
}

func (c *Cache) memoized() (Credentials, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.memo == nil {
		return Credentials{}, false
	}
	return *c.memo, true
}

func (c *Cache) fetch(ctx context.Context) (Credentials, error) {
	if cred, ok, err := c.lookup(ctx); err != nil || ok {
		return cred, err
	}

	var cred Credentials
	slog.Debug("credential cache miss, waiting for lock", "key", c.key)
	err := c.store.WithLock(ctx, c.key, func(ctx context.Context) error {
		// ロック待ちの間に他のプロセスが保存していればそれを使う
		got, ok, err := c.lookup(ctx)
		if err != nil {
			return err
		}
		if ok {
			cred = got
			return nil
		}

		issued, err := c.issuer.Issue(ctx)
		if err != nil {
			return fmt.Errorf("認証情報の発行に失敗: %w", err)
		}
		slog.Debug("issued new credentials", "key", c.key, "delay", c.issueDelay)
		if err := c.sleep(ctx, c.issueDelay); err != nil {
			return err
		}

		raw, err := json.Marshal(issued)
		if err != nil {
			return fmt.Errorf("認証情報のエンコードに失敗: %w", err)
		}
		if err := c.store.SetWithExpiry(ctx, c.key, raw, c.ttl); err != nil {
			return fmt.Errorf("認証情報のキャッシュ保存に失敗: %w", err)
		}
		cred = issued
		return nil
	})
	if err != nil {
		return Credentials{}, err
	}
	return cred, nil
}

// lookup はキャッシュから認証情報を読み出す。壊れた値はキャッシュなしとして扱う
func (c *Cache) lookup(ctx context.Context) (Credentials, bool, error) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return Credentials{}, false, fmt.Errorf("認証情報キャッシュの読み込みに失敗: %w", err)
	}
	if !ok {
		return Credentials{}, false, nil
	}

	var cred Credentials
	if err := json.Unmarshal(raw, &cred); err != nil || !cred.Valid() {
		slog.Warn("ignoring malformed cached credentials", "key", c.key)
		return Credentials{}, false, nil
	}
	slog.Debug("credential cache hit", "key", c.key)
	return cred, true, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
