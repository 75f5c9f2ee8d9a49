package creds

import (
	"context"
	"errors"
	"time"
)

var ErrNoCredentials = errors.New("シークレットにアクセスキーが含まれていません")

// Credentials はシークレットバックエンドが発行したAWSアクセスキー
type Credentials struct {
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty"`
}

// Valid はアクセスキーとシークレットキーが揃っているかを返す
func (c Credentials) Valid() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Issuer は新しい認証情報を発行するシークレットバックエンド
type Issuer interface {
	Issue(ctx context.Context) (Credentials, error)
}

// Store は複数プロセスで共有されるキャッシュとロック
type Store interface {
	// Get は有効期限内の値を返す。値がなければ ok=false
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// SetWithExpiry は値をTTL付きで保存する
	SetWithExpiry(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// WithLock はキーに対応する排他ロックを取得してfnを実行する
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
