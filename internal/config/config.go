// Package config は環境変数から実行設定を読み込む。
// コマンドラインフラグが指定された場合はそちらが優先される。
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix は環境変数のプレフィックス（例: RDSPGBADGER_REDIS_URL）
const EnvPrefix = "RDSPGBADGER"

// DateLayout は --date に指定できる日付の形式
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("日付は YYYY-MM-DD 形式で指定してください")

// Settings は環境変数から読み込む設定値
type Settings struct {
	Region         string        `envconfig:"REGION" default:"us-east-1"`
	SecretsBackend string        `envconfig:"SECRETS_BACKEND" default:"vault"`
	VaultPath      string        `envconfig:"VAULT_PATH" default:"aws/creds/administrator"`
	SecretID       string        `envconfig:"SECRET_ID"`
	Cache          string        `envconfig:"CACHE" default:"redis"`
	RedisURL       string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	CacheKey       string        `envconfig:"CACHE_KEY" default:"rdspgbadger-creds"`
	CacheTTL       time.Duration `envconfig:"CACHE_TTL" default:"24h"`
	IssueDelay     time.Duration `envconfig:"ISSUE_DELAY" default:"5s"`
	LockTTL        time.Duration `envconfig:"LOCK_TTL" default:"1m"`
	OutDir         string        `envconfig:"OUT_DIR" default:"out"`
	OpenCmd        string        `envconfig:"OPEN_CMD" default:"open"`
	NoOpen         bool          `envconfig:"NO_OPEN"`
	PgbadgerBin    string        `envconfig:"PGBADGER_BIN" default:"pgbadger"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"warn"`
}

// Load は環境変数から設定を読み込む。
// フラグで上書きしてから Validate で検証すること
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return Settings{}, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}
	return s, nil
}

// Validate は設定値の組み合わせを検証する
func (s Settings) Validate() error {
	switch s.SecretsBackend {
	case "vault", "secretsmanager":
	default:
		return fmt.Errorf("未対応のシークレットバックエンド: %q (vault / secretsmanager)", s.SecretsBackend)
	}
	if s.SecretsBackend == "secretsmanager" && s.SecretID == "" {
		return errors.New("secretsmanager バックエンドには --secret-id が必要です")
	}
	switch s.Cache {
	case "redis", "memory":
	default:
		return fmt.Errorf("未対応のキャッシュ: %q (redis / memory)", s.Cache)
	}
	if s.CacheTTL <= 0 {
		return fmt.Errorf("キャッシュTTLは正の値が必要です: %s", s.CacheTTL)
	}
	if s.IssueDelay < 0 {
		return fmt.Errorf("発行後の待機時間は0以上が必要です: %s", s.IssueDelay)
	}
	// ロックは更新しないため、発行後の待機より長く保持できる必要がある
	if s.Cache == "redis" && s.LockTTL <= s.IssueDelay {
		return fmt.Errorf("ロックTTL (%s) は発行後の待機時間 (%s) より長くしてください", s.LockTTL, s.IssueDelay)
	}
	return nil
}

// ValidateDate は日付フィルタを検証する。空文字は「フィルタなし」として許可する
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
