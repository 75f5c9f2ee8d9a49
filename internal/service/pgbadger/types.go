package pgbadger

import (
	"context"
	"io"
	"time"

	"rdspgbadger/internal/cli"
	"rdspgbadger/internal/service/creds"
	"rdspgbadger/internal/service/rdslog"
)

const (
	// LogLinePrefix はRDS PostgreSQLの log_line_prefix
	LogLinePrefix = "%t:%r:%u@%d:[%p]:"
	// InputPattern はpgbadgerに渡すローテーション済みログのパターン
	InputPattern = "*.log.*"
)

// Options は1回の実行で指定される値
type Options struct {
	Env        string
	InstanceID string
	Date       string
}

// ReportConfig はレポート生成と表示のコマンド設定
type ReportConfig struct {
	PgbadgerBin string // 既定は "pgbadger"
	OpenCmd     string // 既定は "open"
	NoOpen      bool
}

// CredentialSource は認証情報を返す
type CredentialSource interface {
	Get(ctx context.Context) (creds.Credentials, error)
}

// Deps はRunが使う外部の協調オブジェクト
type Deps struct {
	Credentials CredentialSource
	NewRDS      func(ctx context.Context, c creds.Credentials) (rdslog.API, error)
	Runner      cli.Runner
	Now         func() time.Time
	Out         io.Writer
	OutDir      string
	Report      ReportConfig
}
