package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsinternal "rdspgbadger/internal/aws"
	"rdspgbadger/internal/cli"
	"rdspgbadger/internal/config"
	"rdspgbadger/internal/logging"
	"rdspgbadger/internal/service/creds"
	"rdspgbadger/internal/service/pgbadger"
	"rdspgbadger/internal/service/rdslog"

	"github.com/spf13/cobra"
)

// AppName はコマンド名
const AppName = "rdspgbadger"

// rootOptions はフラグで受け取る値
type rootOptions struct {
	env        string
	instanceID string
	date       string

	region         string
	profile        string
	secretsBackend string
	vaultPath      string
	secretID       string
	cache          string
	redisURL       string
	outDir         string
	openCmd        string
	noOpen         bool
	logLevel       string
}

// depsBuilder は設定から実行に必要な協調オブジェクトを組み立てる
type depsBuilder func(ctx context.Context, s config.Settings, profile string, out io.Writer) (pgbadger.Deps, func(), error)

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCmd(buildDeps)

func newRootCmd(build depsBuilder) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   AppName,
		Short: "RDSのPostgreSQLログをダウンロードしてPG Badgerレポートを生成する",
		Long: `RDSインスタンスのPostgreSQLログをダウンロードし、pgbadgerでHTMLレポートを生成して開きます。
AWSの認証情報はVaultから発行し、Redisに24時間キャッシュします。

【使い方】
  ` + AppName + ` -e production -i mydb -d 2024-01-15
  ` + AppName + ` -e staging -i mydb --cache memory --no-open

【出力先】
  out/{インスタンス識別子}-{日付}-{UNIX時刻}/`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return config.ValidateDate(opts.date)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true // 実行時エラーではUsage表示を抑制

			settings, err := config.Load()
			if err != nil {
				return fmt.Errorf("❌ エラー: %w", err)
			}
			applyFlags(cmd, opts, &settings)
			if err := settings.Validate(); err != nil {
				return fmt.Errorf("❌ エラー: %w", err)
			}
			logging.Init(logging.ParseLevel(settings.LogLevel))

			profile := opts.profile
			if settings.SecretsBackend == "secretsmanager" {
				profile = resolveProfile(cmd, profile)
			}

			deps, cleanup, err := build(cmd.Context(), settings, profile, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer cleanup()

			return pgbadger.Run(cmd.Context(), deps, pgbadger.Options{
				Env:        opts.env,
				InstanceID: opts.instanceID,
				Date:       opts.date,
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.env, "env", "e", "", "環境名 (必須)")
	f.StringVarP(&opts.instanceID, "instance-id", "i", "", "RDSインスタンス識別子 (必須)")
	f.StringVarP(&opts.date, "date", "d", "", "ログの日付 YYYY-MM-DD (ファイル名の部分一致に使用)")
	_ = cmd.MarkFlagRequired("env")
	_ = cmd.MarkFlagRequired("instance-id")

	f.StringVarP(&opts.region, "region", "R", "", "AWSリージョン (既定: us-east-1)")
	f.StringVarP(&opts.profile, "profile", "P", "", "AWSプロファイル (secretsmanagerバックエンド用)")
	f.StringVar(&opts.secretsBackend, "secrets-backend", "", "認証情報の発行元 vault|secretsmanager (既定: vault)")
	f.StringVar(&opts.vaultPath, "vault-path", "", "Vaultのシークレットパス (既定: aws/creds/administrator)")
	f.StringVar(&opts.secretID, "secret-id", "", "Secrets ManagerのシークレットID")
	f.StringVar(&opts.cache, "cache", "", "認証情報キャッシュ redis|memory (既定: redis)")
	f.StringVar(&opts.redisURL, "redis-url", "", "RedisのURL (既定: redis://localhost:6379/0)")
	f.StringVar(&opts.outDir, "out", "", "出力先のルートディレクトリ (既定: out)")
	f.StringVar(&opts.openCmd, "open-cmd", "", "レポートを開くコマンド (既定: open)")
	f.BoolVar(&opts.noOpen, "no-open", false, "レポートを生成した後に開かない")
	f.StringVar(&opts.logLevel, "log-level", "", "診断ログのレベル debug|info|warn|error (既定: warn)")

	return cmd
}

// applyFlags は指定されたフラグで環境変数の設定を上書きする
func applyFlags(cmd *cobra.Command, opts *rootOptions, s *config.Settings) {
	f := cmd.Flags()
	overrides := []struct {
		name  string
		value string
		dst   *string
	}{
		{"region", opts.region, &s.Region},
		{"secrets-backend", opts.secretsBackend, &s.SecretsBackend},
		{"vault-path", opts.vaultPath, &s.VaultPath},
		{"secret-id", opts.secretID, &s.SecretID},
		{"cache", opts.cache, &s.Cache},
		{"redis-url", opts.redisURL, &s.RedisURL},
		{"out", opts.outDir, &s.OutDir},
		{"open-cmd", opts.openCmd, &s.OpenCmd},
		{"log-level", opts.logLevel, &s.LogLevel},
	}
	for _, o := range overrides {
		if f.Changed(o.name) {
			*o.dst = o.value
		}
	}
	if f.Changed("no-open") {
		s.NoOpen = opts.noOpen
	}
}

// buildDeps は実際のVault・Redis・AWSにつながる協調オブジェクトを組み立てる
func buildDeps(ctx context.Context, s config.Settings, profile string, out io.Writer) (pgbadger.Deps, func(), error) {
	cleanup := func() {}

	var store creds.Store
	switch s.Cache {
	case "memory":
		store = creds.NewMemoryStore(nil)
	default:
		redisStore, err := creds.NewRedisStoreFromURL(s.RedisURL, s.LockTTL)
		if err != nil {
			return pgbadger.Deps{}, cleanup, err
		}
		store = redisStore
		cleanup = func() { _ = redisStore.Close() }
	}

	var issuer creds.Issuer
	switch s.SecretsBackend {
	case "secretsmanager":
		clients, err := awsinternal.NewAwsClients(ctx, awsinternal.Context{Profile: profile, Region: s.Region})
		if err != nil {
			cleanup()
			return pgbadger.Deps{}, func() {}, fmt.Errorf("❌ AWS設定の読み込みに失敗: %w", err)
		}
		issuer = creds.NewSecretsManagerIssuer(clients.SecretsManager(), s.SecretID)
	default:
		client, err := creds.NewVaultClient()
		if err != nil {
			cleanup()
			return pgbadger.Deps{}, func() {}, err
		}
		issuer = creds.NewVaultIssuer(client, s.VaultPath)
	}

	cache := creds.NewCache(store, issuer,
		creds.WithKey(s.CacheKey),
		creds.WithTTL(s.CacheTTL),
		creds.WithIssueDelay(s.IssueDelay),
	)

	deps := pgbadger.Deps{
		Credentials: cache,
		NewRDS: func(ctx context.Context, c creds.Credentials) (rdslog.API, error) {
			clients, err := awsinternal.NewAwsClients(ctx, awsinternal.Context{
				Region:          s.Region,
				AccessKeyID:     c.AccessKeyID,
				SecretAccessKey: c.SecretAccessKey,
				SessionToken:    c.SessionToken,
			})
			if err != nil {
				return nil, err
			}
			return clients.Rds(), nil
		},
		Runner: cli.NewExecRunner(),
		Now:    time.Now,
		Out:    out,
		OutDir: s.OutDir,
		Report: pgbadger.ReportConfig{
			PgbadgerBin: s.PgbadgerBin,
			OpenCmd:     s.OpenCmd,
			NoOpen:      s.NoOpen,
		},
	}
	return deps, cleanup, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "⚠️ 中断されました")
		}
		stop()
		os.Exit(1)
	}
}
