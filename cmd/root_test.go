package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"rdspgbadger/internal/config"
	"rdspgbadger/internal/service/creds"
	"rdspgbadger/internal/service/pgbadger"
	"rdspgbadger/internal/service/rdslog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCredentials struct{}

func (stubCredentials) Get(context.Context) (creds.Credentials, error) {
	return creds.Credentials{AccessKeyID: "AKIA", SecretAccessKey: "sek"}, nil
}

type emptyRDS struct{}

func (emptyRDS) DescribeDBLogFiles(context.Context, *rds.DescribeDBLogFilesInput, ...func(*rds.Options)) (*rds.DescribeDBLogFilesOutput, error) {
	return &rds.DescribeDBLogFilesOutput{DescribeDBLogFiles: []types.DescribeDBLogFilesDetails{}}, nil
}

func (emptyRDS) DownloadDBLogFilePortion(context.Context, *rds.DownloadDBLogFilePortionInput, ...func(*rds.Options)) (*rds.DownloadDBLogFilePortionOutput, error) {
	return &rds.DownloadDBLogFilePortionOutput{LogFileData: aws.String(""), AdditionalDataPending: aws.Bool(false)}, nil
}

type noopRunner struct{ names []string }

func (r *noopRunner) Run(_ context.Context, name string, _ ...string) error {
	r.names = append(r.names, name)
	return nil
}

// fakeBuilder は呼び出しを記録し、ネットワークにつながらない協調オブジェクトを返す
type fakeBuilder struct {
	calls    int
	settings config.Settings
	runner   *noopRunner
}

func (b *fakeBuilder) build(_ context.Context, s config.Settings, _ string, out io.Writer) (pgbadger.Deps, func(), error) {
	b.calls++
	b.settings = s
	b.runner = &noopRunner{}
	return pgbadger.Deps{
		Credentials: stubCredentials{},
		NewRDS: func(context.Context, creds.Credentials) (rdslog.API, error) {
			return emptyRDS{}, nil
		},
		Runner: b.runner,
		Now:    func() time.Time { return time.Unix(1705276800, 0) },
		Out:    out,
		OutDir: s.OutDir,
		Report: pgbadger.ReportConfig{OpenCmd: s.OpenCmd, NoOpen: s.NoOpen},
	}, func() {}, nil
}

func execute(t *testing.T, b *fakeBuilder, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(b.build)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_MissingRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		flag string
	}{
		{name: "no env", args: []string{"-i", "mydb"}, flag: "env"},
		{name: "no instance id", args: []string{"-e", "production"}, flag: "instance-id"},
		{name: "nothing", args: []string{"-d", "2024-01-15"}, flag: "env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBuilder{}
			out, err := execute(t, b, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.flag)
			assert.Contains(t, out, "Usage:")
			assert.Equal(t, 0, b.calls, "フラグ不足の場合は何も組み立てない")
		})
	}
}

func TestRootCmd_InvalidDate(t *testing.T) {
	b := &fakeBuilder{}
	_, err := execute(t, b, "-e", "production", "-i", "mydb", "-d", "15/01/2024")
	assert.ErrorIs(t, err, config.ErrInvalidDate)
	assert.Equal(t, 0, b.calls)
}

func TestRootCmd_RunsWithFlagOverrides(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "reports")
	b := &fakeBuilder{}

	out, err := execute(t, b,
		"-e", "production", "-i", "mydb", "-d", "2024-01-15",
		"--out", outDir, "--cache", "memory", "--open-cmd", "xdg-open", "-R", "ap-northeast-1",
	)
	require.NoError(t, err)
	assert.Equal(t, 1, b.calls)

	assert.Equal(t, outDir, b.settings.OutDir)
	assert.Equal(t, "memory", b.settings.Cache)
	assert.Equal(t, "ap-northeast-1", b.settings.Region)
	assert.Equal(t, "vault", b.settings.SecretsBackend)
	assert.Equal(t, []string{"pgbadger", "xdg-open"}, b.runner.names)

	assert.DirExists(t, filepath.Join(outDir, "mydb-2024-01-15-1705276800", "error"))
	assert.Contains(t, out, "production")
}

func TestRootCmd_NoOpen(t *testing.T) {
	b := &fakeBuilder{}
	_, err := execute(t, b,
		"-e", "dev", "-i", "mydb", "--out", t.TempDir(), "--no-open",
	)
	require.NoError(t, err)
	assert.True(t, b.settings.NoOpen)
	assert.Equal(t, []string{"pgbadger"}, b.runner.names)
}

func TestRootCmd_FlagsFixInvalidEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want func(t *testing.T, s config.Settings)
	}{
		{
			name: "cache",
			env:  map[string]string{"RDSPGBADGER_CACHE": "memcached"},
			args: []string{"--cache", "memory"},
			want: func(t *testing.T, s config.Settings) { assert.Equal(t, "memory", s.Cache) },
		},
		{
			name: "secret id",
			env:  map[string]string{"RDSPGBADGER_SECRETS_BACKEND": "secretsmanager"},
			args: []string{"--secret-id", "my/secret"},
			want: func(t *testing.T, s config.Settings) {
				assert.Equal(t, "secretsmanager", s.SecretsBackend)
				assert.Equal(t, "my/secret", s.SecretID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			b := &fakeBuilder{}
			args := append([]string{"-e", "dev", "-i", "mydb", "--out", t.TempDir(), "--no-open"}, tt.args...)

			_, err := execute(t, b, args...)
			require.NoError(t, err)
			require.Equal(t, 1, b.calls)
			tt.want(t, b.settings)
		})
	}
}

func TestRootCmd_InvalidEnvWithoutOverride(t *testing.T) {
	t.Setenv("RDSPGBADGER_CACHE", "memcached")
	b := &fakeBuilder{}

	_, err := execute(t, b, "-e", "dev", "-i", "mydb")
	assert.ErrorContains(t, err, "memcached")
	assert.Equal(t, 0, b.calls)
}

func TestRootCmd_InvalidBackend(t *testing.T) {
	b := &fakeBuilder{}
	_, err := execute(t, b, "-e", "dev", "-i", "mydb", "--secrets-backend", "env")
	require.Error(t, err)
	assert.Equal(t, 0, b.calls)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "rdspgbadger version dev\n", out.String())
}
