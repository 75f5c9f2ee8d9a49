package pgbadger

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"sync"
	"testing"

	"rdspgbadger/internal/service/creds"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

type call struct {
	Name string
	Args []string
}

// recordingRunner は実行されたコマンドを記録し、名前ごとに決めたエラーを返す
type recordingRunner struct {
	mu    sync.Mutex
	calls []call
	errs  map[string]error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{Name: name, Args: append([]string(nil), args...)})
	return r.errs[name]
}

// exitError は実際のコマンドを終了コード付きで失敗させて *exec.ExitError を得る
func exitError(t *testing.T, code string) error {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sh が必要")
	}
	err := exec.Command("sh", "-c", "exit "+code).Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("ExitErrorが得られません: %v", err)
	}
	return err
}

type staticCredentials struct {
	cred  creds.Credentials
	err   error
	calls int
}

func (s *staticCredentials) Get(context.Context) (creds.Credentials, error) {
	s.calls++
	return s.cred, s.err
}

// singlePageRDS は1ページだけの一覧と、1ポーションずつのダウンロードを返す
type singlePageRDS struct {
	names     []string
	downloads int
}

func (f *singlePageRDS) DescribeDBLogFiles(_ context.Context, _ *rds.DescribeDBLogFilesInput, _ ...func(*rds.Options)) (*rds.DescribeDBLogFilesOutput, error) {
	out := &rds.DescribeDBLogFilesOutput{}
	for _, n := range f.names {
		out.DescribeDBLogFiles = append(out.DescribeDBLogFiles, types.DescribeDBLogFilesDetails{LogFileName: aws.String(n)})
	}
	return out, nil
}

func (f *singlePageRDS) DownloadDBLogFilePortion(_ context.Context, in *rds.DownloadDBLogFilePortionInput, _ ...func(*rds.Options)) (*rds.DownloadDBLogFilePortionOutput, error) {
	f.downloads++
	return &rds.DownloadDBLogFilePortionOutput{
		LogFileData:           aws.String("log of " + aws.ToString(in.LogFileName)),
		AdditionalDataPending: aws.Bool(false),
	}, nil
}
