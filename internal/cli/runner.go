package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Runner は外部コマンドを実行するインターフェース
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner はos/execで外部コマンドを実行する
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner は標準出力/標準エラー出力につないだExecRunnerを返す
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run はコマンドを実行し終了を待つ
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	return cmd.Run()
}

// ExitCode はコマンドが0以外で終了した場合にその終了コードを返す。
// 実行自体に失敗した場合（コマンドが見つからない等）は ok=false
func ExitCode(err error) (code int, ok bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
