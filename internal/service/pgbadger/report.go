package pgbadger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"rdspgbadger/internal/cli"
	"rdspgbadger/internal/service/rdslog"

	"github.com/gobwas/glob"
)

var inputGlob = glob.MustCompile(InputPattern)

// ReportPath は実行ディレクトリに対応するレポートのパスを返す（dir/<dir名>.html）
func ReportPath(dir string) string {
	return filepath.Join(dir, filepath.Base(dir)+".html")
}

// ReportInputs はdir/error配下のローテーション済みログを名前順に返す。
// 一致するファイルがなければ、シェルと同じく展開前のパターンを返す
func ReportInputs(dir string) ([]string, error) {
	errorDir := filepath.Join(dir, rdslog.ErrorDirName)
	entries, err := os.ReadDir(errorDir)
	if err != nil {
		return nil, fmt.Errorf("%s の読み込みに失敗: %w", errorDir, err)
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() || !inputGlob.Match(e.Name()) {
			continue
		}
		inputs = append(inputs, filepath.Join(errorDir, e.Name()))
	}
	if len(inputs) == 0 {
		return []string{filepath.Join(errorDir, InputPattern)}, nil
	}
	sort.Strings(inputs)
	return inputs, nil
}

// GenerateReport はpgbadgerでHTMLレポートを生成し、そのパスを返す。
// pgbadgerの終了コードは解釈しない
func GenerateReport(ctx context.Context, runner cli.Runner, dir string, cfg ReportConfig) (string, error) {
	report := ReportPath(dir)
	inputs, err := ReportInputs(dir)
	if err != nil {
		return "", err
	}

	args := append([]string{"--prefix", LogLinePrefix, "--outfile", report}, inputs...)
	if err := runTool(ctx, runner, binOrDefault(cfg.PgbadgerBin, "pgbadger"), args...); err != nil {
		return "", err
	}
	return report, nil
}

// OpenReport はレポートを開く。コマンドの終了コードは解釈しない
func OpenReport(ctx context.Context, runner cli.Runner, report string, cfg ReportConfig) error {
	return runTool(ctx, runner, binOrDefault(cfg.OpenCmd, "open"), report)
}

// runTool は外部コマンドを実行する。0以外の終了は警告に留め、
// コマンドが起動できなかった場合だけエラーを返す
func runTool(ctx context.Context, runner cli.Runner, name string, args ...string) error {
	err := runner.Run(ctx, name, args...)
	if err == nil {
		return nil
	}
	if code, ok := cli.ExitCode(err); ok {
		slog.Warn("external command exited with non-zero status", "command", name, "exit_code", code)
		return nil
	}
	return fmt.Errorf("%s の実行に失敗: %w", name, err)
}

func binOrDefault(bin, def string) string {
	if bin == "" {
		return def
	}
	return bin
}
