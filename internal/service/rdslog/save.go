package rdslog

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"rdspgbadger/internal/service/common"

	"github.com/schollz/progressbar/v3"
)

// LocalPath はログファイル名に対応するローカルパスを返す。
// "error/postgresql.log.…" のような名前はdir配下のサブディレクトリに置く
func LocalPath(dir, name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %s", ErrUnsafeName, name)
	}
	return filepath.Join(dir, name), nil
}

// SaveLogFiles はログファイルを1つずつdir配下にダウンロードする。
// 途中で失敗した場合もそれまでに書き込んだファイルは残す
func SaveLogFiles(ctx context.Context, api API, dir, instanceID string, files []LogFile, out io.Writer) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		res, err := saveLogFile(ctx, api, dir, instanceID, f.Name, out)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func saveLogFile(ctx context.Context, api API, dir, instanceID, name string, out io.Writer) (Result, error) {
	path, err := LocalPath(dir, name)
	if err != nil {
		return Result{Name: name}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Result{Name: name}, fmt.Errorf(common.CreateErrorFormat, common.ErrorIcon, filepath.Dir(path), err)
	}

	fmt.Fprintf(out, common.DownloadingFormat+"\n", common.DownloadIcon, name)
	file, err := os.Create(path)
	if err != nil {
		return Result{Name: name}, fmt.Errorf(common.CreateErrorFormat, common.ErrorIcon, path, err)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("portions"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
	)

	w := bufio.NewWriter(file)
	res, err := DownloadLogFile(ctx, api, instanceID, name, w, func() { _ = bar.Add(1) })
	res.Path = path
	_ = bar.Finish()
	fmt.Fprintln(out)

	if flushErr := w.Flush(); err == nil && flushErr != nil {
		err = fmt.Errorf("%s の書き込みに失敗: %w", path, flushErr)
	}
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%s のクローズに失敗: %w", path, closeErr)
	}
	if err != nil {
		return res, err
	}

	fmt.Fprintf(out, common.SaveSuccessFormat+"\n", common.SuccessIcon, path)
	return res, nil
}

// DisplayResults はダウンロード結果をテーブル形式で表示する
func DisplayResults(w io.Writer, results []Result) {
	columns := []common.TableColumn{
		{Header: "保存先"},
		{Header: "ポーション数"},
		{Header: "サイズ"},
	}
	data := make([][]string, 0, len(results))
	for _, r := range results {
		data = append(data, []string{r.Path, fmt.Sprintf("%d", r.Portions), common.FormatBytes(r.Bytes)})
	}
	common.PrintTable(w, "ダウンロード結果", columns, data)
}
