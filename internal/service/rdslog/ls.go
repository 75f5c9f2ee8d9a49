package rdslog

import (
	"context"
	"io"

	"rdspgbadger/internal/service/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// FilenameFilter は日付からファイル名の部分一致フィルタを作る
func FilenameFilter(date string) string {
	return LogFilePrefix + date
}

// ListLogFiles は日付に一致するログファイルをAPIが返した順に全ページ取得する
func ListLogFiles(ctx context.Context, api API, instanceID, date string) ([]LogFile, error) {
	input := &rds.DescribeDBLogFilesInput{
		DBInstanceIdentifier: aws.String(instanceID),
		FilenameContains:     aws.String(FilenameFilter(date)),
	}

	var files []LogFile
	paginator := rds.NewDescribeDBLogFilesPaginator(api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapAPIError("ログファイル一覧の取得", err)
		}
		for _, d := range page.DescribeDBLogFiles {
			if d.LogFileName == nil {
				continue
			}
			files = append(files, LogFile{
				Name:        *d.LogFileName,
				Size:        aws.ToInt64(d.Size),
				LastWritten: d.LastWritten,
			})
		}
	}

	return files, nil
}

// DisplayLogFiles はログファイル一覧をテーブル形式で表示する
func DisplayLogFiles(w io.Writer, files []LogFile) {
	columns := []common.TableColumn{
		{Header: "ログファイル"},
		{Header: "サイズ"},
		{Header: "最終更新"},
	}
	data := make([][]string, 0, len(files))
	for _, f := range files {
		data = append(data, []string{f.Name, common.FormatBytes(f.Size), common.FormatTimestamp(f.LastWritten)})
	}
	common.PrintTable(w, "ログファイル一覧", columns, data)
}
