package rdslog

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/rds"
)

const (
	// LogFilePrefix はPostgreSQLのログファイル名の接頭辞
	LogFilePrefix = "postgresql.log."
	// InitialMarker はログファイルの先頭を示すマーカー
	InitialMarker = "0"
	// PortionLines は1回のダウンロードで要求する最大行数
	PortionLines int32 = 9999
	// ErrorDirName はRDSのログファイル名に含まれるサブディレクトリ
	ErrorDirName = "error"
)

var ErrUnsafeName = errors.New("ログファイル名が出力ディレクトリの外を指しています")

// API はログ一覧取得とダウンロードに使うRDSクライアントのメソッド
type API interface {
	DescribeDBLogFiles(ctx context.Context, params *rds.DescribeDBLogFilesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBLogFilesOutput, error)
	DownloadDBLogFilePortion(ctx context.Context, params *rds.DownloadDBLogFilePortionInput, optFns ...func(*rds.Options)) (*rds.DownloadDBLogFilePortionOutput, error)
}

// LogFile はRDSインスタンス上のログファイル
type LogFile struct {
	Name        string
	Size        int64
	LastWritten *int64 // Unixミリ秒
}

// Result は1ファイル分のダウンロード結果
type Result struct {
	Name     string
	Path     string
	Portions int
	Bytes    int64
}
