package rdslog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunDirName は {instanceId}-{date}-{epochSeconds} 形式のディレクトリ名を返す
func RunDirName(instanceID, date string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", instanceID, date, now.Unix())
}

// CreateRunDir はroot配下に今回の実行専用のディレクトリとerrorサブディレクトリを作成する。
// 同名のディレクトリが既にあればエラーにする
func CreateRunDir(root, instanceID, date string, now time.Time) (string, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("出力ディレクトリ %s の作成に失敗: %w", root, err)
	}

	dir := filepath.Join(root, RunDirName(instanceID, date, now))
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", fmt.Errorf("出力ディレクトリ %s の作成に失敗: %w", dir, err)
	}
	if err := os.Mkdir(filepath.Join(dir, ErrorDirName), 0755); err != nil {
		return "", fmt.Errorf("出力ディレクトリ %s の作成に失敗: %w", filepath.Join(dir, ErrorDirName), err)
	}
	return dir, nil
}
