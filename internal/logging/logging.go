package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init はデフォルトのslogロガーを標準エラー出力向けに設定する。
// 標準出力は進捗表示専用のため、診断ログとは混ぜない。
func Init(level slog.Level) {
	InitWriter(os.Stderr, level)
}

// InitWriter は出力先を指定してデフォルトロガーを設定する
func InitWriter(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel は "debug" / "info" / "warn" / "error" を slog.Level に変換する。
// 不明な文字列は LevelWarn として扱う
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
