package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// resolveProfile はフラグまたは環境変数 AWS_PROFILE からプロファイルを決定する。
// どちらもなければ空のまま返し、デフォルトの認証チェーンに任せる
func resolveProfile(cmd *cobra.Command, profile string) string {
	if profile != "" {
		return profile
	}
	envProfile := os.Getenv("AWS_PROFILE")
	if envProfile != "" {
		cmd.Println("🔍 環境変数 AWS_PROFILE の値 '" + envProfile + "' を使用します")
	}
	return envProfile
}
