package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"rdspgbadger/cmd"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	docsDir := "./docs"

	// 既存のdocsディレクトリをクリーン
	if err := os.RemoveAll(docsDir); err != nil {
		log.Fatalf("Failed to clean docs directory: %v", err)
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		log.Fatalf("Failed to create docs directory: %v", err)
	}

	// ルートコマンドはdocs/README.mdとして生成
	if err := genSingleMarkdown(cmd.RootCmd, filepath.Join(docsDir, "README.md")); err != nil {
		log.Fatalf("Failed to generate root documentation: %v", err)
	}

	fileCount := 1
	for _, subCmd := range cmd.RootCmd.Commands() {
		if !subCmd.IsAvailableCommand() || subCmd.IsAdditionalHelpTopicCommand() {
			continue
		}
		filename := filepath.Join(docsDir, subCmd.Name()+".md")
		if err := genSingleMarkdown(subCmd, filename); err != nil {
			log.Printf("Failed to generate documentation for %s: %v", subCmd.Name(), err)
			continue
		}
		fileCount++
	}

	fmt.Printf("✅ Documentation generated in %s (%d files)\n", docsDir, fileCount)
}

// customLinkHandler はドキュメント内のリンクをカスタマイズ
func customLinkHandler(name string) string {
	// rdspgbadger.md -> README.md
	if name == cmd.AppName+".md" {
		return "README.md"
	}
	// rdspgbadger_version.md -> version.md
	return strings.TrimPrefix(name, cmd.AppName+"_")
}

// genSingleMarkdown は単一のコマンドのドキュメントを生成
func genSingleMarkdown(c *cobra.Command, filename string) error {
	c.DisableAutoGenTag = true

	buf := new(bytes.Buffer)
	if err := doc.GenMarkdownCustom(c, buf, customLinkHandler); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0644)
}
