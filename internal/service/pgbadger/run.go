package pgbadger

import (
	"context"
	"fmt"

	"rdspgbadger/internal/service/common"
	"rdspgbadger/internal/service/rdslog"
)

// Run は認証情報の取得からレポート表示までを順に実行する
func Run(ctx context.Context, deps Deps, opts Options) error {
	out := deps.Out

	fmt.Fprintf(out, "%s %s 環境のRDSクライアントを作成します\n", common.ProcessIcon, opts.Env)
	cred, err := deps.Credentials.Get(ctx)
	if err != nil {
		return fmt.Errorf(common.GetErrorFormat, common.ErrorIcon, "認証情報", err)
	}
	api, err := deps.NewRDS(ctx, cred)
	if err != nil {
		return fmt.Errorf(common.CreateErrorFormat, common.ErrorIcon, "RDSクライアント", err)
	}

	fmt.Fprintf(out, common.SearchingFormat+"\n", common.SearchIcon, rdslog.FilenameFilter(opts.Date))
	files, err := rdslog.ListLogFiles(ctx, api, opts.InstanceID, opts.Date)
	if err != nil {
		return fmt.Errorf(common.ListErrorFormat, common.ErrorIcon, "ログファイル", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "%s 該当するログファイルが見つかりませんでした\n", common.WarningIcon)
	} else {
		rdslog.DisplayLogFiles(out, files)
	}

	dir, err := rdslog.CreateRunDir(deps.OutDir, opts.InstanceID, opts.Date, deps.Now())
	if err != nil {
		return err
	}

	results, err := rdslog.SaveLogFiles(ctx, api, dir, opts.InstanceID, files, out)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		rdslog.DisplayResults(out, results)
	}

	fmt.Fprintf(out, "%s PG Badger レポートを生成します\n", common.InfoIcon)
	report, err := GenerateReport(ctx, deps.Runner, dir, deps.Report)
	if err != nil {
		return err
	}

	if deps.Report.NoOpen {
		fmt.Fprintf(out, "%s レポート: %s\n", common.PartyIcon, report)
		return nil
	}
	fmt.Fprintf(out, "%s レポート %s を開きます\n", common.PartyIcon, report)
	return OpenReport(ctx, deps.Runner, report, deps.Report)
}
