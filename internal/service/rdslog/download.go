package rdslog

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
)

// DownloadLogFile はログファイルをマーカー "0" から順に取得してwに書き込む。
// 各ポーションの後には改行を付ける（末尾が改行の場合を除く）。
// APIが AdditionalDataPending=false を返すまで続ける
func DownloadLogFile(ctx context.Context, api API, instanceID, name string, w io.Writer, onPortion func()) (Result, error) {
	result := Result{Name: name}
	marker := InitialMarker

	for {
		out, err := api.DownloadDBLogFilePortion(ctx, &rds.DownloadDBLogFilePortionInput{
			DBInstanceIdentifier: aws.String(instanceID),
			LogFileName:          aws.String(name),
			Marker:               aws.String(marker),
			NumberOfLines:        aws.Int32(PortionLines),
		})
		if err != nil {
			return result, wrapAPIError(name+" のダウンロード", err)
		}
		result.Portions++

		n, err := writeLine(w, aws.ToString(out.LogFileData))
		result.Bytes += n
		if err != nil {
			return result, err
		}
		if onPortion != nil {
			onPortion()
		}

		if !aws.ToBool(out.AdditionalDataPending) || out.Marker == nil {
			return result, nil
		}
		marker = *out.Marker
	}
}

func writeLine(w io.Writer, data string) (int64, error) {
	if !strings.HasSuffix(data, "\n") {
		data += "\n"
	}
	n, err := io.WriteString(w, data)
	return int64(n), err
}
