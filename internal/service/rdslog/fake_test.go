package rdslog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
)

// fakeRDS はログファイルごとのポーションを順に返すRDS APIのフェイク
type fakeRDS struct {
	mu sync.Mutex

	// pages はDescribeDBLogFilesの各ページで返すファイル名
	pages [][]string
	// portions はファイル名ごとのポーション本文
	portions map[string][]string

	describeInputs []rds.DescribeDBLogFilesInput
	downloadInputs []rds.DownloadDBLogFilePortionInput

	describeErr error
	downloadErr error
}

func (f *fakeRDS) DescribeDBLogFiles(_ context.Context, in *rds.DescribeDBLogFilesInput, _ ...func(*rds.Options)) (*rds.DescribeDBLogFilesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.describeInputs = append(f.describeInputs, *in)
	if f.describeErr != nil {
		return nil, f.describeErr
	}

	page := 0
	if in.Marker != nil {
		page, _ = strconv.Atoi(*in.Marker)
	}
	out := &rds.DescribeDBLogFilesOutput{}
	if page < len(f.pages) {
		for _, name := range f.pages[page] {
			out.DescribeDBLogFiles = append(out.DescribeDBLogFiles, types.DescribeDBLogFilesDetails{
				LogFileName: aws.String(name),
				Size:        aws.Int64(int64(len(name))),
				LastWritten: aws.Int64(1705276800000),
			})
		}
	}
	if page+1 < len(f.pages) {
		out.Marker = aws.String(strconv.Itoa(page + 1))
	}
	return out, nil
}

func (f *fakeRDS) DownloadDBLogFilePortion(_ context.Context, in *rds.DownloadDBLogFilePortionInput, _ ...func(*rds.Options)) (*rds.DownloadDBLogFilePortionOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadInputs = append(f.downloadInputs, *in)
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}

	name := aws.ToString(in.LogFileName)
	chunks, ok := f.portions[name]
	if !ok {
		return nil, fmt.Errorf("unknown log file %s", name)
	}

	// マーカー "0" を先頭、以降は "m<index>" とする
	idx := 0
	if m := aws.ToString(in.Marker); m != InitialMarker {
		idx, _ = strconv.Atoi(m[1:])
	}
	out := &rds.DownloadDBLogFilePortionOutput{
		AdditionalDataPending: aws.Bool(idx+1 < len(chunks)),
	}
	if idx < len(chunks) {
		out.LogFileData = aws.String(chunks[idx])
	}
	out.Marker = aws.String(fmt.Sprintf("m%d", idx+1))
	return out, nil
}

func (f *fakeRDS) downloadCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, in := range f.downloadInputs {
		if aws.ToString(in.LogFileName) == name {
			n++
		}
	}
	return n
}
