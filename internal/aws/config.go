package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// LoadAwsConfig は認証情報からAWS設定を読み込む
// 静的な認証情報がある場合はプロファイルより優先する
func LoadAwsConfig(ctx context.Context, awsCtx Context) (aws.Config, error) {
	opts := make([]func(*config.LoadOptions) error, 0)

	if awsCtx.HasStaticCredentials() {
		provider := credentials.NewStaticCredentialsProvider(awsCtx.AccessKeyID, awsCtx.SecretAccessKey, awsCtx.SessionToken)
		opts = append(opts, config.WithCredentialsProvider(provider))
	} else if awsCtx.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(awsCtx.Profile))
	}
	if awsCtx.Region != "" {
		opts = append(opts, config.WithRegion(awsCtx.Region))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}
