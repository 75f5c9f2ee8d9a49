package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Clients AwsClients はAWS設定と各サービスクライアントを管理
type Clients struct {
	cfg aws.Config

	// 遅延初期化されるクライアント群
	rds            *rds.Client
	secretsManager *secretsmanager.Client
}

// NewAwsClients は認証情報からAWS設定を読み込んでクライアント管理構造体を作成
func NewAwsClients(ctx context.Context, awsCtx Context) (*Clients, error) {
	cfg, err := LoadAwsConfig(ctx, awsCtx)
	if err != nil {
		return nil, err
	}

	return NewAwsClientsFromConfig(cfg), nil
}

// NewAwsClientsFromConfig は読み込み済みのAWS設定からクライアント管理構造体を作成
func NewAwsClientsFromConfig(cfg aws.Config) *Clients {
	return &Clients{cfg: cfg}
}

// Config は保持しているAWS設定を返す
func (c *Clients) Config() aws.Config {
	return c.cfg
}

// Rds は遅延初期化でRDSクライアントを取得
func (c *Clients) Rds() *rds.Client {
	if c.rds == nil {
		c.rds = rds.NewFromConfig(c.cfg)
	}
	return c.rds
}

// SecretsManager は遅延初期化でSecretsManagerクライアントを取得
func (c *Clients) SecretsManager() *secretsmanager.Client {
	if c.secretsManager == nil {
		c.secretsManager = secretsmanager.NewFromConfig(c.cfg)
	}
	return c.secretsManager
}
