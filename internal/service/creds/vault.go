package creds

import (
	"context"
	"fmt"
	"log/slog"

	vault "github.com/hashicorp/vault/api"
)

const DefaultVaultPath = "aws/creds/administrator"

// VaultIssuer はVaultのAWSシークレットエンジンから認証情報を発行する
type VaultIssuer struct {
	client *vault.Client
	path   string
}

// NewVaultClient は VAULT_ADDR / VAULT_TOKEN 等の環境変数からVaultクライアントを作成する
func NewVaultClient() (*vault.Client, error) {
	client, err := vault.NewClient(vault.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("Vaultクライアントの作成に失敗: %w", err)
	}
	return client, nil
}

// NewVaultIssuer はVaultIssuerを作成する
func NewVaultIssuer(client *vault.Client, path string) *VaultIssuer {
	if path == "" {
		path = DefaultVaultPath
	}
	return &VaultIssuer{client: client, path: path}
}

// Issue はシークレットパスを読み出し、リースとして新しいアクセスキーを受け取る
func (i *VaultIssuer) Issue(ctx context.Context) (Credentials, error) {
	secret, err := i.client.Logical().ReadWithContext(ctx, i.path)
	if err != nil {
		return Credentials{}, fmt.Errorf("Vault %s の読み込みに失敗: %w", i.path, err)
	}
	if secret == nil || secret.Data == nil {
		return Credentials{}, fmt.Errorf("%w: %s", ErrNoCredentials, i.path)
	}

	cred := Credentials{
		AccessKeyID:     stringField(secret.Data, "access_key"),
		SecretAccessKey: stringField(secret.Data, "secret_key"),
		SessionToken:    stringField(secret.Data, "security_token"),
	}
	if !cred.Valid() {
		return Credentials{}, fmt.Errorf("%w: %s", ErrNoCredentials, i.path)
	}
	slog.Debug("vault lease issued", "path", i.path, "lease_id", secret.LeaseID, "lease_duration", secret.LeaseDuration)
	return cred, nil
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}
