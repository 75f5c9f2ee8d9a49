package creds

import (
	"context"
	"fmt"

	smsvc "rdspgbadger/internal/service/secretsmanager"
)

// SecretsManagerIssuer はSecrets Managerに保存されたアクセスキーを返す
type SecretsManagerIssuer struct {
	api      smsvc.API
	secretID string
}

// NewSecretsManagerIssuer はSecretsManagerIssuerを作成する
func NewSecretsManagerIssuer(api smsvc.API, secretID string) *SecretsManagerIssuer {
	return &SecretsManagerIssuer{api: api, secretID: secretID}
}

// Issue はシークレットJSONからアクセスキーを読み出す。
// キー名は Vault 形式（access_key）と IAM 形式（AccessKeyId）のどちらでもよい
func (i *SecretsManagerIssuer) Issue(ctx context.Context) (Credentials, error) {
	values, err := smsvc.GetSecretValues(ctx, i.api, i.secretID)
	if err != nil {
		return Credentials{}, err
	}

	cred := Credentials{
		AccessKeyID:     smsvc.GetString(values, "access_key", "AccessKeyId", "access_key_id"),
		SecretAccessKey: smsvc.GetString(values, "secret_key", "SecretAccessKey", "secret_access_key"),
		SessionToken:    smsvc.GetString(values, "security_token", "SessionToken", "session_token"),
	}
	if !cred.Valid() {
		return Credentials{}, fmt.Errorf("%w: %s", ErrNoCredentials, i.secretID)
	}
	return cred, nil
}
