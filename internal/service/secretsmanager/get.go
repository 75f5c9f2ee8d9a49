package secretsmanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var ErrEmptySecret = errors.New("シークレットに文字列値がありません")

// API はシークレット取得に使うSecrets Managerクライアントのメソッド
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// GetSecretValues Secrets Managerからシークレット値を取得してMapで返す
func GetSecretValues(ctx context.Context, secretsClient API, secretName string) (map[string]interface{}, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretName),
	}

	result, err := secretsClient.GetSecretValue(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("シークレット取得に失敗: %w", err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptySecret, secretName)
	}

	// シークレット値をJSONとしてパース
	var secretMap map[string]interface{}
	err = json.Unmarshal([]byte(*result.SecretString), &secretMap)
	if err != nil {
		return nil, fmt.Errorf("シークレットのJSON解析に失敗: %w", err)
	}

	return secretMap, nil
}

// GetString はシークレットMapから最初に見つかった文字列値を返す
func GetString(secretMap map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := secretMap[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
