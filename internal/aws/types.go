package aws

// Context AwsContext は認証情報を保持
type Context struct {
	Profile string
	Region  string

	// 静的な認証情報（Vault等から取得したもの）。空ならデフォルトの認証チェーンを使う
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// HasStaticCredentials は静的な認証情報が設定されているかを返す
func (ctx Context) HasStaticCredentials() bool {
	return ctx.AccessKeyID != "" && ctx.SecretAccessKey != ""
}
