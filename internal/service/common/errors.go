package common

// エラーメッセージの絵文字定数
const (
	ErrorIcon    = "❌"
	SuccessIcon  = "✅"
	WarningIcon  = "⚠️"
	SearchIcon   = "🔍"
	InfoIcon     = "📋"
	ProcessIcon  = "🔄"
	DownloadIcon = "📦"
	PartyIcon    = "🎉"
)

// エラーメッセージフォーマット定数
const (
	// 一覧取得エラー
	ListErrorFormat = "%s %s一覧の取得に失敗: %w"

	// その他の操作エラー
	CreateErrorFormat = "%s %s の作成に失敗: %w"
	GetErrorFormat    = "%s %s の取得に失敗: %w"

	// 成功メッセージ
	SaveSuccessFormat = "%s %s に保存しました"

	// 処理中メッセージ
	SearchingFormat   = "%s %s を検索中..."
	DownloadingFormat = "%s %s をダウンロード中..."
)
