// 指示: miu200521358
// Package messages はCLI・コマンドサーバ表示に使うメッセージ定義を提供する。
package messages

// フラグ説明。
const (
	HelpInputPath   = "入力リグJSONファイルパス"
	HelpOutputPath  = "出力リグJSONファイルパス"
	HelpConfigPath  = "設定ファイルパス"
	HelpSide        = "指リギング対象サイド (left/right/both)"
	HelpIncludeBody = "体幹ボーンも命名変更する"
	HelpDryRun      = "複製上で実行し保存しない"
	HelpServe       = "MCPコマンドサーバとして起動する"
)

// エラーメッセージ。
const (
	MessageInputRequired   = "入力リグファイルを指定してください (-in)"
	MessageInvalidInputExt = "入力拡張子が .json ではありません: %s"
	MessageNormalizeFailed = "リグ正規化に失敗しました"
	MessageServerBusy      = "別の操作が実行中です"
)

// ログ書式。
const (
	LogServeStarted    = "コマンドサーバ起動: %s %s"
	LogLoadStarted     = "読み込み開始: %s"
	LogInspectSummary  = "リグ検査: %s"
	LogFingersRigged   = "指ボーン追加: %d件"
	LogRenameApplied   = "命名変更: %d件 衝突: %d件"
	LogSaveCompleted   = "正規化完了: %s"
	LogDryRunCompleted = "dry-run完了: 保存なし"
)
