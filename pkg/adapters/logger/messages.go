package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Initialized session %s for template %q": "テンプレート %q でセッション %s を初期化しました",
		"Rendering cover image phase":             "カバー画像フェーズをレンダリング中",
		"Appending clip %s (segment %d)":          "クリップ %s (セグメント %d) を追加中",
		"Finalizing session %s":                   "セッション %s を確定中",
		"Output saved to %s":                      "出力を %s に保存しました",
		"Session %s completed":                    "セッション %s が完了しました",

		// GPU compositor
		"Creating offscreen GL context %dx%d": "オフスクリーン GL コンテキストを作成中 %dx%d",
		"Installing transition shader %q":     "トランジションシェーダー %q を設定中",

		// Frame sources
		"Preloading first frame of %s": "%s の最初のフレームを先読み中",
		"Source %s reached EOF, padding with last frame": "%s が EOF に達しました。最後のフレームで埋めます",

		// Encoder
		"Starting encoder for segment %d": "セグメント %d のエンコーダーを起動中",
		"Encoded segment %d: %s":          "セグメント %d をエンコードしました: %s",

		// Mux
		"Concatenating %d segments":  "%d 個のセグメントを結合中",
		"Muxing background music %s": "バックグラウンドミュージック %s をミックス中",

		// Warnings
		"Session %s append already in progress, rejecting": "セッション %s は追加処理が進行中のため拒否します",
		"Template %q has no BGM configured, skipping mux":   "テンプレート %q に BGM の設定がないため、ミックスをスキップします",

		// Errors
		"Failed to create GL context: %s":  "GL コンテキストの作成に失敗しました: %s",
		"Failed to encode segment %d: %s":  "セグメント %d のエンコードに失敗しました: %s",
		"Failed to finalize session %s: %s": "セッション %s の確定に失敗しました: %s",
	})
}
