// Package main provides localization for the vlogrender CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Command summaries
		"Render a cover image and ordered clips into a finished video in one shot.": "表紙画像と並べたクリップを一度の処理で動画に仕上げます。",
		"Start a new session by rendering its cover-image segment.":                 "表紙画像セグメントをレンダリングしてセッションを開始します。",
		"Append one clip segment to an existing session.":                          "既存のセッションにクリップセグメントを1つ追加します。",
		"Concatenate a session's segments and mux in its background track.":       "セッションのセグメントを連結し、BGMを合成します。",
		"Show a session's current segments and state.":                            "セッションの現在のセグメントと状態を表示します。",
		"List the templates available in the config directory.":                   "設定ディレクトリ内で利用可能なテンプレートを一覧表示します。",

		// Flags
		"Directory of global.yaml and template YAML files.":        "global.yamlとテンプレートYAMLファイルのディレクトリ。",
		"Directory where session state and segments are stored.":   "セッションの状態とセグメントを保存するディレクトリ。",
		"Path to the ffmpeg executable.":                           "ffmpeg実行ファイルのパス。",
		"Log level (debug, info, warn, error).":                    "ログレベル（debug, info, warn, error）。",
		"Suppress all log output.":                                 "全てのログ出力を抑制。",
		"Template name.":                                           "テンプレート名。",
		"Cover image path.":                                        "表紙画像のパス。",
		"Output MP4 path (default: <sessions-dir>/<id>/final_<id>.mp4).": "出力MP4パス（デフォルト: <sessions-dir>/<id>/final_<id>.mp4）。",

		// Runtime messages
		"At least one clip is required.":              "最低1つのクリップが必要です。",
		"append requires a session id and a clip path.": "appendにはセッションIDとクリップパスが必要です。",
		"finalize requires a session id.":             "finalizeにはセッションIDが必要です。",
		"status requires a session id.":                "statusにはセッションIDが必要です。",
		"Session %s complete: %s":                      "セッション %s が完了しました: %s",
		"Session started: %s":                          "セッションを開始しました: %s",
		"Appended segment %d":                           "セグメント %d を追加しました",
		"Output saved to %s":                            "出力を %s に保存しました",
		"Interrupted, shutting down...":                 "中断されました。シャットダウン中...",
	})
}
