// Package main provides localization for the artproof CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Generate production previews from design and embroidery files": "デザイン・刺繍ファイルから生産用プレビューを生成",

		// Preview command
		"Render a preview PNG for a design file": "デザインファイルのプレビューPNGを生成",

		// Flags
		"Output PNG file path":                                                "出力PNGファイルパス",
		"Background mode (auto, light, dark, transparent)":                    "背景モード（auto, light, dark, transparent）",
		"Rasterization density for vector files (default: 300)":              "ベクターファイルのラスタライズ密度（デフォルト: 300）",
		"Also export a companion vector PDF":                                  "ベクターPDFも併せて出力",
		"Companion PDF path (default: output path with .pdf extension)":       "ベクターPDFの出力パス（デフォルト: 出力パスの拡張子を.pdfに変更）",
		"Write a markdown summary report to this path":                        "Markdownサマリーレポートの出力パス",
		"Load settings from a YAML config file":                               "YAML設定ファイルから設定を読み込み",
		"Per-backend conversion timeout in milliseconds (default: 60000)":     "バックエンドごとの変換タイムアウト（ミリ秒、デフォルト: 60000）",
		"Path to the Inkscape binary (falls back to INKSCAPE_PATH env)":       "Inkscapeバイナリのパス（INKSCAPE_PATH環境変数にフォールバック）",
		"Path to the ImageMagick binary (falls back to MAGICK_PATH env)":      "ImageMagickバイナリのパス（MAGICK_PATH環境変数にフォールバック）",
		"Path to the Ghostscript binary (falls back to GS_PATH env)":          "Ghostscriptバイナリのパス（GS_PATH環境変数にフォールバック）",
		"Save intermediate artifacts for debugging":                           "デバッグ用に中間成果物を保存",
		"Directory for debug output":                                          "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                                "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                             "すべてのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...": "中断されました。終了しています...",
		"Report written to %s":          "レポートを%sに書き込みました",
	})
}
