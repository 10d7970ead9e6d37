package logger

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for pipeline log messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestrator
		"Generating preview for %s":                         "%s のプレビューを生成します",
		"Routing %s as %s":                                  "%s を %s として処理します",
		"Cannot route file: %s":                             "ファイルを振り分けできません: %s",
		"Rasterized with %s":                                "%s でラスタライズしました",
		"Rasterization failed: %s":                          "ラスタライズに失敗: %s",
		"Stitch rendering failed: %s":                       "ステッチ描画に失敗: %s",
		"Post-processing failed: %s":                        "後処理に失敗: %s",
		"Failed to write output: %s":                        "出力の書き込みに失敗: %s",
		"Preview written: %s (%d bytes)":                    "プレビューを出力しました: %s（%d バイト）",
		"Rendered %d stitches, %d thread changes":           "ステッチ %d 針、糸替え %d 回を描画",
		"No declared colors found, sampling rendered image": "宣言されたカラーが無いため描画結果からサンプリングします",
		"Color extraction failed: %s":                       "カラー抽出に失敗: %s",
		"Companion PDF written: %s":                         "ベクターPDFを出力しました: %s",
		"Companion PDF export failed: %s":                   "ベクターPDFの出力に失敗: %s",
		"Companion PDF not available for %s":                "%s のベクターPDFは利用できません",

		// Vector rendering
		"Trying backend %s for %s":            "%s バックエンドで %s の変換を試行",
		"Backend %s not available, skipping":  "バックエンド %s は利用できないためスキップ",
		"Backend %s succeeded":                "バックエンド %s で変換成功",
		"Backend %s failed: %v":               "バックエンド %s が失敗: %v",
		"Exporting vector PDF with %s":        "%s でベクターPDFを出力",
		"Exporter %s not available, skipping": "エクスポーター %s は利用できないためスキップ",
		"Exporter %s failed: %v":              "エクスポーター %s が失敗: %v",
		"Exporter %s produced no output":      "エクスポーター %s の出力が空でした",
		"No vector PDF exporter for %s":       "%s に対応するベクターPDFエクスポーターがありません",

		// Embroidery rendering
		"Pattern: %d stitches, %d thread changes, %.1fx%.1f mm": "パターン: ステッチ %d 針、糸替え %d 回、%.1fx%.1f mm",

		// Color extraction
		"Extension %s is not color-scannable": "拡張子 %s はカラースキャン対象外",
		"Spot color probe failed: %v":         "特色の解析に失敗: %v",
		"No declared colors found in %s":      "%s に宣言されたカラーはありません",
		"Color extraction skipped: %v":        "カラー抽出をスキップ: %v",

		// Post-processing
		"Brightness %.1f selects %s background": "輝度 %.1f により背景 %s を選択",
		"Downscaling %dx%d to %dx%d":            "%dx%d を %dx%d に縮小",
	})
}
