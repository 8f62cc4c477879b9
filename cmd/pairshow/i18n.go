// Package main provides localization for the pairshow CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Merge ordered image pairs into a streamable MP4 video.": "順序付き画像ペアをストリーミング可能なMP4動画に結合します。",

		// Merge command
		"Merging %d image pairs...": "%d組の画像ペアを結合中...",
		"Wrote %d bytes to %s":      "%dバイトを%sに書き込みました",

		// Version command
		"pairshow version %s": "pairshow バージョン %s",

		// Signals
		"Interrupted, shutting down...": "中断されました。終了しています...",
	})
}
