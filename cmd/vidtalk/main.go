// Command vidtalk は動画コメントAPIサーバーを起動する。
//
// サブコマンド:
//
//	vidtalk serve        APIサーバーを起動する（デフォルト）
//	vidtalk migrate      データベースマイグレーションを適用する
//	vidtalk healthcheck  稼働中サーバーの /health を確認する
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/vidtalk/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "vidtalk: %v\n", err)
		os.Exit(1)
	}
}
