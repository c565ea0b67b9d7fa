// Package model はドメインモデルを定義する。
package model

import "time"

// User はコメント投稿者となるサービス利用ユーザーを表す。
// IDは外部の認証基盤が発行したUIDをそのまま使う。
type User struct {
	ID        string    `json:"firebase_uid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Video はコメントの対象となる動画を表す。
// IDはフロントエンドが扱う動画プラットフォーム側のIDを使う。
type Video struct {
	ID        string    `json:"videoid"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment は動画に対するコメントを表す。
// Usernameは投稿時点でIdentityストアから取得した表示名の複製。
type Comment struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_uid"`
	Username  string    `json:"username"`
	Body      string    `json:"comment"`
	VideoID   string    `json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}
