// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"errors"

	"github.com/hitoshi/vidtalk/internal/model"
)

// コメント書き込み時に検出される業務上の不成立理由。
// いずれも書き込みは行われていない（トランザクションはロールバック済み）。
var (
	// ErrUserNotRegistered はusersテーブルに投稿者が存在しないことを示す。
	ErrUserNotRegistered = errors.New("user is not registered")
	// ErrVideoNotFound はvideosテーブルに対象動画が存在しないことを示す。
	ErrVideoNotFound = errors.New("video not found")
	// ErrCommentNotFound は(video_id, id)に一致するコメントが存在しないことを示す。
	ErrCommentNotFound = errors.New("comment not found")
	// ErrNotCommentOwner はコメントの投稿者と操作者が異なることを示す。
	ErrNotCommentOwner = errors.New("comment belongs to another user")
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// CreateIfAbsent はユーザーを作成する。
	// 同じIDのユーザーが既に存在する場合は何も変更せずnilを返す。
	CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, error)
}

// VideoRepository は動画データの永続化インターフェース。
type VideoRepository interface {
	// CreateIfAbsent は動画を作成する。
	// 同じIDの動画が既に存在する場合は何も変更せずnilを返す。
	CreateIfAbsent(ctx context.Context, video *model.Video) (*model.Video, error)
}

// CommentRepository はコメントデータの永続化インターフェース。
type CommentRepository interface {
	// Create はユーザー行と動画行の存在確認と挿入を同一トランザクションで行う。
	// ユーザーが未登録の場合はErrUserNotRegistered、動画が未登録の場合はErrVideoNotFoundを返す。
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)

	// ListByVideo は動画のコメントを投稿順に返す。0件の場合は空スライスを返す。
	ListByVideo(ctx context.Context, videoID string) ([]*model.Comment, error)

	// UpdateBody は投稿者本人のコメント本文を更新する。
	// コメントが無い場合はErrCommentNotFound、投稿者が異なる場合はErrNotCommentOwnerを返す。
	UpdateBody(ctx context.Context, videoID string, commentID int64, userID, body string) (*model.Comment, error)

	// Delete は投稿者本人のコメントを削除し、削除した行を返す。
	// コメントが無い場合はErrCommentNotFound、投稿者が異なる場合はErrNotCommentOwnerを返す。
	Delete(ctx context.Context, videoID string, commentID int64, userID string) (*model.Comment, error)
}

// rowScanner は*sql.Rowと*sql.Rowsの共通部分。
type rowScanner interface {
	Scan(dest ...any) error
}
