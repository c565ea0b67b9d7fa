// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, user, video, comment, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	ErrCodeMissingFields      = "MISSING_FIELDS"
	ErrCodeInvalidCommentID   = "INVALID_COMMENT_ID"
	ErrCodeUserAlreadyExists  = "USER_ALREADY_EXISTS"
	ErrCodeVideoAlreadyExists = "VIDEO_ALREADY_EXISTS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeUserNotRegistered  = "USER_NOT_REGISTERED"
	ErrCodeVideoNotFound      = "VIDEO_NOT_FOUND"
	ErrCodeCommentsNotFound   = "COMMENTS_NOT_FOUND"
	ErrCodeCommentNotFound    = "COMMENT_NOT_FOUND"
	ErrCodeNotCommentOwner    = "NOT_COMMENT_OWNER"
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTimeout     = "REQUEST_TIMEOUT"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewInvalidRequestBodyError はリクエストボディが解釈できない場合のエラーを生成する。
func NewInvalidRequestBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequestBody,
		Message:  "リクエストボディが不正です。",
		Category: "validation",
		Action:   "JSON形式のリクエストボディを送信してください。",
	}
}

// NewMissingFieldsError は必須項目が欠けている場合のエラーを生成する。
func NewMissingFieldsError(fields ...string) *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  fmt.Sprintf("必須項目が入力されていません: %v", fields),
		Category: "validation",
		Action:   "必須項目をすべて入力してください。",
	}
}

// NewInvalidCommentIDError はコメントIDが整数として解釈できない場合のエラーを生成する。
func NewInvalidCommentIDError(raw string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCommentID,
		Message:  fmt.Sprintf("無効なコメントIDです: %s", raw),
		Category: "validation",
		Action:   "コメントIDには正の整数を指定してください。",
	}
}

// NewUserAlreadyExistsError はユーザーが既に登録済みの場合のエラーを生成する。
func NewUserAlreadyExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeUserAlreadyExists,
		Message:  "User already exists",
		Category: "user",
		Action:   "既存のユーザー情報をそのまま利用してください。",
	}
}

// NewVideoAlreadyExistsError は動画が既に登録済みの場合のエラーを生成する。
func NewVideoAlreadyExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeVideoAlreadyExists,
		Message:  "Video already exists",
		Category: "video",
		Action:   "登録済みの動画に対してはコメントのみ追加できます。",
	}
}

// NewUserNotFoundError はIdentityストアにユーザーが存在しない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "User not found",
		Category: "user",
		Action:   "ログインし直してください。",
	}
}

// NewUserNotRegisteredError はIdentityストアには存在するが
// usersテーブルに登録されていない場合のエラーを生成する。
func NewUserNotRegisteredError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotRegistered,
		Message:  "User is not registered",
		Category: "user",
		Action:   "ユーザー登録（/saveUser）を完了してからコメントしてください。",
	}
}

// NewVideoNotFoundError は動画が登録されていない場合のエラーを生成する。
func NewVideoNotFoundError(videoID string) *APIError {
	return &APIError{
		Code:     ErrCodeVideoNotFound,
		Message:  fmt.Sprintf("指定された動画が見つかりません: %s", videoID),
		Category: "video",
		Action:   "動画を登録してからコメントしてください。",
	}
}

// NewCommentsNotFoundError は動画にコメントが1件もない場合のエラーを生成する。
func NewCommentsNotFoundError(videoID string) *APIError {
	return &APIError{
		Code:     ErrCodeCommentsNotFound,
		Message:  fmt.Sprintf("No comment found for video: %s", videoID),
		Category: "comment",
		Action:   "最初のコメントを投稿してください。",
	}
}

// NewCommentNotFoundError はコメントが見つからない場合のエラーを生成する。
func NewCommentNotFoundError(commentID int64) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("指定されたコメントが見つかりません: %d", commentID),
		Category: "comment",
		Action:   "動画IDとコメントIDを確認してください。",
	}
}

// NewNotCommentOwnerError はコメントの投稿者以外が変更しようとした場合のエラーを生成する。
func NewNotCommentOwnerError() *APIError {
	return &APIError{
		Code:     ErrCodeNotCommentOwner,
		Message:  "このコメントを変更する権限がありません。",
		Category: "comment",
		Action:   "自分が投稿したコメントのみ編集・削除できます。",
	}
}

// NewRateLimitExceededError はレート制限を超えた場合のエラーを生成する。
func NewRateLimitExceededError() *APIError {
	return &APIError{
		Code:     ErrCodeRateLimitExceeded,
		Message:  "Too many requests. Please try again later.",
		Category: "system",
		Action:   "Retry-Afterの秒数だけ待ってから再度お試しください。",
	}
}

// NewRequestTimeoutError はリクエストの処理が制限時間内に終わらなかった場合のエラーを生成する。
func NewRequestTimeoutError() *APIError {
	return &APIError{
		Code:     ErrCodeRequestTimeout,
		Message:  "リクエストの処理がタイムアウトしました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewInternalError は内部エラーの汎用レスポンスを生成する。
// 原因の詳細はログにのみ記録する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
