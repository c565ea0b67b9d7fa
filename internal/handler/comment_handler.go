package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/vidtalk/internal/model"
)

// CommentServiceInterface はコメントハンドラーが必要とするサービスインターフェース。
type CommentServiceInterface interface {
	// AddComment は投稿者の表示名を解決してからコメントを作成する。
	AddComment(ctx context.Context, userUID, videoID, body string) (*model.Comment, error)
	// ListComments は動画のコメントを投稿順に返す。0件の場合はCOMMENTS_NOT_FOUNDを返す。
	ListComments(ctx context.Context, videoID string) ([]*model.Comment, error)
	// UpdateComment は投稿者本人のコメント本文を更新する。
	UpdateComment(ctx context.Context, videoID string, commentID int64, userUID, body string) (*model.Comment, error)
	// DeleteComment は投稿者本人のコメントを削除する。
	DeleteComment(ctx context.Context, videoID string, commentID int64, userUID string) (*model.Comment, error)
}

// CommentHandler はコメント管理のHTTPハンドラー。
type CommentHandler struct {
	service CommentServiceInterface
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{
		service: service,
	}
}

// --- リクエスト型 ---

type addCommentRequest struct {
	Comment string `json:"comment"`
	VideoID string `json:"videoId"`
	UserUID string `json:"userUID"`
}

type updateCommentRequest struct {
	UpdatedComment string `json:"updatedComment"`
	UserUID        string `json:"userUID"`
}

type deleteCommentRequest struct {
	UserUID string `json:"userUID"`
}

// AddComment は動画にコメントを投稿する。
// POST /comment
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	created, err := h.service.AddComment(r.Context(), req.UserUID, req.VideoID, req.Comment)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// ListComments は動画のコメント一覧を取得する。
// GET /comments/{videoId}
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")

	comments, err := h.service.ListComments(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, comments)
}

// UpdateComment はコメント本文を更新する。
// PUT /comment/{videoId}/{commentId}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")
	commentID, ok := parseCommentID(w, r)
	if !ok {
		return
	}

	var req updateCommentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateComment(r.Context(), videoID, commentID, req.UserUID, req.UpdatedComment)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteComment はコメントを削除し、削除した行を返す。
// DELETE /comment/{videoId}/{commentId}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")
	commentID, ok := parseCommentID(w, r)
	if !ok {
		return
	}

	var req deleteCommentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	deleted, err := h.service.DeleteComment(r.Context(), videoID, commentID, req.UserUID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, deleted)
}

// parseCommentID はURLのcommentIdを正の整数として解釈する。
// 不正な場合はINVALID_COMMENT_IDを書き込みfalseを返す。
func parseCommentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "commentId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidCommentIDError(raw))
		return 0, false
	}
	return id, true
}
