package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/vidtalk/internal/model"
)

// videoAddedMessage は動画登録成功時のメッセージ。フロントエンドがこの文字列を表示する。
const videoAddedMessage = "video successfully added"

// VideoServiceInterface は動画ハンドラーが必要とするサービスインターフェース。
type VideoServiceInterface interface {
	// AddVideo は動画を登録する。登録済みの場合はVIDEO_ALREADY_EXISTSを返す。
	AddVideo(ctx context.Context, videoID, title string) (*model.Video, error)
}

// VideoHandler は動画管理のHTTPハンドラー。
type VideoHandler struct {
	service VideoServiceInterface
}

// NewVideoHandler はVideoHandlerを生成する。
func NewVideoHandler(service VideoServiceInterface) *VideoHandler {
	return &VideoHandler{
		service: service,
	}
}

type addVideoRequest struct {
	VideoTitle string `json:"videoTitle"`
}

type addVideoResponse struct {
	Messages string       `json:"messages"`
	Video    *model.Video `json:"video"`
}

// AddVideo は動画を登録する。
// POST /addVideo/{videoId}
func (h *VideoHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoId")

	var req addVideoRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	video, err := h.service.AddVideo(r.Context(), videoID, req.VideoTitle)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addVideoResponse{
		Messages: videoAddedMessage,
		Video:    video,
	})
}
