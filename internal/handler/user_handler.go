package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/vidtalk/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// SaveUser はユーザーを登録する。登録済みの場合はUSER_ALREADY_EXISTSを返す。
	SaveUser(ctx context.Context, userUID, email string) (*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// saveUserRequest はユーザー登録リクエストのボディ。
type saveUserRequest struct {
	UserUID string `json:"userUID"`
	Email   string `json:"email"`
}

// saveUserResponse はユーザー登録のレスポンス。
type saveUserResponse struct {
	User *model.User `json:"user"`
}

// SaveUser はユーザーを登録する。
// POST /saveUser
func (h *UserHandler) SaveUser(w http.ResponseWriter, r *http.Request) {
	var req saveUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := h.service.SaveUser(r.Context(), req.UserUID, req.Email)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saveUserResponse{User: user})
}
