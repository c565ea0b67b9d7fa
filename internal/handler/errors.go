package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/vidtalk/internal/middleware"
	"github.com/hitoshi/vidtalk/internal/model"
)

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// writeJSON は200以外も含むJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// decodeJSONBody はリクエストボディをdstにデコードする。
// ボディが空または不正なJSONの場合はINVALID_REQUEST_BODYを書き込みfalseを返す。
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestBodyError())
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestBodyError())
		return false
	}
	return true
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
// APIError以外の原因はログにのみ記録し、レスポンスには含めない。
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if requestID, idErr := middleware.RequestIDFromContext(r.Context()); idErr == nil {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	if errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("request deadline exceeded", attrs...)
		writeAPIErrorResponse(w, http.StatusGatewayTimeout, model.NewRequestTimeoutError())
		return
	}

	slog.Error("internal server error", attrs...)
	writeAPIErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidRequestBody, model.ErrCodeMissingFields, model.ErrCodeInvalidCommentID:
		return http.StatusBadRequest
	case model.ErrCodeUserAlreadyExists:
		return http.StatusConflict
	case model.ErrCodeVideoAlreadyExists, model.ErrCodeNotCommentOwner:
		// 動画の重複登録は元のAPIとの互換のため403で返す
		return http.StatusForbidden
	case model.ErrCodeUserNotFound, model.ErrCodeUserNotRegistered, model.ErrCodeVideoNotFound,
		model.ErrCodeCommentsNotFound, model.ErrCodeCommentNotFound:
		return http.StatusNotFound
	case model.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case model.ErrCodeRequestTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
