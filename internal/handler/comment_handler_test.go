package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hitoshi/vidtalk/internal/model"
)

// --- モック定義 ---

// mockCommentService はCommentServiceInterfaceのモック実装。
type mockCommentService struct {
	addCommentFn    func(ctx context.Context, userUID, videoID, body string) (*model.Comment, error)
	listCommentsFn  func(ctx context.Context, videoID string) ([]*model.Comment, error)
	updateCommentFn func(ctx context.Context, videoID string, commentID int64, userUID, body string) (*model.Comment, error)
	deleteCommentFn func(ctx context.Context, videoID string, commentID int64, userUID string) (*model.Comment, error)
}

func (m *mockCommentService) AddComment(ctx context.Context, userUID, videoID, body string) (*model.Comment, error) {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, userUID, videoID, body)
	}
	return nil, nil
}

func (m *mockCommentService) ListComments(ctx context.Context, videoID string) ([]*model.Comment, error) {
	if m.listCommentsFn != nil {
		return m.listCommentsFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockCommentService) UpdateComment(ctx context.Context, videoID string, commentID int64, userUID, body string) (*model.Comment, error) {
	if m.updateCommentFn != nil {
		return m.updateCommentFn(ctx, videoID, commentID, userUID, body)
	}
	return nil, nil
}

func (m *mockCommentService) DeleteComment(ctx context.Context, videoID string, commentID int64, userUID string) (*model.Comment, error) {
	if m.deleteCommentFn != nil {
		return m.deleteCommentFn(ctx, videoID, commentID, userUID)
	}
	return nil, nil
}

// --- POST /comment テスト ---

func TestCommentHandler_AddComment_Success(t *testing.T) {
	svc := &mockCommentService{
		addCommentFn: func(ctx context.Context, userUID, videoID, body string) (*model.Comment, error) {
			if userUID != "u1" || videoID != "v1" || body != "hi" {
				t.Errorf("AddComment(%q, %q, %q), want (u1, v1, hi)", userUID, videoID, body)
			}
			return &model.Comment{ID: 1, UserID: userUID, Username: "alice", Body: body, VideoID: videoID}, nil
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/comment", strings.NewReader(`{"comment":"hi","videoId":"v1","userUID":"u1"}`))
	w := httptest.NewRecorder()

	h.AddComment(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var row map[string]any
	if err := json.NewDecoder(w.Body).Decode(&row); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if row["comment"] != "hi" {
		t.Errorf("comment = %v, want hi", row["comment"])
	}
	if row["username"] != "alice" {
		t.Errorf("username = %v, want alice", row["username"])
	}
	if row["id"] != float64(1) {
		t.Errorf("id = %v, want 1", row["id"])
	}
}

func TestCommentHandler_AddComment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing fields", model.NewMissingFieldsError("comment"), http.StatusBadRequest, model.ErrCodeMissingFields},
		{"identity not found", model.NewUserNotFoundError(), http.StatusNotFound, model.ErrCodeUserNotFound},
		{"user not registered", model.NewUserNotRegisteredError(), http.StatusNotFound, model.ErrCodeUserNotRegistered},
		{"video not found", model.NewVideoNotFoundError("v1"), http.StatusNotFound, model.ErrCodeVideoNotFound},
		{"identity unavailable", errors.New("failed to read identity profile: unavailable"), http.StatusInternalServerError, model.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCommentService{
				addCommentFn: func(ctx context.Context, userUID, videoID, body string) (*model.Comment, error) {
					return nil, tt.err
				},
			}
			h := NewCommentHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/comment", strings.NewReader(`{"comment":"hi","videoId":"v1","userUID":"u1"}`))
			w := httptest.NewRecorder()

			h.AddComment(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := parseAPIErrorResponse(t, w)["code"]; got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

// --- GET /comments/{videoId} テスト ---

func TestCommentHandler_ListComments_Success(t *testing.T) {
	svc := &mockCommentService{
		listCommentsFn: func(ctx context.Context, videoID string) ([]*model.Comment, error) {
			if videoID != "v1" {
				t.Errorf("videoID = %q, want v1", videoID)
			}
			return []*model.Comment{
				{ID: 1, Body: "first", VideoID: "v1"},
				{ID: 2, Body: "second", VideoID: "v1"},
			}, nil
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/comments/v1", nil)
	req = withChiURLParams(req, "videoId", "v1")
	w := httptest.NewRecorder()

	h.ListComments(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var rows []model.Comment
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 2 || rows[0].Body != "first" || rows[1].Body != "second" {
		t.Errorf("rows = %+v, want [first second]", rows)
	}
}

func TestCommentHandler_ListComments_NotFound(t *testing.T) {
	svc := &mockCommentService{
		listCommentsFn: func(ctx context.Context, videoID string) ([]*model.Comment, error) {
			return nil, model.NewCommentsNotFoundError(videoID)
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/comments/v9", nil)
	req = withChiURLParams(req, "videoId", "v9")
	w := httptest.NewRecorder()

	h.ListComments(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	body := parseAPIErrorResponse(t, w)
	if body["message"] != "No comment found for video: v9" {
		t.Errorf("message = %q", body["message"])
	}
}

// --- PUT /comment/{videoId}/{commentId} テスト ---

func TestCommentHandler_UpdateComment_Success(t *testing.T) {
	svc := &mockCommentService{
		updateCommentFn: func(ctx context.Context, videoID string, commentID int64, userUID, body string) (*model.Comment, error) {
			if videoID != "v1" || commentID != 42 || userUID != "u1" || body != "edited" {
				t.Errorf("UpdateComment(%q, %d, %q, %q)", videoID, commentID, userUID, body)
			}
			return &model.Comment{ID: commentID, UserID: userUID, Body: body, VideoID: videoID}, nil
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/comment/v1/42", strings.NewReader(`{"updatedComment":"edited","userUID":"u1"}`))
	req = withChiURLParams(req, "videoId", "v1", "commentId", "42")
	w := httptest.NewRecorder()

	h.UpdateComment(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var row model.Comment
	if err := json.NewDecoder(w.Body).Decode(&row); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if row.Body != "edited" {
		t.Errorf("comment = %q, want edited", row.Body)
	}
}

func TestCommentHandler_UpdateComment_InvalidCommentID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-1", "1.5", "99999999999999999999"} {
		t.Run(raw, func(t *testing.T) {
			svc := &mockCommentService{
				updateCommentFn: func(ctx context.Context, videoID string, commentID int64, userUID, body string) (*model.Comment, error) {
					t.Error("UpdateComment should not be called for an invalid id")
					return nil, nil
				},
			}
			h := NewCommentHandler(svc)

			req := httptest.NewRequest(http.MethodPut, "/comment/v1/"+raw, strings.NewReader(`{"updatedComment":"x","userUID":"u1"}`))
			req = withChiURLParams(req, "videoId", "v1", "commentId", raw)
			w := httptest.NewRecorder()

			h.UpdateComment(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if got := parseAPIErrorResponse(t, w)["code"]; got != model.ErrCodeInvalidCommentID {
				t.Errorf("code = %q, want %q", got, model.ErrCodeInvalidCommentID)
			}
		})
	}
}

func TestCommentHandler_UpdateComment_NotOwner(t *testing.T) {
	svc := &mockCommentService{
		updateCommentFn: func(ctx context.Context, videoID string, commentID int64, userUID, body string) (*model.Comment, error) {
			return nil, model.NewNotCommentOwnerError()
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/comment/v1/1", strings.NewReader(`{"updatedComment":"x","userUID":"intruder"}`))
	req = withChiURLParams(req, "videoId", "v1", "commentId", "1")
	w := httptest.NewRecorder()

	h.UpdateComment(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

// --- DELETE /comment/{videoId}/{commentId} テスト ---

func TestCommentHandler_DeleteComment_Success(t *testing.T) {
	svc := &mockCommentService{
		deleteCommentFn: func(ctx context.Context, videoID string, commentID int64, userUID string) (*model.Comment, error) {
			if videoID != "v1" || commentID != 7 || userUID != "u1" {
				t.Errorf("DeleteComment(%q, %d, %q)", videoID, commentID, userUID)
			}
			return &model.Comment{ID: 7, UserID: "u1", Body: "bye", VideoID: "v1"}, nil
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/comment/v1/7", strings.NewReader(`{"userUID":"u1"}`))
	req = withChiURLParams(req, "videoId", "v1", "commentId", "7")
	w := httptest.NewRecorder()

	h.DeleteComment(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var row model.Comment
	if err := json.NewDecoder(w.Body).Decode(&row); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if row.ID != 7 {
		t.Errorf("id = %d, want 7", row.ID)
	}
}

func TestCommentHandler_DeleteComment_NotFound(t *testing.T) {
	svc := &mockCommentService{
		deleteCommentFn: func(ctx context.Context, videoID string, commentID int64, userUID string) (*model.Comment, error) {
			return nil, model.NewCommentNotFoundError(commentID)
		},
	}
	h := NewCommentHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/comment/v1/404", strings.NewReader(`{"userUID":"u1"}`))
	req = withChiURLParams(req, "videoId", "v1", "commentId", "404")
	w := httptest.NewRecorder()

	h.DeleteComment(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := parseAPIErrorResponse(t, w)["code"]; got != model.ErrCodeCommentNotFound {
		t.Errorf("code = %q, want %q", got, model.ErrCodeCommentNotFound)
	}
}

func TestCommentHandler_DeleteComment_MissingBody(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{
		deleteCommentFn: func(ctx context.Context, videoID string, commentID int64, userUID string) (*model.Comment, error) {
			t.Error("DeleteComment should not be called without a body")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/comment/v1/1", nil)
	req = withChiURLParams(req, "videoId", "v1", "commentId", "1")
	w := httptest.NewRecorder()

	h.DeleteComment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
