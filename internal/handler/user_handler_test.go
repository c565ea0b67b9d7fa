package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/vidtalk/internal/model"
)

// --- モック定義 ---

// mockUserService はUserServiceInterfaceのモック実装。
type mockUserService struct {
	saveUserFn func(ctx context.Context, userUID, email string) (*model.User, error)
}

func (m *mockUserService) SaveUser(ctx context.Context, userUID, email string) (*model.User, error) {
	if m.saveUserFn != nil {
		return m.saveUserFn(ctx, userUID, email)
	}
	return nil, nil
}

// --- POST /saveUser テスト ---

func TestUserHandler_SaveUser_Success(t *testing.T) {
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockUserService{
		saveUserFn: func(ctx context.Context, userUID, email string) (*model.User, error) {
			if userUID != "u1" || email != "a@b.com" {
				t.Errorf("SaveUser(%q, %q), want (u1, a@b.com)", userUID, email)
			}
			return &model.User{ID: userUID, Email: email, CreatedAt: createdAt}, nil
		},
	}
	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/saveUser", strings.NewReader(`{"userUID":"u1","email":"a@b.com"}`))
	w := httptest.NewRecorder()

	h.SaveUser(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		User map[string]any `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User["firebase_uid"] != "u1" {
		t.Errorf("user.firebase_uid = %v, want u1", resp.User["firebase_uid"])
	}
	if resp.User["email"] != "a@b.com" {
		t.Errorf("user.email = %v, want a@b.com", resp.User["email"])
	}
}

func TestUserHandler_SaveUser_AlreadyExists(t *testing.T) {
	svc := &mockUserService{
		saveUserFn: func(ctx context.Context, userUID, email string) (*model.User, error) {
			return nil, model.NewUserAlreadyExistsError()
		},
	}
	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/saveUser", strings.NewReader(`{"userUID":"u1","email":"a@b.com"}`))
	w := httptest.NewRecorder()

	h.SaveUser(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	body := parseAPIErrorResponse(t, w)
	if body["message"] != "User already exists" {
		t.Errorf("message = %q, want %q", body["message"], "User already exists")
	}
}

func TestUserHandler_SaveUser_MissingFields(t *testing.T) {
	svc := &mockUserService{
		saveUserFn: func(ctx context.Context, userUID, email string) (*model.User, error) {
			return nil, model.NewMissingFieldsError("email")
		},
	}
	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/saveUser", strings.NewReader(`{"userUID":"u1"}`))
	w := httptest.NewRecorder()

	h.SaveUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if got := parseAPIErrorResponse(t, w)["code"]; got != model.ErrCodeMissingFields {
		t.Errorf("code = %q, want %q", got, model.ErrCodeMissingFields)
	}
}

func TestUserHandler_SaveUser_InvalidBody(t *testing.T) {
	called := false
	svc := &mockUserService{
		saveUserFn: func(ctx context.Context, userUID, email string) (*model.User, error) {
			called = true
			return nil, nil
		},
	}
	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/saveUser", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	h.SaveUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if called {
		t.Error("SaveUser should not be called for a malformed body")
	}
}

func TestUserHandler_SaveUser_InternalError(t *testing.T) {
	svc := &mockUserService{
		saveUserFn: func(ctx context.Context, userUID, email string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewUserHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/saveUser", strings.NewReader(`{"userUID":"u1","email":"a@b.com"}`))
	w := httptest.NewRecorder()

	h.SaveUser(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
