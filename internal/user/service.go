// Package user はユーザー登録のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/vidtalk/internal/model"
	"github.com/hitoshi/vidtalk/internal/repository"
)

// Service はユーザー登録のサービス層。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// SaveUser はID基盤のUIDとメールアドレスでユーザーを登録する。
// 同じUIDのユーザーが既に存在する場合はUSER_ALREADY_EXISTSを返し、既存行は変更しない。
func (s *Service) SaveUser(ctx context.Context, userUID, email string) (*model.User, error) {
	var missing []string
	if userUID == "" {
		missing = append(missing, "userUID")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, model.NewMissingFieldsError(missing...)
	}

	created, err := s.userRepo.CreateIfAbsent(ctx, &model.User{ID: userUID, Email: email})
	if err != nil {
		return nil, fmt.Errorf("ユーザーの登録に失敗しました: %w", err)
	}
	if created == nil {
		return nil, model.NewUserAlreadyExistsError()
	}

	slog.Info("ユーザーを登録しました",
		slog.String("user_uid", created.ID),
	)

	return created, nil
}
