// Package video は動画登録のドメインロジックを提供する。
package video

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/vidtalk/internal/model"
	"github.com/hitoshi/vidtalk/internal/repository"
)

// Service は動画登録のサービス層。
type Service struct {
	videoRepo repository.VideoRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(videoRepo repository.VideoRepository) *Service {
	return &Service{videoRepo: videoRepo}
}

// AddVideo は動画を登録する。既に登録済みの場合はVIDEO_ALREADY_EXISTSを返す。
func (s *Service) AddVideo(ctx context.Context, videoID, title string) (*model.Video, error) {
	var missing []string
	if videoID == "" {
		missing = append(missing, "videoId")
	}
	if title == "" {
		missing = append(missing, "videoTitle")
	}
	if len(missing) > 0 {
		return nil, model.NewMissingFieldsError(missing...)
	}

	created, err := s.videoRepo.CreateIfAbsent(ctx, &model.Video{ID: videoID, Title: title})
	if err != nil {
		return nil, fmt.Errorf("動画の登録に失敗しました: %w", err)
	}
	if created == nil {
		return nil, model.NewVideoAlreadyExistsError()
	}

	slog.Info("動画を登録しました",
		slog.String("video_id", created.ID),
	)

	return created, nil
}
