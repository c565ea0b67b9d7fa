// Package comment は動画コメントの投稿・一覧・編集・削除のドメインロジックを提供する。
package comment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hitoshi/vidtalk/internal/identity"
	"github.com/hitoshi/vidtalk/internal/metrics"
	"github.com/hitoshi/vidtalk/internal/model"
	"github.com/hitoshi/vidtalk/internal/repository"
)

// 書き込み操作のメトリクスラベル。
const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"

	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// Service はコメント操作のサービス層。
type Service struct {
	commentRepo repository.CommentRepository
	resolver    identity.Resolver
	metrics     metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
// mがnilの場合はメトリクスを記録しない。
func NewService(commentRepo repository.CommentRepository, resolver identity.Resolver, m metrics.MetricsCollector) *Service {
	if m == nil {
		m = metrics.Nop{}
	}
	return &Service{
		commentRepo: commentRepo,
		resolver:    resolver,
		metrics:     m,
	}
}

// AddComment は動画にコメントを投稿する。
// 表示名はID基盤から解決し、投稿時点の値を行に保存する。
// ユーザー・動画の存在確認と挿入はリポジトリ側で1トランザクションとして行われる。
func (s *Service) AddComment(ctx context.Context, userUID, videoID, body string) (*model.Comment, error) {
	var missing []string
	if body == "" {
		missing = append(missing, "comment")
	}
	if videoID == "" {
		missing = append(missing, "videoId")
	}
	if userUID == "" {
		missing = append(missing, "userUID")
	}
	if len(missing) > 0 {
		return nil, model.NewMissingFieldsError(missing...)
	}

	username, err := s.resolver.ResolveDisplayName(ctx, userUID)
	if err != nil {
		if errors.Is(err, identity.ErrProfileNotFound) {
			s.metrics.RecordCommentWrite(opCreate, outcomeRejected)
			return nil, model.NewUserNotFoundError()
		}
		s.metrics.RecordCommentWrite(opCreate, outcomeError)
		return nil, fmt.Errorf("表示名の取得に失敗しました: %w", err)
	}

	created, err := s.commentRepo.Create(ctx, &model.Comment{
		UserID:   userUID,
		Username: username,
		Body:     body,
		VideoID:  videoID,
	})
	if err != nil {
		return nil, s.writeError(opCreate, videoID, 0, err)
	}

	s.metrics.RecordCommentWrite(opCreate, outcomeOK)
	slog.Info("コメントを投稿しました",
		slog.Int64("comment_id", created.ID),
		slog.String("video_id", videoID),
		slog.String("user_uid", userUID),
	)

	return created, nil
}

// ListComments は動画のコメントを投稿順に返す。
// 1件も無い場合はCOMMENTS_NOT_FOUNDを返す。
func (s *Service) ListComments(ctx context.Context, videoID string) ([]*model.Comment, error) {
	if videoID == "" {
		return nil, model.NewMissingFieldsError("videoId")
	}

	comments, err := s.commentRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("コメント一覧の取得に失敗しました: %w", err)
	}
	if len(comments) == 0 {
		return nil, model.NewCommentsNotFoundError(videoID)
	}
	return comments, nil
}

// UpdateComment は投稿者本人のコメント本文を更新する。
func (s *Service) UpdateComment(ctx context.Context, videoID string, commentID int64, userUID, body string) (*model.Comment, error) {
	var missing []string
	if body == "" {
		missing = append(missing, "updatedComment")
	}
	if userUID == "" {
		missing = append(missing, "userUID")
	}
	if len(missing) > 0 {
		return nil, model.NewMissingFieldsError(missing...)
	}

	updated, err := s.commentRepo.UpdateBody(ctx, videoID, commentID, userUID, body)
	if err != nil {
		return nil, s.writeError(opUpdate, videoID, commentID, err)
	}

	s.metrics.RecordCommentWrite(opUpdate, outcomeOK)
	slog.Info("コメントを更新しました",
		slog.Int64("comment_id", commentID),
		slog.String("video_id", videoID),
	)

	return updated, nil
}

// DeleteComment は投稿者本人のコメントを削除し、削除した行を返す。
func (s *Service) DeleteComment(ctx context.Context, videoID string, commentID int64, userUID string) (*model.Comment, error) {
	if userUID == "" {
		return nil, model.NewMissingFieldsError("userUID")
	}

	deleted, err := s.commentRepo.Delete(ctx, videoID, commentID, userUID)
	if err != nil {
		return nil, s.writeError(opDelete, videoID, commentID, err)
	}

	s.metrics.RecordCommentWrite(opDelete, outcomeOK)
	slog.Info("コメントを削除しました",
		slog.Int64("comment_id", commentID),
		slog.String("video_id", videoID),
	)

	return deleted, nil
}

// writeError はリポジトリのセンチネルエラーをAPIErrorに変換し、結果をメトリクスに記録する。
// センチネル以外はラップしてそのまま返す。
func (s *Service) writeError(op, videoID string, commentID int64, err error) error {
	var apiErr *model.APIError
	switch {
	case errors.Is(err, repository.ErrUserNotRegistered):
		apiErr = model.NewUserNotRegisteredError()
	case errors.Is(err, repository.ErrVideoNotFound):
		apiErr = model.NewVideoNotFoundError(videoID)
	case errors.Is(err, repository.ErrCommentNotFound):
		apiErr = model.NewCommentNotFoundError(commentID)
	case errors.Is(err, repository.ErrNotCommentOwner):
		apiErr = model.NewNotCommentOwnerError()
	}

	if apiErr != nil {
		s.metrics.RecordCommentWrite(op, outcomeRejected)
		return apiErr
	}

	s.metrics.RecordCommentWrite(op, outcomeError)
	return fmt.Errorf("failed to %s comment: %w", op, err)
}
