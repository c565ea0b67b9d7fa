package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/vidtalk/internal/model"
)

// PostgresVideoRepo はPostgreSQLを使用した動画リポジトリ。
type PostgresVideoRepo struct {
	db *sql.DB
}

// NewPostgresVideoRepo はPostgresVideoRepoを生成する。
func NewPostgresVideoRepo(db *sql.DB) *PostgresVideoRepo {
	return &PostgresVideoRepo{db: db}
}

// CreateIfAbsent は動画を作成する。既に存在する場合はnilを返す。
func (r *PostgresVideoRepo) CreateIfAbsent(ctx context.Context, video *model.Video) (*model.Video, error) {
	created := &model.Video{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO videos (videoid, title)
		 VALUES ($1, $2)
		 ON CONFLICT (videoid) DO NOTHING
		 RETURNING videoid, title, created_at`,
		video.ID, video.Title,
	).Scan(&created.ID, &created.Title, &created.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("動画の作成に失敗しました: %w", err)
	}

	return created, nil
}

// compile-time interface check
var _ VideoRepository = (*PostgresVideoRepo)(nil)
