package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hitoshi/vidtalk/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db *sql.DB
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// CreateIfAbsent はユーザーを作成する。既に存在する場合はnilを返す。
// 存在確認と挿入をON CONFLICTで1文にまとめ、同時リクエストでも行は1件に保たれる。
func (r *PostgresUserRepo) CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, error) {
	created := &model.User{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (firebase_uid, email)
		 VALUES ($1, $2)
		 ON CONFLICT (firebase_uid) DO NOTHING
		 RETURNING firebase_uid, email, created_at`,
		user.ID, user.Email,
	).Scan(&created.ID, &created.Email, &created.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return created, nil
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
