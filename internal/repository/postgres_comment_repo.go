package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/vidtalk/internal/model"
)

const commentColumns = `id, user_uid, username, comment, video_id, created_at`

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
// 存在確認と書き込みを伴う操作はすべて1トランザクション内で行う。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// Create はコメントを作成する。
// ユーザー行と動画行をFOR SHAREでロックしてから挿入するため、
// 確認から挿入までの間に参照先が消えることはない。
func (r *PostgresCommentRepo) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockRow(ctx, tx,
		`SELECT 1 FROM users WHERE firebase_uid = $1 FOR SHARE`, c.UserID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotRegistered
		}
		return nil, fmt.Errorf("failed to lock user row: %w", err)
	}

	if err := lockRow(ctx, tx,
		`SELECT 1 FROM videos WHERE videoid = $1 FOR SHARE`, c.VideoID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to lock video row: %w", err)
	}

	created, err := scanComment(tx.QueryRowContext(ctx,
		`INSERT INTO comments (user_uid, username, comment, video_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+commentColumns,
		c.UserID, c.Username, c.Body, c.VideoID,
	))
	if err != nil {
		if fkErr := foreignKeyViolation(err); fkErr != nil {
			return nil, fkErr
		}
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, nil
}

// ListByVideo は動画のコメントを投稿順（id昇順）に返す。
func (r *PostgresCommentRepo) ListByVideo(ctx context.Context, videoID string) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+commentColumns+`
		 FROM comments WHERE video_id = $1 ORDER BY id ASC`,
		videoID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comment rows: %w", err)
	}
	return comments, nil
}

// UpdateBody は投稿者本人のコメント本文を更新し、更新後の行を返す。
func (r *PostgresCommentRepo) UpdateBody(ctx context.Context, videoID string, commentID int64, userID, body string) (*model.Comment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockOwnedComment(ctx, tx, videoID, commentID, userID); err != nil {
		return nil, err
	}

	updated, err := scanComment(tx.QueryRowContext(ctx,
		`UPDATE comments SET comment = $1
		 WHERE id = $2
		 RETURNING `+commentColumns,
		body, commentID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// Delete は投稿者本人のコメントを削除し、削除した行を返す。
func (r *PostgresCommentRepo) Delete(ctx context.Context, videoID string, commentID int64, userID string) (*model.Comment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockOwnedComment(ctx, tx, videoID, commentID, userID); err != nil {
		return nil, err
	}

	deleted, err := scanComment(tx.QueryRowContext(ctx,
		`DELETE FROM comments WHERE id = $1
		 RETURNING `+commentColumns,
		commentID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return deleted, nil
}

// lockOwnedComment は(video_id, id)のコメント行をFOR UPDATEでロックし、投稿者を照合する。
func lockOwnedComment(ctx context.Context, tx *sql.Tx, videoID string, commentID int64, userID string) error {
	var owner string
	err := tx.QueryRowContext(ctx,
		`SELECT user_uid FROM comments
		 WHERE video_id = $1 AND id = $2
		 FOR UPDATE`,
		videoID, commentID,
	).Scan(&owner)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrCommentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock comment row: %w", err)
	}
	if owner != userID {
		return ErrNotCommentOwner
	}
	return nil
}

// lockRow は1行を返すロック付きSELECTを実行する。行が無い場合はsql.ErrNoRowsを返す。
func lockRow(ctx context.Context, tx *sql.Tx, query string, arg any) error {
	var one int
	return tx.QueryRowContext(ctx, query, arg).Scan(&one)
}

// foreignKeyViolation は外部キー違反(23503)を対応するセンチネルエラーに変換する。
// 外部キー違反でない場合はnilを返す。
func foreignKeyViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23503" {
		return nil
	}
	switch pqErr.Constraint {
	case "comments_user_uid_fkey":
		return ErrUserNotRegistered
	case "comments_video_id_fkey":
		return ErrVideoNotFound
	}
	return nil
}

func scanComment(s rowScanner) (*model.Comment, error) {
	c := &model.Comment{}
	if err := s.Scan(&c.ID, &c.UserID, &c.Username, &c.Body, &c.VideoID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
