// Package identity は外部ID基盤（Firestore）からユーザーの表示名を解決する。
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitoshi/vidtalk/internal/metrics"
)

// ErrProfileNotFound はID基盤にユーザーのプロフィールが存在しないことを示す。
var ErrProfileNotFound = errors.New("identity profile not found")

// Resolver はユーザーUIDから表示名を解決する。
// プロフィールが無い場合はErrProfileNotFoundを返し、それ以外の失敗は一時的なエラーとして返す。
type Resolver interface {
	ResolveDisplayName(ctx context.Context, uid string) (string, error)
}

// Config はFirestoreResolverの設定。
type Config struct {
	ProjectID       string
	CredentialsJSON []byte
	Collection      string
	NameField       string
	Timeout         time.Duration
}

// documentReader は1件のドキュメントを読み出す。
// ドキュメントが存在しない場合はcodes.NotFoundのgRPCステータスエラーを返す。
type documentReader interface {
	ReadDocument(ctx context.Context, collection, docID string) (map[string]any, error)
}

// FirestoreResolver はFirestoreの<collection>/<uid>ドキュメントから表示名を読み出すResolver。
type FirestoreResolver struct {
	docs       documentReader
	collection string
	nameField  string
	timeout    time.Duration
	metrics    metrics.MetricsCollector
	close      func() error
}

// NewFirestoreResolver はサービスアカウントJSONでFirestoreクライアントを生成し、Resolverを返す。
// ProjectIDが空の場合は認証情報から推定する。
func NewFirestoreResolver(ctx context.Context, cfg Config, m metrics.MetricsCollector) (*FirestoreResolver, error) {
	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	r := newResolver(&firestoreReader{client: client}, cfg, m)
	r.close = client.Close
	return r, nil
}

func newResolver(docs documentReader, cfg Config, m metrics.MetricsCollector) *FirestoreResolver {
	if cfg.Collection == "" {
		cfg.Collection = "users"
	}
	if cfg.NameField == "" {
		cfg.NameField = "username"
	}
	if m == nil {
		m = metrics.Nop{}
	}
	return &FirestoreResolver{
		docs:       docs,
		collection: cfg.Collection,
		nameField:  cfg.NameField,
		timeout:    cfg.Timeout,
		metrics:    m,
	}
}

// ResolveDisplayName はuidに対応するプロフィールの表示名を返す。
func (r *FirestoreResolver) ResolveDisplayName(ctx context.Context, uid string) (string, error) {
	// Firestoreのドキュメントパスに使えないUIDは存在しないものとして扱う
	if uid == "" || strings.Contains(uid, "/") {
		r.metrics.RecordIdentityLookup(metrics.LookupNotFound, 0)
		return "", ErrProfileNotFound
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := r.docs.ReadDocument(ctx, r.collection, uid)
	elapsed := time.Since(start)

	if err != nil {
		if status.Code(err) == codes.NotFound {
			r.metrics.RecordIdentityLookup(metrics.LookupNotFound, elapsed)
			return "", ErrProfileNotFound
		}
		r.metrics.RecordIdentityLookup(metrics.LookupError, elapsed)
		return "", fmt.Errorf("failed to read identity profile: %w", err)
	}

	name, ok := data[r.nameField].(string)
	if !ok || name == "" {
		// 表示名の無いプロフィールではコメントを作成できない
		r.metrics.RecordIdentityLookup(metrics.LookupNotFound, elapsed)
		return "", ErrProfileNotFound
	}

	r.metrics.RecordIdentityLookup(metrics.LookupFound, elapsed)
	return name, nil
}

// Close は内部のFirestoreクライアントを閉じる。
func (r *FirestoreResolver) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

type firestoreReader struct {
	client *firestore.Client
}

func (f *firestoreReader) ReadDocument(ctx context.Context, collection, docID string) (map[string]any, error) {
	snap, err := f.client.Collection(collection).Doc(docID).Get(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.Exists() {
		return nil, status.Error(codes.NotFound, "document does not exist")
	}
	return snap.Data(), nil
}

// compile-time interface check
var _ Resolver = (*FirestoreResolver)(nil)
