package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hitoshi/vidtalk/internal/model"
)

// NewTimeoutMiddleware はリクエストコンテキストに処理期限を設定するミドルウェアを返す。
// 期限はDBやID基盤への呼び出しにも伝播する。
// 期限切れのままハンドラーが何も書き込まずに戻った場合は504を返す。
// timeoutが0以下の場合は何もしない。
func NewTimeoutMiddleware(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rec, r.WithContext(ctx))

			if !rec.written && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				WriteErrorResponse(w, http.StatusGatewayTimeout, model.NewRequestTimeoutError())
			}
		})
	}
}
