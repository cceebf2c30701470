package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pribylovaa/comment-thread/internal/interceptors"
	"github.com/pribylovaa/comment-thread/internal/pkg/log"
	"github.com/pribylovaa/comment-thread/internal/service"
)

// HeaderViewerID — заголовок, который ставит провайдер сессий перед сервисом.
const HeaderViewerID = "X-Viewer-Id"

// Viewer переносит X-Viewer-Id в контекст: для сервиса и для исходящих gRPC-вызовов.
// Ставится после Logging: viewer_id попадает в логи обработчиков.
func Viewer() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderViewerID))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := service.WithViewerID(r.Context(), id)
			ctx = context.WithValue(ctx, interceptors.CtxViewerID, id)
			ctx = log.With(ctx, "viewer_id", id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
