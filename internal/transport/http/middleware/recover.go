package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pribylovaa/comment-thread/internal/pkg/log"
	"github.com/pribylovaa/comment-thread/internal/transport/http/apierrors"
)

// Recover перехватывает panic и отвечает 500/internal. Детали паники не утекают на клиент.
// Если обработчик уже начал ответ, статус не перезаписывается: паника только логируется.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)

			defer func() {
				if rec := recover(); rec != nil {
					attrs := []slog.Attr{
						slog.String("path", r.URL.Path),
						slog.Any("reason", rec),
					}
					if rid := r.Header.Get(HeaderRequestID); rid != "" {
						attrs = append(attrs, slog.String("request_id", rid))
					}
					if vid := r.Header.Get(HeaderViewerID); vid != "" {
						attrs = append(attrs, slog.String("viewer_id", vid))
					}

					log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic", attrs...)

					if !sw.wrote() {
						apierrors.WriteError(sw, r, fmt.Errorf("internal"))
					}
				}
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
