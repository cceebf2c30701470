package interceptors

import (
	"context"
	"strings"

	"github.com/pribylovaa/comment-thread/internal/pkg/log"
	"github.com/pribylovaa/comment-thread/internal/service"
	"google.golang.org/grpc"
)

// MDViewerID — ключ metadata с идентификатором пользователя виджета.
// Ставится провайдером сессий перед сервисом.
const MDViewerID = "x-viewer-id"

// Viewer переносит x-viewer-id из metadata в контекст сервиса
// и добавляет viewer_id в контекстный логгер. Отсутствие заголовка — анонимный запрос.
func Viewer() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := strings.TrimSpace(firstMD(ctx, MDViewerID))
		if id == "" {
			return handler(ctx, req)
		}

		ctx = service.WithViewerID(ctx, id)
		ctx = log.With(ctx, "viewer_id", id)

		return handler(ctx, req)
	}
}
