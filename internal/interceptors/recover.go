// interceptors — unary-интерсепторы gRPC для сервиса и клиента ветки.
package interceptors

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/pribylovaa/comment-thread/internal/pkg/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Recover возвращает unary-интерсептор, который перехватывает паники в обработчиках,
// логирует их и отвечает клиенту нейтральной ошибкой codes.Internal.
//
// Поведение:
//   - паника в любом месте стека RPC даёт запись уровня Error с методом и стеком;
//   - request_id и viewer_id берутся прямо из metadata: Recover стоит первым в цепочке,
//     до UnaryLoggingInterceptor и Viewer;
//   - клиенту уходит status.Error(codes.Internal, "internal server error");
//   - логгер из контекста (pkg/log) приоритетнее base.
func Recover(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		l := log.From(ctx)
		if l == slog.Default() && base != nil {
			l = base
		}

		defer func() {
			if r := recover(); r != nil {
				attrs := []any{
					slog.String("method", info.FullMethod),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				}
				if rid := firstMD(ctx, MDRequestID); rid != "" {
					attrs = append(attrs, slog.String("request_id", rid))
				}
				if vid := firstMD(ctx, MDViewerID); vid != "" {
					attrs = append(attrs, slog.String("viewer_id", vid))
				}

				l.Error("panic_recovered", attrs...)

				err = status.Error(codes.Internal, "internal server error")
				resp = nil
			}
		}()

		return handler(ctx, req)
	}
}
