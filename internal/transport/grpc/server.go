// Реализация gRPC-эндпоинтов ThreadService по контракту thread.v1.
//
// Маппинг ошибок сервиса в коды gRPC:
//
//	ErrInvalidArgument        -> codes.InvalidArgument
//	ErrInvalidCursor          -> codes.InvalidArgument
//	ErrNotFound               -> codes.NotFound
//	ErrParentNotFound         -> codes.NotFound
//	ErrConflict               -> codes.AlreadyExists
//	ErrParentDeleted          -> codes.FailedPrecondition
//	ErrCommentDeleted         -> codes.FailedPrecondition
//	ErrMaxDepthExceeded       -> codes.FailedPrecondition
//	ErrUnauthenticated        -> codes.Unauthenticated
//	ErrPermissionDenied       -> codes.PermissionDenied
//	прочее                    -> codes.Internal
package grpc

import (
	"context"
	"errors"
	"strings"

	threadv1 "github.com/pribylovaa/comment-thread/api/threadv1"
	"github.com/pribylovaa/comment-thread/internal/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ThreadServer — gRPC-сервер ThreadService.
type ThreadServer struct {
	threadv1.UnimplementedThreadServiceServer
	service *service.Service
}

func NewThreadServer(svc *service.Service) *ThreadServer {
	return &ThreadServer{service: svc}
}

// statusFrom переводит ошибку сервиса в gRPC status.
// Детали внутренних ошибок клиенту не отдаются.
func statusFrom(op string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, service.ErrInvalidCursor):
		return status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrParentNotFound):
		return status.Errorf(codes.NotFound, "%s: %v", op, err)
	case errors.Is(err, service.ErrConflict):
		return status.Errorf(codes.AlreadyExists, "%s: %v", op, err)
	case errors.Is(err, service.ErrParentDeleted),
		errors.Is(err, service.ErrCommentDeleted),
		errors.Is(err, service.ErrMaxDepthExceeded):
		return status.Errorf(codes.FailedPrecondition, "%s: %v", op, err)
	case errors.Is(err, service.ErrUnauthenticated):
		return status.Errorf(codes.Unauthenticated, "%s: %v", op, err)
	case errors.Is(err, service.ErrPermissionDenied):
		return status.Errorf(codes.PermissionDenied, "%s: %v", op, err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		return status.Errorf(codes.Internal, "internal server error")
	}
}

// CreateComment — создание корня или ответа от имени текущего пользователя.
func (s *ThreadServer) CreateComment(ctx context.Context, req *threadv1.CreateCommentRequest) (*threadv1.CreateCommentResponse, error) {
	const op = "transport/grpc/thread/CreateComment"

	// Если parent_id задан, project_id/page_id игнорируются: их унаследует сторедж.
	in := service.CreateCommentInput{
		ParentID: strings.TrimSpace(req.ParentID),
		Content:  req.Content,
	}
	if in.ParentID == "" {
		in.ProjectID = req.ProjectID
		in.PageID = req.PageID
	}

	res, err := s.service.CreateComment(ctx, in)
	if err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.CreateCommentResponse{Comment: threadv1.FromComment(*res)}, nil
}

// DeleteComment — мягкое удаление (только модератор проекта).
func (s *ThreadServer) DeleteComment(ctx context.Context, req *threadv1.DeleteCommentRequest) (*threadv1.DeleteCommentResponse, error) {
	const op = "transport/grpc/thread/DeleteComment"

	if err := s.service.DeleteComment(ctx, strings.TrimSpace(req.ID)); err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.DeleteCommentResponse{}, nil
}

// ToggleLike — лайк/снятие лайка; в ответе итоговое множество.
func (s *ThreadServer) ToggleLike(ctx context.Context, req *threadv1.ToggleLikeRequest) (*threadv1.ToggleLikeResponse, error) {
	const op = "transport/grpc/thread/ToggleLike"

	likes, err := s.service.ToggleLike(ctx, strings.TrimSpace(req.ID))
	if err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.ToggleLikeResponse{Likes: threadv1.FromLikes(likes)}, nil
}

func (s *ThreadServer) CommentByID(ctx context.Context, req *threadv1.CommentByIDRequest) (*threadv1.CommentByIDResponse, error) {
	const op = "transport/grpc/thread/CommentByID"

	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, status.Errorf(codes.InvalidArgument, "%s: empty id", op)
	}

	res, err := s.service.CommentByID(ctx, id)
	if err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.CommentByIDResponse{Comment: threadv1.FromComment(*res)}, nil
}

// ListByPage — страница корневых комментариев.
func (s *ThreadServer) ListByPage(ctx context.Context, req *threadv1.ListByPageRequest) (*threadv1.ListByPageResponse, error) {
	const op = "transport/grpc/thread/ListByPage"

	page, err := s.service.ListByPage(ctx, service.ListByPageInput{
		PageID:    req.PageID,
		PageSize:  req.PageSize,
		PageToken: req.PageToken,
	})
	if err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.ListByPageResponse{
		Comments:      threadv1.FromComments(page.Items),
		NextPageToken: page.NextPageToken,
	}, nil
}

// ListReplies — страница ответов по parent_id.
func (s *ThreadServer) ListReplies(ctx context.Context, req *threadv1.ListRepliesRequest) (*threadv1.ListRepliesResponse, error) {
	const op = "transport/grpc/thread/ListReplies"

	parentID := strings.TrimSpace(req.ParentID)
	if parentID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "%s: empty parent_id", op)
	}

	page, err := s.service.ListReplies(ctx, service.ListRepliesInput{
		ParentID:  parentID,
		PageSize:  req.PageSize,
		PageToken: req.PageToken,
	})
	if err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.ListRepliesResponse{
		Comments:      threadv1.FromComments(page.Items),
		NextPageToken: page.NextPageToken,
	}, nil
}

// GetThread — вся ветка страницы и лимит глубины.
func (s *ThreadServer) GetThread(ctx context.Context, req *threadv1.GetThreadRequest) (*threadv1.GetThreadResponse, error) {
	const op = "transport/grpc/thread/GetThread"

	res, err := s.service.Thread(ctx, req.PageID)
	if err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.GetThreadResponse{
		PageID:   res.PageID,
		Comments: threadv1.FromComments(res.Comments),
		MaxDepth: int32(res.MaxDepth),
	}, nil
}

// CurrentViewer — профиль пользователя запроса. Аноним — пустой viewer, не ошибка.
func (s *ThreadServer) CurrentViewer(ctx context.Context, _ *threadv1.CurrentViewerRequest) (*threadv1.CurrentViewerResponse, error) {
	const op = "transport/grpc/thread/CurrentViewer"

	v, err := s.service.CurrentViewer(ctx)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return &threadv1.CurrentViewerResponse{}, nil
		}
		return nil, statusFrom(op, err)
	}

	return &threadv1.CurrentViewerResponse{Viewer: threadv1.FromViewer(*v)}, nil
}

// SaveViewer — синхронизация профиля и прав модерации от провайдера сессий.
func (s *ThreadServer) SaveViewer(ctx context.Context, req *threadv1.SaveViewerRequest) (*threadv1.SaveViewerResponse, error) {
	const op = "transport/grpc/thread/SaveViewer"

	if req.Viewer == nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: empty viewer", op)
	}

	v, err := s.service.SaveViewer(ctx, *req.Viewer.Model())
	if err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.SaveViewerResponse{Viewer: threadv1.FromViewer(*v)}, nil
}

// DeleteViewer — сброс профиля при выходе из сессии.
func (s *ThreadServer) DeleteViewer(ctx context.Context, req *threadv1.DeleteViewerRequest) (*threadv1.DeleteViewerResponse, error) {
	const op = "transport/grpc/thread/DeleteViewer"

	if err := s.service.DeleteViewer(ctx, req.ID); err != nil {
		return nil, statusFrom(op, err)
	}

	return &threadv1.DeleteViewerResponse{}, nil
}
