package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/pkg/log"
	"github.com/pribylovaa/comment-thread/internal/richtext"
	"github.com/pribylovaa/comment-thread/internal/storage"
	"github.com/pribylovaa/comment-thread/internal/thread"
)

// Входные структуры сервисного слоя.

// CreateCommentInput — создание корневого комментария или ответа.
// Правила:
//   - если ParentID пуст, создаётся корень и обязательны ProjectID и PageID;
//   - если ParentID не пуст, создаётся ответ; ProjectID/PageID наследуются от родителя;
//   - автор берётся из профиля текущего пользователя.
type CreateCommentInput struct {
	ProjectID string
	PageID    string
	ParentID  string
	Content   richtext.Document
}

// ListByPageInput — параметры постраничной выдачи корней страницы.
type ListByPageInput struct {
	PageID    string
	PageSize  int32
	PageToken string
}

// ListRepliesInput — параметры постраничной выдачи ответов по parent_id.
type ListRepliesInput struct {
	ParentID  string
	PageSize  int32
	PageToken string
}

// ThreadResult — вся ветка страницы плоским списком (родитель раньше ребёнка).
type ThreadResult struct {
	PageID   string
	Comments []models.Comment
	MaxDepth int
}

// CreateComment — бизнес-операция создания комментария.
//
// Валидация:
//   - нужен известный пользователь (ErrUnauthenticated);
//   - Content — корректный документ и не пустой после нормализации (ErrInvalidArgument);
//   - для корня обязательны ProjectID и PageID.
//
// Поведение/ошибки:
//   - ErrParentNotFound, ErrParentDeleted — проблемы с родителем;
//   - ErrMaxDepthExceeded — ответ глубже лимита;
//   - ErrConflict — конфликт уникальности;
//   - ErrInternal — прочие ошибки стораджа/БД/контекста.
func (s *Service) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const op = "service/comments/CreateComment"

	in.ProjectID = strings.TrimSpace(in.ProjectID)
	in.PageID = strings.TrimSpace(in.PageID)
	in.ParentID = strings.TrimSpace(in.ParentID)

	lg := log.From(ctx).With(
		"op", op,
		"project_id", in.ProjectID,
		"page_id", in.PageID,
		"parent_id", in.ParentID,
	)

	if err := richtext.Validate(in.Content); err != nil {
		lg.Warn("invalid argument: bad content", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if richtext.IsEmpty(in.Content) {
		lg.Warn("invalid argument: empty content")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	// Для корня обязательна привязка к проекту и странице.
	if in.ParentID == "" && (in.ProjectID == "" || in.PageID == "") {
		lg.Warn("invalid argument: empty project_id or page_id for root comment")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	viewer, err := s.viewer(ctx, op)
	if err != nil {
		return nil, err
	}

	comm := models.Comment{
		ProjectID: in.ProjectID,
		PageID:    in.PageID,
		ParentID:  in.ParentID,
		Author:    viewer.Author(),
		Content:   in.Content,
	}

	result, err := s.storage.CreateComment(ctx, comm)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrParentNotFound):
			lg.Warn("parent not found")
			return nil, fmt.Errorf("%s: %w", op, ErrParentNotFound)
		case errors.Is(err, storage.ErrParentDeleted):
			lg.Warn("parent deleted")
			return nil, fmt.Errorf("%s: %w", op, ErrParentDeleted)
		case errors.Is(err, storage.ErrMaxDepthExceeded):
			lg.Warn("max depth exceeded")
			return nil, fmt.Errorf("%s: %w", op, ErrMaxDepthExceeded)
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("conflict")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on CreateComment", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("comment created", "id", result.ID, "depth", result.Depth, "author_id", viewer.ID)
	return result, nil
}

// DeleteComment — мягкое удаление комментария по ID.
// Удалять может только модератор проекта комментария.
//
// Поведение/ошибки:
//   - ErrUnauthenticated — нет пользователя;
//   - ErrNotFound — комментарий не найден;
//   - ErrPermissionDenied — пользователь не модератор проекта;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) DeleteComment(ctx context.Context, id string) error {
	const op = "service/comments/DeleteComment"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	viewer, err := s.viewer(ctx, op)
	if err != nil {
		return err
	}

	comm, err := s.storage.CommentByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on CommentByID", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	if !thread.CanModerate(viewer, comm.ProjectID) {
		lg.Warn("permission denied", "viewer_id", viewer.ID, "project_id", comm.ProjectID)
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if err := s.storage.DeleteComment(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteComment", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("comment deleted", "viewer_id", viewer.ID)
	return nil
}

// ToggleLike — поставить или снять лайк текущего пользователя.
// Возвращает итоговое множество лайков.
//
// Поведение/ошибки:
//   - ErrUnauthenticated — нет пользователя;
//   - ErrNotFound — комментарий не найден;
//   - ErrCommentDeleted — комментарий удалён;
//   - ErrConflict — гонка параллельных обновлений;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) ToggleLike(ctx context.Context, id string) (models.LikeSet, error) {
	const op = "service/comments/ToggleLike"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	viewer, err := s.viewer(ctx, op)
	if err != nil {
		return nil, err
	}

	likes, err := s.storage.ToggleLike(ctx, id, viewer.ID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrCommentDeleted):
			lg.Warn("comment deleted")
			return nil, fmt.Errorf("%s: %w", op, ErrCommentDeleted)
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("conflict")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on ToggleLike", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return likes.Normalize(), nil
}

// CommentByID — получить комментарий по ID.
//
// Поведение/ошибки:
//   - ErrNotFound — если комментарий не найден (включая неверный формат идентификатора);
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) CommentByID(ctx context.Context, id string) (*models.Comment, error) {
	const op = "service/comments/CommentByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.storage.CommentByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on CommentByID", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return result, nil
}

// ListByPage — страница корневых комментариев страницы.
func (s *Service) ListByPage(ctx context.Context, in ListByPageInput) (*models.Page, error) {
	const op = "service/comments/ListByPage"

	in.PageID = strings.TrimSpace(in.PageID)
	lg := log.From(ctx).With("op", op, "page_id", in.PageID)

	if in.PageID == "" {
		lg.Warn("invalid argument: empty page_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	page, err := s.storage.ListByPage(ctx, in.PageID, models.ListParams{
		PageSize:  in.PageSize,
		PageToken: in.PageToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidCursor):
			lg.Warn("invalid cursor")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		default:
			lg.Error("storage error on ListByPage", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return page, nil
}

// ListReplies — страница прямых ответов на parent_id.
func (s *Service) ListReplies(ctx context.Context, in ListRepliesInput) (*models.Page, error) {
	const op = "service/comments/ListReplies"

	in.ParentID = strings.TrimSpace(in.ParentID)
	lg := log.From(ctx).With("op", op, "parent_id", in.ParentID)

	if in.ParentID == "" {
		lg.Warn("invalid argument: empty parent_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	page, err := s.storage.ListReplies(ctx, in.ParentID, models.ListParams{
		PageSize:  in.PageSize,
		PageToken: in.PageToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidCursor):
			lg.Warn("invalid cursor")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCursor)
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("parent comment not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on ListReplies", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return page, nil
}

// Thread — вся ветка страницы и лимит глубины, с которым её строить.
// Клиент загружает результат в thread.Thread целиком.
func (s *Service) Thread(ctx context.Context, pageID string) (*ThreadResult, error) {
	const op = "service/comments/Thread"

	pageID = strings.TrimSpace(pageID)
	lg := log.From(ctx).With("op", op, "page_id", pageID)

	if pageID == "" {
		lg.Warn("invalid argument: empty page_id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	items, err := s.storage.ListThread(ctx, pageID)
	if err != nil {
		lg.Error("storage error on ListThread", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return &ThreadResult{
		PageID:   pageID,
		Comments: items,
		MaxDepth: s.MaxDepth(),
	}, nil
}
