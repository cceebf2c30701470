package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/pkg/log"
	"github.com/pribylovaa/comment-thread/internal/pkg/redact"
	"github.com/pribylovaa/comment-thread/internal/storage"
)

type viewerKey struct{}

// WithViewerID кладёт идентификатор пользователя в контекст запроса.
// Заполняется транспортом из x-viewer-id; аутентификация — забота провайдера сессий перед сервисом.
func WithViewerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, viewerKey{}, strings.TrimSpace(id))
}

// ViewerIDFrom возвращает идентификатор пользователя из контекста или "".
func ViewerIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(viewerKey{}).(string)
	return id
}

// CurrentViewer — профиль пользователя текущего запроса.
//
// Поведение/ошибки:
//   - ErrUnauthenticated — в контексте нет пользователя или профиль не найден в кэше;
//   - ErrInternal — иные ошибки кэша.
func (s *Service) CurrentViewer(ctx context.Context) (*models.Viewer, error) {
	const op = "service/viewers/CurrentViewer"

	id := ViewerIDFrom(ctx)
	lg := log.From(ctx).With("op", op, "viewer_id", id)

	if id == "" {
		lg.Warn("unauthenticated: no viewer in context")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	v, err := s.viewers.Viewer(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("viewer not found")
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		default:
			lg.Error("viewer store error on Viewer", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return v, nil
}

// SaveViewer — синхронизация профиля от провайдера сессий.
//
// Валидация:
//   - ID и DisplayName не должны быть пустыми (после TrimSpace);
//   - EditableProjectIDs нормализуются: без пустых и повторов, по возрастанию.
func (s *Service) SaveViewer(ctx context.Context, v models.Viewer) (*models.Viewer, error) {
	const op = "service/viewers/SaveViewer"

	v.ID = strings.TrimSpace(v.ID)
	v.DisplayName = strings.TrimSpace(v.DisplayName)
	lg := log.From(ctx).With("op", op, "viewer_id", v.ID)

	if v.ID == "" {
		lg.Warn("invalid argument: empty viewer id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if v.DisplayName == "" {
		lg.Warn("invalid argument: empty display name")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	v.EditableProjectIDs = normalizeProjects(v.EditableProjectIDs)
	lg = lg.With("email", redact.OptionalEmail(v.Email), "projects", len(v.EditableProjectIDs))

	if err := s.viewers.SaveViewer(ctx, v); err != nil {
		lg.Error("viewer store error on SaveViewer", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("viewer saved")

	return &v, nil
}

// DeleteViewer — сброс профиля (выход из сессии). Отсутствие профиля — не ошибка.
func (s *Service) DeleteViewer(ctx context.Context, id string) error {
	const op = "service/viewers/DeleteViewer"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "viewer_id", id)

	if id == "" {
		lg.Warn("invalid argument: empty viewer id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.viewers.DeleteViewer(ctx, id); err != nil {
		lg.Error("viewer store error on DeleteViewer", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

func normalizeProjects(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}

	slices.Sort(out)
	return slices.Compact(out)
}

// viewer — обязательный пользователь для изменяющих операций.
func (s *Service) viewer(ctx context.Context, op string) (*models.Viewer, error) {
	v, err := s.CurrentViewer(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return v, nil
}
