// service содержит бизнес-логику ветки комментариев.
package service

import (
	"errors"

	"github.com/pribylovaa/comment-thread/internal/config"
	"github.com/pribylovaa/comment-thread/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrConflict — конфликт уникальности или параллельных обновлений.
	ErrConflict = errors.New("conflict")
	// ErrParentNotFound — родитель не найден.
	ErrParentNotFound = errors.New("parent not found")
	// ErrParentDeleted — ответ на удалённый комментарий.
	ErrParentDeleted = errors.New("parent deleted")
	// ErrCommentDeleted — изменение удалённого комментария.
	ErrCommentDeleted = errors.New("comment deleted")
	// ErrMaxDepthExceeded — превышена максимально допустимая глубина.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrUnauthenticated — запрос без известного пользователя.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrPermissionDenied — пользователь не модератор проекта.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// Service — бизнес-логика ветки: комментарии в storage, профили в кэше.
type Service struct {
	storage storage.Storage
	viewers storage.ViewerStore
	cfg     config.Config
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, viewers storage.ViewerStore, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		viewers: viewers,
		cfg:     cfg,
	}
}

// MaxDepth — лимит глубины, с которым работает сервис.
func (s *Service) MaxDepth() int {
	return int(s.cfg.Limits.MaxDepth)
}
