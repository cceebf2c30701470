package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/comment-thread/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCursor — битый/чужой page_token.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrConflict — конфликт уникальности или гонка параллельных обновлений.
	ErrConflict = errors.New("conflict")
	// ErrParentNotFound — указан parent_id, но родитель не найден.
	ErrParentNotFound = errors.New("parent not found")
	// ErrParentDeleted — ответ на мягко удалённый комментарий.
	ErrParentDeleted = errors.New("parent deleted")
	// ErrMaxDepthExceeded — превышена максимально допустимая глубина.
	ErrMaxDepthExceeded = errors.New("max depth exceeded")
	// ErrCommentDeleted — изменение мягко удалённого комментария.
	ErrCommentDeleted = errors.New("comment deleted")
)

// Storage описывает операции над комментариями.
type Storage interface {
	// CreateComment создаёт корневой комментарий или ответ.
	// Входной Comment должен содержать:
	//   - Author, Content (обязательные);
	//   - ProjectID, PageID (для корня);
	//   - ParentID (опционально, если это ответ).
	// Вычисляются хранилищем: ID, Depth, Likes, RepliesCount, CreatedAt, UpdatedAt, DeletedAt.
	// У ответа ProjectID/PageID берутся из родителя.
	// Возможные ошибки: ErrParentNotFound, ErrParentDeleted, ErrMaxDepthExceeded, ErrConflict.
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)

	// DeleteComment выполняет мягкое удаление (deleted_at, очистка content).
	// Повторное удаление не меняет первую отметку. Если запись не найдена — ErrNotFound.
	DeleteComment(ctx context.Context, id string) error

	// ToggleLike ставит лайк userID или снимает его, если он уже был.
	// Возвращает итоговое множество. Ошибки: ErrNotFound, ErrCommentDeleted, ErrConflict.
	ToggleLike(ctx context.Context, id, userID string) (models.LikeSet, error)

	// CommentByID возвращает комментарий по его строковому идентификатору.
	// Если запись не найдена — ErrNotFound.
	CommentByID(ctx context.Context, id string) (*models.Comment, error)

	// ListByPage возвращает страницу корневых комментариев страницы (parent_id == "").
	// Сортировка: сначала новые (created_at DESC).
	// При некорректном page_token — ErrInvalidCursor.
	ListByPage(ctx context.Context, pageID string, p models.ListParams) (*models.Page, error)

	// ListReplies возвращает страницу прямых ответов на parentID.
	// Сортировка: сначала старые (created_at ASC).
	// При некорректном page_token — ErrInvalidCursor.
	ListReplies(ctx context.Context, parentID string, p models.ListParams) (*models.Page, error)

	// ListThread возвращает всю ветку страницы плоским списком:
	// depth ASC, затем created_at ASC. Родитель всегда раньше ребёнка.
	ListThread(ctx context.Context, pageID string) ([]models.Comment, error)

	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}

// ViewerStore — кэш профилей пользователей с правами модерации.
type ViewerStore interface {
	// Viewer возвращает профиль по id. Если записи нет — ErrNotFound.
	Viewer(ctx context.Context, id string) (*models.Viewer, error)

	// SaveViewer сохраняет профиль с TTL хранилища.
	SaveViewer(ctx context.Context, viewer models.Viewer) error

	// DeleteViewer удаляет профиль; отсутствие записи — не ошибка.
	DeleteViewer(ctx context.Context, id string) error

	// Close закрывает соединение.
	Close() error
}
