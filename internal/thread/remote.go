package thread

import (
	"context"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
)

// Remote — удалённый сервис комментариев.
// Все методы могут блокироваться; отказ возвращается ошибкой.
type Remote interface {
	// CreateComment создаёт ответ на parentID или корневой комментарий при parentID == "".
	CreateComment(ctx context.Context, content richtext.Document, parentID string) (models.Comment, error)
	// DeleteComment мягко удаляет комментарий.
	DeleteComment(ctx context.Context, id string) error
	// ToggleLike переключает лайк текущего пользователя и возвращает итоговое множество.
	ToggleLike(ctx context.Context, id string) (models.LikeSet, error)
}

// ViewerSource отдаёт закэшированного текущего пользователя; nil — аноним.
type ViewerSource interface {
	CurrentViewer() *models.Viewer
}

// ViewerFunc адаптирует функцию к ViewerSource.
type ViewerFunc func() *models.Viewer

func (f ViewerFunc) CurrentViewer() *models.Viewer { return f() }

// EventKind — тип пользовательского уведомления.
type EventKind string

const (
	EventError EventKind = "error"
	EventInfo  EventKind = "info"
)

// Event — уведомление для пользователя (toast).
type Event struct {
	Kind        EventKind
	Title       string
	Description string
}

// Notifier показывает уведомление; fire-and-forget.
type Notifier interface {
	Notify(ev Event)
}

// Diagnostics — приёмник диагностических записей; fire-and-forget.
type Diagnostics interface {
	Log(event string, err error)
}

// noRemote отказывает во всех вызовах; отказ проходит обычный путь RemoteError.
type noRemote struct{}

func (noRemote) CreateComment(context.Context, richtext.Document, string) (models.Comment, error) {
	return models.Comment{}, ErrNoRemote
}

func (noRemote) DeleteComment(context.Context, string) error { return ErrNoRemote }

func (noRemote) ToggleLike(context.Context, string) (models.LikeSet, error) { return nil, ErrNoRemote }

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

type nopDiagnostics struct{}

func (nopDiagnostics) Log(string, error) {}
