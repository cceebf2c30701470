package thread

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — узла с таким id нет в ветке.
	ErrNotFound = errors.New("comment not found in thread")
	// ErrInvalidComment — у узла пустой id.
	ErrInvalidComment = errors.New("invalid comment")
	// ErrDuplicate — узел с таким id уже есть.
	ErrDuplicate = errors.New("duplicate comment id")
	// ErrOrphan — родитель узла отсутствует в ветке.
	ErrOrphan = errors.New("parent comment not in thread")
	// ErrDepthMismatch — depth узла не равен parent.depth+1 (или 0 у корня).
	ErrDepthMismatch = errors.New("comment depth does not match its parent")
	// ErrTooDeep — depth узла больше MaxDepth.
	ErrTooDeep = errors.New("comment depth exceeds max depth")
	// ErrForeignProject — узел принадлежит другому проекту.
	ErrForeignProject = errors.New("comment belongs to another project")
	// ErrNoRemote — контроллер создан без удалённого сервиса.
	ErrNoRemote = errors.New("no remote configured")
	// ErrClosed — контекст ветки уже разобран.
	ErrClosed = errors.New("thread closed")

	// ErrBusy — по узлу уже выполняется мутация.
	ErrBusy = errors.New("mutation in flight")
	// ErrEditorClosed — редактор ответа не открыт.
	ErrEditorClosed = errors.New("reply editor is closed")
	// ErrEmptyContent — пустой черновик.
	ErrEmptyContent = errors.New("empty content")
	// ErrDeleted — действие над мягко удалённым комментарием.
	ErrDeleted = errors.New("comment is deleted")
	// ErrPermissionDenied — Moderation Gate запретил удаление.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotConfirmed — удаление без шага подтверждения.
	ErrNotConfirmed = errors.New("delete not confirmed")
	// ErrMaintenance — действие отключено на время обслуживания.
	ErrMaintenance = errors.New("maintenance mode")
	// ErrSignInRequired — действие недоступно анонимному пользователю.
	ErrSignInRequired = errors.New("sign in required")
)

// RemoteError — отказ удалённого вызова (сеть, валидация, права).
// Контроллер перехватывает его на границе мутации: показывает уведомление,
// пишет диагностику и оставляет ветку в согласованном состоянии.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: remote: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsRemote сообщает, что err — отказ удалённого вызова.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
