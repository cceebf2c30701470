package thread

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
)

// TimelinePath — префикс ссылки на историю комментария.
const TimelinePath = "/widget/comment/timeline/"

// Тексты уведомлений об отказах удалённых вызовов.
const (
	ReplyFailedTitle   = "Replied failed, try again later"
	CommentFailedTitle = "Comment failed, try again later"
	DeleteFailedTitle  = "Delete failed, try again later"
	LikeFailedTitle    = "Like failed, try again later"

	ReplyHint      = "Reply to this comment"
	ReplyDepthHint = "You have reached the maximum depth of replies"
)

// Env — внешнее окружение контроллера.
// Nil-поля заменяются безопасными значениями по умолчанию.
type Env struct {
	Remote      Remote
	Viewer      ViewerSource
	Notifier    Notifier
	Diagnostics Diagnostics

	// Maintenance отключает лайк и ответ во всей ветке.
	Maintenance bool
	// DisableTimeline отключает переход к истории комментария.
	DisableTimeline bool
	// FeedbackDuration — длительность отказа; 0 — DefaultFeedbackDuration.
	FeedbackDuration time.Duration

	Now       func() time.Time
	AfterFunc AfterFunc
}

type card struct {
	replyOpen   bool
	draft       richtext.Document
	reply       Mutation[models.Comment]
	confirmOpen bool
	del         Mutation[struct{}]
	like        Mutation[models.LikeSet]
	feedback    *Feedback
}

// rootKey — карточка редактора корневого комментария.
const rootKey = ""

// Controller связывает ветку с удалённым сервисом и хранит состояние карточек:
// открытый редактор, черновик, подтверждение удаления, фазы мутаций, отказ.
//
// Ответ и удаление одного узла взаимоисключающие: пока одна из мутаций
// в полёте, другая получает ErrBusy. Лайк от них не зависит.
type Controller struct {
	mu     sync.Mutex
	thread *Thread
	env    Env
	cards  map[string]*card
}

// NewController создаёт контроллер поверх ветки.
func NewController(t *Thread, env Env) *Controller {
	if env.Remote == nil {
		env.Remote = noRemote{}
	}
	if env.Viewer == nil {
		env.Viewer = ViewerFunc(func() *models.Viewer { return nil })
	}
	if env.Notifier == nil {
		env.Notifier = nopNotifier{}
	}
	if env.Diagnostics == nil {
		env.Diagnostics = nopDiagnostics{}
	}
	if env.FeedbackDuration <= 0 {
		env.FeedbackDuration = DefaultFeedbackDuration
	}
	if env.Now == nil {
		env.Now = time.Now
	}

	return &Controller{
		thread: t,
		env:    env,
		cards:  make(map[string]*card),
	}
}

// Thread возвращает ветку контроллера.
func (c *Controller) Thread() *Thread { return c.thread }

func (c *Controller) cardLocked(id string) *card {
	cd, ok := c.cards[id]
	if !ok {
		cd = &card{feedback: NewFeedback(c.env.FeedbackDuration, c.env.AfterFunc)}
		c.cards[id] = cd
	}

	return cd
}

func (c *Controller) nodeLocked(id string) (models.Comment, *card, error) {
	node, ok := c.thread.Node(id)
	if !ok {
		return models.Comment{}, nil, ErrNotFound
	}

	return node, c.cardLocked(id), nil
}

func (c *Controller) replyAllowed(node models.Comment) bool {
	return !c.env.Maintenance && node.Depth < c.thread.MaxDepth()
}

// PressReply — нажатие «Ответить».
// На максимальной глубине запускает отказ и возвращает false без открытия
// редактора. Иначе переключает редактор и возвращает его новое состояние.
// Режим обслуживания проверяется раньше глубины: ErrMaintenance без отказа.
func (c *Controller) PressReply(id string) (bool, error) {
	const op = "thread/PressReply"

	c.mu.Lock()
	defer c.mu.Unlock()

	node, cd, err := c.nodeLocked(id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case node.IsDeleted():
		return false, fmt.Errorf("%s: %w", op, ErrDeleted)
	case c.env.Maintenance:
		return false, fmt.Errorf("%s: %w", op, ErrMaintenance)
	case node.Depth >= c.thread.MaxDepth():
		cd.feedback.Deny()
		return false, nil
	}

	cd.replyOpen = !cd.replyOpen

	return cd.replyOpen, nil
}

// DismissReply закрывает редактор ответа; черновик сохраняется.
func (c *Controller) DismissReply(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cd, ok := c.cards[id]; ok {
		cd.replyOpen = false
	}
}

// SetDraft обновляет черновик ответа в открытом редакторе.
func (c *Controller) SetDraft(id string, doc richtext.Document) error {
	const op = "thread/SetDraft"

	c.mu.Lock()
	defer c.mu.Unlock()

	_, cd, err := c.nodeLocked(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case !cd.replyOpen:
		return fmt.Errorf("%s: %w", op, ErrEditorClosed)
	case cd.reply.Pending():
		return fmt.Errorf("%s: %w", op, ErrBusy)
	}

	cd.draft = doc

	return nil
}

// SetRootDraft обновляет черновик корневого комментария.
func (c *Controller) SetRootDraft(doc richtext.Document) error {
	const op = "thread/SetRootDraft"

	c.mu.Lock()
	defer c.mu.Unlock()

	cd := c.cardLocked(rootKey)
	if cd.reply.Pending() {
		return fmt.Errorf("%s: %w", op, ErrBusy)
	}

	cd.draft = doc

	return nil
}

// Draft возвращает черновик ответа на id (rootKey — корневой редактор).
func (c *Controller) Draft(id string) richtext.Document {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cd, ok := c.cards[id]; ok {
		return cd.draft
	}

	return richtext.Document{}
}

// SubmitReply отправляет черновик как ответ на id.
// При успехе новый узел вставляется последним ребёнком id, редактор
// закрывается, черновик очищается. При отказе ветка не меняется, редактор
// и черновик остаются, пользователь получает уведомление.
func (c *Controller) SubmitReply(ctx context.Context, id string) (models.Comment, error) {
	const op = "thread/SubmitReply"

	c.mu.Lock()
	if c.thread.Closed() {
		c.mu.Unlock()
		return models.Comment{}, fmt.Errorf("%s: %w", op, ErrClosed)
	}

	node, cd, err := c.nodeLocked(id)
	if err != nil {
		c.mu.Unlock()
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case node.IsDeleted():
		err = ErrDeleted
	case !c.replyAllowed(node):
		if c.env.Maintenance {
			err = ErrMaintenance
		} else {
			cd.feedback.Deny()
			err = ErrEditorClosed
		}
	case !cd.replyOpen:
		err = ErrEditorClosed
	case cd.reply.Pending() || cd.del.Pending():
		err = ErrBusy
	case richtext.IsEmpty(cd.draft):
		err = ErrEmptyContent
	}
	if err != nil {
		c.mu.Unlock()
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	cd.reply = pending[models.Comment]()
	content := cd.draft
	c.mu.Unlock()

	return c.create(ctx, op, id, content, ReplyFailedTitle, "Replied failed")
}

// SubmitRoot отправляет корневой черновик как новый комментарий верхнего уровня.
func (c *Controller) SubmitRoot(ctx context.Context) (models.Comment, error) {
	const op = "thread/SubmitRoot"

	c.mu.Lock()
	if c.thread.Closed() {
		c.mu.Unlock()
		return models.Comment{}, fmt.Errorf("%s: %w", op, ErrClosed)
	}

	cd := c.cardLocked(rootKey)

	var err error
	switch {
	case cd.reply.Pending():
		err = ErrBusy
	case richtext.IsEmpty(cd.draft):
		err = ErrEmptyContent
	}
	if err != nil {
		c.mu.Unlock()
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	cd.reply = pending[models.Comment]()
	content := cd.draft
	c.mu.Unlock()

	return c.create(ctx, op, rootKey, content, CommentFailedTitle, "Comment failed")
}

func (c *Controller) create(ctx context.Context, op, parentID string, content richtext.Document, title, event string) (models.Comment, error) {
	created, rerr := c.env.Remote.CreateComment(ctx, content, parentID)
	if rerr == nil && created.ParentID != parentID {
		rerr = fmt.Errorf("created comment has parent %q, want %q", created.ParentID, parentID)
	}

	c.mu.Lock()
	if c.thread.Closed() {
		c.mu.Unlock()
		c.env.Diagnostics.Log("late result after thread closed", rerr)
		return models.Comment{}, fmt.Errorf("%s: %w", op, ErrClosed)
	}

	cd := c.cardLocked(parentID)

	if rerr == nil {
		if ierr := c.thread.Insert(created); ierr != nil {
			rerr = ierr
		}
	}

	if rerr != nil {
		remoteErr := &RemoteError{Op: op, Err: rerr}
		cd.reply = failed[models.Comment](remoteErr)
		c.mu.Unlock()

		c.env.Notifier.Notify(Event{Kind: EventError, Title: title})
		c.env.Diagnostics.Log(event, rerr)

		return models.Comment{}, remoteErr
	}

	cd.reply = succeeded(created)
	cd.draft = richtext.Document{}
	if parentID != rootKey {
		cd.replyOpen = false
	}
	c.mu.Unlock()

	return created, nil
}

// RequestDelete открывает подтверждение удаления.
// Доступно только модератору проекта ветки.
func (c *Controller) RequestDelete(id string) error {
	const op = "thread/RequestDelete"

	c.mu.Lock()
	defer c.mu.Unlock()

	node, cd, err := c.nodeLocked(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case node.IsDeleted():
		return fmt.Errorf("%s: %w", op, ErrDeleted)
	case !CanModerate(c.env.Viewer.CurrentViewer(), c.thread.ProjectID()):
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	case cd.reply.Pending() || cd.del.Pending():
		return fmt.Errorf("%s: %w", op, ErrBusy)
	}

	cd.confirmOpen = true

	return nil
}

// CancelDelete закрывает подтверждение без удаления.
func (c *Controller) CancelDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cd, ok := c.cards[id]; ok && !cd.del.Pending() {
		cd.confirmOpen = false
	}
}

// ConfirmDelete удаляет комментарий после подтверждения.
// Права проверяются повторно: пользователь мог смениться, пока окно было открыто.
// При успехе узел мягко удаляется, ответы остаются на месте.
// При отказе узел не меняется, пользователь получает уведомление.
func (c *Controller) ConfirmDelete(ctx context.Context, id string) error {
	const op = "thread/ConfirmDelete"

	c.mu.Lock()
	if c.thread.Closed() {
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	node, cd, err := c.nodeLocked(id)
	if err == nil {
		switch {
		case node.IsDeleted():
			err = ErrDeleted
		case !cd.confirmOpen:
			err = ErrNotConfirmed
		case !CanModerate(c.env.Viewer.CurrentViewer(), c.thread.ProjectID()):
			cd.confirmOpen = false
			err = ErrPermissionDenied
		case cd.reply.Pending() || cd.del.Pending():
			err = ErrBusy
		}
	}
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%s: %w", op, err)
	}

	cd.del = pending[struct{}]()
	c.mu.Unlock()

	rerr := c.env.Remote.DeleteComment(ctx, id)

	c.mu.Lock()
	if c.thread.Closed() {
		c.mu.Unlock()
		c.env.Diagnostics.Log("late result after thread closed", rerr)
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	cd.confirmOpen = false

	if rerr == nil {
		rerr = c.thread.SoftDelete(id, c.env.Now())
	}

	if rerr != nil {
		remoteErr := &RemoteError{Op: op, Err: rerr}
		cd.del = failed[struct{}](remoteErr)
		c.mu.Unlock()

		c.env.Notifier.Notify(Event{Kind: EventError, Title: DeleteFailedTitle})
		c.env.Diagnostics.Log("Delete failed", rerr)

		return remoteErr
	}

	cd.del = succeeded(struct{}{})
	cd.replyOpen = false
	c.mu.Unlock()

	return nil
}

// ToggleLike переключает лайк текущего пользователя.
// Итоговое множество берётся из ответа сервиса, а не вычисляется локально.
func (c *Controller) ToggleLike(ctx context.Context, id string) (models.LikeSet, error) {
	const op = "thread/ToggleLike"

	c.mu.Lock()
	if c.thread.Closed() {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, ErrClosed)
	}

	node, cd, err := c.nodeLocked(id)
	if err == nil {
		switch {
		case node.IsDeleted():
			err = ErrDeleted
		case c.env.Maintenance:
			err = ErrMaintenance
		case c.env.Viewer.CurrentViewer() == nil:
			err = ErrSignInRequired
		}
	}
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cd.like = pending[models.LikeSet]()
	c.mu.Unlock()

	likes, rerr := c.env.Remote.ToggleLike(ctx, id)

	c.mu.Lock()
	if c.thread.Closed() {
		c.mu.Unlock()
		c.env.Diagnostics.Log("late result after thread closed", rerr)
		return nil, fmt.Errorf("%s: %w", op, ErrClosed)
	}

	if rerr == nil {
		rerr = c.thread.SetLikes(id, likes)
	}

	if rerr != nil {
		remoteErr := &RemoteError{Op: op, Err: rerr}
		cd.like = failed[models.LikeSet](remoteErr)
		c.mu.Unlock()

		c.env.Notifier.Notify(Event{Kind: EventError, Title: LikeFailedTitle})
		c.env.Diagnostics.Log("Like failed", rerr)

		return nil, remoteErr
	}

	cd.like = succeeded(likes)
	c.mu.Unlock()

	return likes, nil
}

// OpenTimeline возвращает ссылку на историю комментария.
// Если переход отключён, запускает отказ и возвращает false.
func (c *Controller) OpenTimeline(id string) (string, bool, error) {
	const op = "thread/OpenTimeline"

	c.mu.Lock()
	defer c.mu.Unlock()

	_, cd, err := c.nodeLocked(id)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	if c.env.DisableTimeline {
		cd.feedback.Deny()
		return "", false, nil
	}

	return TimelinePath + id, true, nil
}

// Feedback возвращает состояние отказа карточки id.
func (c *Controller) Feedback(id string) FeedbackState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cd, ok := c.cards[id]; ok {
		return cd.feedback.State()
	}

	return FeedbackIdle
}

// ReplyState возвращает состояние последней отправки ответа на id.
func (c *Controller) ReplyState(id string) Mutation[models.Comment] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cd, ok := c.cards[id]; ok {
		return cd.reply
	}

	return Mutation[models.Comment]{}
}

// DeleteState возвращает состояние последнего удаления id.
func (c *Controller) DeleteState(id string) Mutation[struct{}] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cd, ok := c.cards[id]; ok {
		return cd.del
	}

	return Mutation[struct{}]{}
}

// Close закрывает ветку и сбрасывает таймеры отказа.
// Результаты вызовов, завершившихся позже, отбрасываются.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.thread.Close()
	for _, cd := range c.cards {
		cd.feedback.Reset()
	}
}

// IsBusy сообщает, что err — отказ из-за мутации в полёте.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}
