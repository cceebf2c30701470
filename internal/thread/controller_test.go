package thread_test

// Тесты контроллера мутаций (internal/thread/controller.go, view.go).
//
//  Проверяем:
//  - ответ: успех (узел под родителем, редактор закрыт), отказ (редактор и черновик
//    на месте, уведомление error, запись в диагностику, дерево не меняется);
//  - максимальную глубину: ответ недоступен, нажатие даёт отказ, редактор не открывается;
//  - удаление: только после подтверждения, только модератору, отказ не меняет узел;
//  - лайк: итоговое множество берётся из ответа сервиса;
//  - сериализацию ответа и удаления одного узла (ErrBusy);
//  - поздние результаты после DismissReply и Close;
//  - контроллер без удалённого сервиса (нулевой Env).
//
//   mockgen -source=./internal/thread/remote.go -destination=./mocks/remote.go -package=mocks
//   go test ./internal/thread -v -race -count=1

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
	"github.com/pribylovaa/comment-thread/internal/thread"
	"github.com/pribylovaa/comment-thread/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("network is down")

type fixture struct {
	th       *thread.Thread
	c        *thread.Controller
	remote   *mocks.MockRemote
	notifier *mocks.MockNotifier
	diag     *mocks.MockDiagnostics
	timer    *manualTimer

	mu     sync.Mutex
	viewer *models.Viewer
}

func (f *fixture) setViewer(v *models.Viewer) {
	f.mu.Lock()
	f.viewer = v
	f.mu.Unlock()
}

func (f *fixture) currentViewer() *models.Viewer {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.viewer
}

// newFixture — ветка проекта p1 с моками удалённого сервиса.
func newFixture(t *testing.T, maxDepth int, flat []models.Comment, tune func(*thread.Env)) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		th:       thread.New("p1", maxDepth),
		remote:   mocks.NewMockRemote(ctrl),
		notifier: mocks.NewMockNotifier(ctrl),
		diag:     mocks.NewMockDiagnostics(ctrl),
		timer:    &manualTimer{},
		viewer:   &models.Viewer{ID: "u1", DisplayName: "User One", EditableProjectIDs: []string{"p1"}},
	}
	require.NoError(t, f.th.Load(flat))

	env := thread.Env{
		Remote:      f.remote,
		Viewer:      thread.ViewerFunc(f.currentViewer),
		Notifier:    f.notifier,
		Diagnostics: f.diag,
		Now:         func() time.Time { return baseTime.Add(time.Hour) },
		AfterFunc:   f.timer.after,
	}
	if tune != nil {
		tune(&env)
	}
	f.c = thread.NewController(f.th, env)

	return f
}

func findView(views []thread.View, id string) (thread.View, bool) {
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
		if found, ok := findView(v.Replies, id); ok {
			return found, true
		}
	}

	return thread.View{}, false
}

func mustView(t *testing.T, c *thread.Controller, id string) thread.View {
	t.Helper()

	v, ok := findView(c.Compose(), id)
	require.True(t, ok, "view %s not found", id)

	return v
}

// Ответ доступен тогда и только тогда, когда depth < MaxDepth.
func TestController_ReplyAffordanceByDepth(t *testing.T) {
	for maxDepth := 0; maxDepth <= 7; maxDepth++ {
		t.Run(fmt.Sprintf("max=%d", maxDepth), func(t *testing.T) {
			f := newFixture(t, maxDepth, chain(maxDepth), nil)

			for depth := 0; depth <= maxDepth; depth++ {
				v := mustView(t, f.c, fmt.Sprintf("c%d", depth))
				assert.Equal(t, depth != maxDepth, v.CanReply, "depth %d", depth)
				if depth == maxDepth {
					assert.Equal(t, thread.ReplyDepthHint, v.ReplyHint)
				} else {
					assert.Equal(t, thread.ReplyHint, v.ReplyHint)
				}
			}
		})
	}
}

func TestController_SubmitReply_Success(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)
	hello := richtext.FromPlainText("hello")

	opened, err := f.c.PressReply("A")
	require.NoError(t, err)
	require.True(t, opened)
	require.NoError(t, f.c.SetDraft("A", hello))

	created := node("B", "A", 1)
	created.Content = hello
	f.remote.EXPECT().CreateComment(gomock.Any(), hello, "A").Return(created, nil)

	got, err := f.c.SubmitReply(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, "B", got.ID)

	kids := f.th.Children("A")
	require.Len(t, kids, 1)
	assert.Equal(t, "B", kids[0].ID)
	assert.Equal(t, 1, kids[0].Depth)

	a := mustView(t, f.c, "A")
	assert.False(t, a.ReplyOpen)
	assert.True(t, richtext.IsEmpty(a.Draft))
	require.Len(t, a.Replies, 1)
	assert.Equal(t, "hello", richtext.PlainText(a.Replies[0].Content))

	assert.Equal(t, thread.StatusSucceeded, f.c.ReplyState("A").Status)
}

func TestController_SubmitReply_Failure(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)
	hello := richtext.FromPlainText("hello")

	_, err := f.c.PressReply("A")
	require.NoError(t, err)
	require.NoError(t, f.c.SetDraft("A", hello))

	f.remote.EXPECT().CreateComment(gomock.Any(), hello, "A").Return(models.Comment{}, errRemote)
	f.notifier.EXPECT().Notify(thread.Event{Kind: thread.EventError, Title: thread.ReplyFailedTitle})
	f.diag.EXPECT().Log("Replied failed", errRemote)

	_, err = f.c.SubmitReply(context.Background(), "A")
	require.Error(t, err)
	assert.True(t, thread.IsRemote(err))
	assert.ErrorIs(t, err, errRemote)

	assert.Empty(t, f.th.Children("A"))

	a := mustView(t, f.c, "A")
	assert.True(t, a.ReplyOpen)
	assert.Equal(t, "hello", richtext.PlainText(a.Draft))
	assert.Empty(t, a.Replies)

	st := f.c.ReplyState("A")
	assert.Equal(t, thread.StatusFailed, st.Status)
	assert.ErrorIs(t, st.Err, errRemote)
}

// Сервис вернул узел не под тем родителем: слияние отклоняется как отказ.
func TestController_SubmitReply_WrongParent(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0), node("Z", "", 0)}, nil)
	hello := richtext.FromPlainText("hello")

	_, _ = f.c.PressReply("A")
	require.NoError(t, f.c.SetDraft("A", hello))

	f.remote.EXPECT().CreateComment(gomock.Any(), hello, "A").Return(node("B", "Z", 1), nil)
	f.notifier.EXPECT().Notify(gomock.Any())
	f.diag.EXPECT().Log("Replied failed", gomock.Any())

	_, err := f.c.SubmitReply(context.Background(), "A")
	require.True(t, thread.IsRemote(err))
	assert.Empty(t, f.th.Children("Z"))
}

func TestController_SubmitReply_Guards(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)

	_, err := f.c.SubmitReply(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrEditorClosed)

	_, err = f.c.SubmitReply(context.Background(), "nope")
	require.ErrorIs(t, err, thread.ErrNotFound)

	_, _ = f.c.PressReply("A")
	_, err = f.c.SubmitReply(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrEmptyContent)

	require.NoError(t, f.c.SetDraft("A", richtext.FromPlainText("   ")))
	_, err = f.c.SubmitReply(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrEmptyContent)

	// Закрытый редактор сохраняет черновик.
	require.NoError(t, f.c.SetDraft("A", richtext.FromPlainText("draft")))
	f.c.DismissReply("A")
	require.ErrorIs(t, f.c.SetDraft("A", richtext.FromPlainText("x")), thread.ErrEditorClosed)
	assert.Equal(t, "draft", richtext.PlainText(f.c.Draft("A")))
}

func TestController_PressReply_AtMaxDepth(t *testing.T) {
	f := newFixture(t, 6, chain(6), nil)

	opened, err := f.c.PressReply("c6")
	require.NoError(t, err)
	require.False(t, opened)
	require.Equal(t, thread.FeedbackDenied, f.c.Feedback("c6"))

	v := mustView(t, f.c, "c6")
	assert.False(t, v.ReplyOpen)
	assert.False(t, v.CanReply)
	assert.True(t, v.Denied)

	// Повторное нажатие во время отказа ничего не добавляет.
	_, _ = f.c.PressReply("c6")
	assert.Equal(t, 1, f.timer.armed())

	_, err = f.c.SubmitReply(context.Background(), "c6")
	require.ErrorIs(t, err, thread.ErrEditorClosed)

	f.timer.fire()
	assert.Equal(t, thread.FeedbackIdle, f.c.Feedback("c6"))
	assert.False(t, mustView(t, f.c, "c6").ReplyOpen)

	// Соседняя карточка не затронута.
	assert.Equal(t, thread.FeedbackIdle, f.c.Feedback("c5"))
}

func TestController_PressReply_Toggles(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)

	opened, err := f.c.PressReply("A")
	require.NoError(t, err)
	assert.True(t, opened)

	opened, err = f.c.PressReply("A")
	require.NoError(t, err)
	assert.False(t, opened)

	_, err = f.c.PressReply("nope")
	require.ErrorIs(t, err, thread.ErrNotFound)
}

func TestController_Delete_RequiresConfirmation(t *testing.T) {
	f := newFixture(t, 6, chain(2), nil)

	// Без шага подтверждения удалённый вызов не выполняется.
	err := f.c.ConfirmDelete(context.Background(), "c1")
	require.ErrorIs(t, err, thread.ErrNotConfirmed)

	require.NoError(t, f.c.RequestDelete("c1"))
	v := mustView(t, f.c, "c1")
	assert.True(t, v.CanDelete)
	assert.True(t, v.Confirming)

	f.c.CancelDelete("c1")
	assert.False(t, mustView(t, f.c, "c1").Confirming)
	require.ErrorIs(t, f.c.ConfirmDelete(context.Background(), "c1"), thread.ErrNotConfirmed)

	require.NoError(t, f.c.RequestDelete("c1"))
	f.remote.EXPECT().DeleteComment(gomock.Any(), "c1").Return(nil)
	require.NoError(t, f.c.ConfirmDelete(context.Background(), "c1"))

	c1, _ := f.th.Node("c1")
	require.True(t, c1.IsDeleted())
	assert.Equal(t, baseTime.Add(time.Hour), *c1.DeletedAt)

	v = mustView(t, f.c, "c1")
	assert.True(t, v.Deleted)
	assert.Nil(t, v.Author)
	assert.False(t, v.CanDelete)
	assert.False(t, v.CanReply)
	assert.False(t, v.CanLike)
	assert.False(t, v.Confirming)
	require.Len(t, v.Replies, 1)
	assert.Equal(t, "c2", v.Replies[0].ID)
	assert.Equal(t, 2, v.Replies[0].Depth)
	assert.NotNil(t, v.Replies[0].Author)

	require.ErrorIs(t, f.c.RequestDelete("c1"), thread.ErrDeleted)
	_, err = f.c.PressReply("c1")
	require.ErrorIs(t, err, thread.ErrDeleted)
}

func TestController_Delete_Failure(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)

	require.NoError(t, f.c.RequestDelete("A"))
	f.remote.EXPECT().DeleteComment(gomock.Any(), "A").Return(errRemote)
	f.notifier.EXPECT().Notify(thread.Event{Kind: thread.EventError, Title: thread.DeleteFailedTitle})
	f.diag.EXPECT().Log("Delete failed", errRemote)

	err := f.c.ConfirmDelete(context.Background(), "A")
	require.True(t, thread.IsRemote(err))

	a, _ := f.th.Node("A")
	assert.False(t, a.IsDeleted())
	assert.Equal(t, "text of A", richtext.PlainText(a.Content))

	v := mustView(t, f.c, "A")
	assert.False(t, v.Confirming)
	assert.True(t, v.CanDelete)
	assert.Equal(t, thread.StatusFailed, f.c.DeleteState("A").Status)
}

func TestController_ModerationGate(t *testing.T) {
	flat := []models.Comment{node("A", "", 0)}

	t.Run("moderator of p1", func(t *testing.T) {
		f := newFixture(t, 6, flat, nil)
		assert.True(t, mustView(t, f.c, "A").CanDelete)
	})

	t.Run("moderator of p2 only", func(t *testing.T) {
		f := newFixture(t, 6, flat, nil)
		f.setViewer(&models.Viewer{ID: "u1", EditableProjectIDs: []string{"p2"}})

		assert.False(t, mustView(t, f.c, "A").CanDelete)
		require.ErrorIs(t, f.c.RequestDelete("A"), thread.ErrPermissionDenied)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t, 6, flat, nil)
		f.setViewer(nil)

		assert.False(t, mustView(t, f.c, "A").CanDelete)
		require.ErrorIs(t, f.c.RequestDelete("A"), thread.ErrPermissionDenied)
	})

	// Права перепроверяются при подтверждении.
	t.Run("revoked while confirming", func(t *testing.T) {
		f := newFixture(t, 6, flat, nil)
		require.NoError(t, f.c.RequestDelete("A"))

		f.setViewer(&models.Viewer{ID: "u1"})
		assert.False(t, mustView(t, f.c, "A").Confirming)
		require.ErrorIs(t, f.c.ConfirmDelete(context.Background(), "A"), thread.ErrPermissionDenied)
	})
}

func TestController_ToggleLike(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)

	liked := models.LikeSet{{UserID: "u1"}}
	f.remote.EXPECT().ToggleLike(gomock.Any(), "A").Return(liked, nil)

	got, err := f.c.ToggleLike(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, liked, got)

	v := mustView(t, f.c, "A")
	assert.True(t, v.Liked)
	assert.Equal(t, 1, v.LikeCount)

	// Сервис вернул то же множество (повторный лайк): состояние то же.
	f.remote.EXPECT().ToggleLike(gomock.Any(), "A").Return(liked, nil)
	_, err = f.c.ToggleLike(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, 1, mustView(t, f.c, "A").LikeCount)

	f.remote.EXPECT().ToggleLike(gomock.Any(), "A").Return(models.LikeSet{}, nil)
	_, err = f.c.ToggleLike(context.Background(), "A")
	require.NoError(t, err)

	v = mustView(t, f.c, "A")
	assert.False(t, v.Liked)
	assert.Equal(t, 0, v.LikeCount)
}

func TestController_ToggleLike_Failure(t *testing.T) {
	flat := []models.Comment{node("A", "", 0)}
	flat[0].Likes = models.LikeSet{{UserID: "u2"}}
	f := newFixture(t, 6, flat, nil)

	f.remote.EXPECT().ToggleLike(gomock.Any(), "A").Return(nil, errRemote)
	f.notifier.EXPECT().Notify(thread.Event{Kind: thread.EventError, Title: thread.LikeFailedTitle})
	f.diag.EXPECT().Log("Like failed", errRemote)

	_, err := f.c.ToggleLike(context.Background(), "A")
	require.True(t, thread.IsRemote(err))

	v := mustView(t, f.c, "A")
	assert.Equal(t, 1, v.LikeCount)
	assert.False(t, v.Liked)
}

func TestController_ToggleLike_Anonymous(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)
	f.setViewer(nil)

	_, err := f.c.ToggleLike(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrSignInRequired)
}

func TestController_Maintenance(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, func(env *thread.Env) {
		env.Maintenance = true
	})

	v := mustView(t, f.c, "A")
	assert.False(t, v.CanLike)
	assert.False(t, v.CanReply)
	assert.Empty(t, v.ReplyHint)
	assert.True(t, v.CanDelete)

	_, err := f.c.ToggleLike(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrMaintenance)

	_, err = f.c.PressReply("A")
	require.ErrorIs(t, err, thread.ErrMaintenance)
}

// На максимальной глубине в режиме обслуживания отказ не проигрывается.
func TestController_Maintenance_AtMaxDepth(t *testing.T) {
	f := newFixture(t, 0, []models.Comment{node("A", "", 0)}, func(env *thread.Env) {
		env.Maintenance = true
	})

	opened, err := f.c.PressReply("A")
	require.ErrorIs(t, err, thread.ErrMaintenance)
	assert.False(t, opened)
	assert.Equal(t, thread.FeedbackIdle, f.c.Feedback("A"))
}

func TestController_OpenTimeline(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)

	url, ok, err := f.c.OpenTimeline("A")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/widget/comment/timeline/A", url)
	assert.Equal(t, url, mustView(t, f.c, "A").TimelineURL)

	disabled := newFixture(t, 6, []models.Comment{node("A", "", 0)}, func(env *thread.Env) {
		env.DisableTimeline = true
	})
	_, ok, err = disabled.c.OpenTimeline("A")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, thread.FeedbackDenied, disabled.c.Feedback("A"))
	assert.True(t, mustView(t, disabled.c, "A").TimelineDisabled)
}

func TestController_SubmitRoot(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)
	first := richtext.FromPlainText("first!")

	_, err := f.c.SubmitRoot(context.Background())
	require.ErrorIs(t, err, thread.ErrEmptyContent)

	require.NoError(t, f.c.SetRootDraft(first))
	created := node("R", "", 0)
	f.remote.EXPECT().CreateComment(gomock.Any(), first, "").Return(created, nil)

	_, err = f.c.SubmitRoot(context.Background())
	require.NoError(t, err)

	roots := f.th.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "R", roots[1].ID)
	assert.True(t, richtext.IsEmpty(f.c.Draft("")))
}

// Пока ответ в полёте, удаление того же узла и повторная отправка отклоняются.
func TestController_ReplyAndDeleteSerialized(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0), node("Z", "", 0)}, nil)
	hello := richtext.FromPlainText("hello")

	_, _ = f.c.PressReply("A")
	require.NoError(t, f.c.SetDraft("A", hello))

	release := make(chan struct{})
	f.remote.EXPECT().CreateComment(gomock.Any(), hello, "A").
		DoAndReturn(func(context.Context, richtext.Document, string) (models.Comment, error) {
			<-release
			return node("B", "A", 1), nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := f.c.SubmitReply(context.Background(), "A")
		done <- err
	}()

	require.Eventually(t, func() bool {
		return f.c.ReplyState("A").Pending()
	}, time.Second, time.Millisecond)

	require.ErrorIs(t, f.c.RequestDelete("A"), thread.ErrBusy)
	_, err := f.c.SubmitReply(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrBusy)
	require.ErrorIs(t, f.c.SetDraft("A", hello), thread.ErrBusy)
	assert.True(t, mustView(t, f.c, "A").ReplyBusy)

	// Другой узел не заблокирован.
	require.NoError(t, f.c.RequestDelete("Z"))

	close(release)
	require.NoError(t, <-done)

	require.NoError(t, f.c.RequestDelete("A"))
}

// Результат, пришедший после Close, отбрасывается без уведомлений.
func TestController_LateResultAfterClose(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)
	hello := richtext.FromPlainText("hello")

	_, _ = f.c.PressReply("A")
	require.NoError(t, f.c.SetDraft("A", hello))

	release := make(chan struct{})
	f.remote.EXPECT().CreateComment(gomock.Any(), hello, "A").
		DoAndReturn(func(context.Context, richtext.Document, string) (models.Comment, error) {
			<-release
			return node("B", "A", 1), nil
		})
	f.diag.EXPECT().Log("late result after thread closed", nil)

	done := make(chan error, 1)
	go func() {
		_, err := f.c.SubmitReply(context.Background(), "A")
		done <- err
	}()

	require.Eventually(t, func() bool {
		return f.c.ReplyState("A").Pending()
	}, time.Second, time.Millisecond)

	f.c.Close()
	close(release)

	require.ErrorIs(t, <-done, thread.ErrClosed)
	assert.Equal(t, 1, f.th.Len())

	_, err := f.c.ToggleLike(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrClosed)
}

// Без удалённого сервиса мутации завершаются отказом, а не паникой,
// и карточка не остаётся в Pending.
func TestController_ZeroEnv(t *testing.T) {
	th := thread.New("p1", 6)
	require.NoError(t, th.Load([]models.Comment{node("A", "", 0)}))

	c := thread.NewController(th, thread.Env{})
	t.Cleanup(c.Close)

	_, err := c.PressReply("A")
	require.NoError(t, err)
	require.NoError(t, c.SetDraft("A", richtext.FromPlainText("hello")))

	for i := 0; i < 2; i++ {
		_, err = c.SubmitReply(context.Background(), "A")
		require.True(t, thread.IsRemote(err))
		require.ErrorIs(t, err, thread.ErrNoRemote)
		assert.Equal(t, thread.StatusFailed, c.ReplyState("A").Status)
	}
	assert.Empty(t, th.Children("A"))

	_, err = c.ToggleLike(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrSignInRequired)
}

func TestController_NoRemote_DeleteAndLike(t *testing.T) {
	th := thread.New("p1", 6)
	require.NoError(t, th.Load([]models.Comment{node("A", "", 0)}))

	mod := &models.Viewer{ID: "u1", EditableProjectIDs: []string{"p1"}}
	c := thread.NewController(th, thread.Env{
		Viewer: thread.ViewerFunc(func() *models.Viewer { return mod }),
	})
	t.Cleanup(c.Close)

	require.NoError(t, c.RequestDelete("A"))
	err := c.ConfirmDelete(context.Background(), "A")
	require.True(t, thread.IsRemote(err))
	require.ErrorIs(t, err, thread.ErrNoRemote)

	a, ok := th.Node("A")
	require.True(t, ok)
	assert.False(t, a.IsDeleted())
	assert.Equal(t, thread.StatusFailed, c.DeleteState("A").Status)

	_, err = c.ToggleLike(context.Background(), "A")
	require.ErrorIs(t, err, thread.ErrNoRemote)
}

// submitBlocked запускает SubmitReply с CreateComment, ждущим release,
// и возвращает канал результата после перехода ответа в Pending.
func submitBlocked(t *testing.T, f *fixture, content richtext.Document, release <-chan struct{}, created models.Comment, rerr error) <-chan error {
	t.Helper()

	f.remote.EXPECT().CreateComment(gomock.Any(), content, "A").
		DoAndReturn(func(context.Context, richtext.Document, string) (models.Comment, error) {
			<-release
			return created, rerr
		})

	done := make(chan error, 1)
	go func() {
		_, err := f.c.SubmitReply(context.Background(), "A")
		done <- err
	}()

	require.Eventually(t, func() bool {
		return f.c.ReplyState("A").Pending()
	}, time.Second, time.Millisecond)

	return done
}

// Успех, пришедший после закрытия редактора, всё равно вливается в ветку.
func TestController_LateSuccessAfterDismiss(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)
	hello := richtext.FromPlainText("hello")

	_, _ = f.c.PressReply("A")
	require.NoError(t, f.c.SetDraft("A", hello))

	created := node("B", "A", 1)
	created.Content = hello

	release := make(chan struct{})
	done := submitBlocked(t, f, hello, release, created, nil)

	f.c.DismissReply("A")
	assert.False(t, mustView(t, f.c, "A").ReplyOpen)

	close(release)
	require.NoError(t, <-done)

	kids := f.th.Children("A")
	require.Len(t, kids, 1)
	assert.Equal(t, "B", kids[0].ID)

	a := mustView(t, f.c, "A")
	assert.False(t, a.ReplyOpen)
	assert.True(t, richtext.IsEmpty(a.Draft))
	assert.Equal(t, thread.StatusSucceeded, f.c.ReplyState("A").Status)
}

// Отказ после закрытия редактора не открывает его снова; черновик остаётся.
func TestController_LateFailureAfterDismiss(t *testing.T) {
	f := newFixture(t, 6, []models.Comment{node("A", "", 0)}, nil)
	hello := richtext.FromPlainText("hello")

	_, _ = f.c.PressReply("A")
	require.NoError(t, f.c.SetDraft("A", hello))

	f.notifier.EXPECT().Notify(thread.Event{Kind: thread.EventError, Title: thread.ReplyFailedTitle})
	f.diag.EXPECT().Log("Replied failed", errRemote)

	release := make(chan struct{})
	done := submitBlocked(t, f, hello, release, models.Comment{}, errRemote)

	f.c.DismissReply("A")

	close(release)
	err := <-done
	require.True(t, thread.IsRemote(err))

	assert.Empty(t, f.th.Children("A"))

	a := mustView(t, f.c, "A")
	assert.False(t, a.ReplyOpen)
	assert.Equal(t, "hello", richtext.PlainText(f.c.Draft("A")))
	assert.Equal(t, thread.StatusFailed, f.c.ReplyState("A").Status)
}
