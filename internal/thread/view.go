package thread

import (
	"time"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
)

// View — отрисовываемое состояние одной карточки и её ответов.
// У удалённого узла Author == nil, Content пуст, все действия выключены,
// но Replies присутствуют.
type View struct {
	ID        string
	Depth     int
	Deleted   bool
	Author    *models.Author
	Content   richtext.Document
	CreatedAt time.Time

	LikeCount int
	Liked     bool
	CanLike   bool
	LikeBusy  bool

	CanReply  bool
	ReplyHint string
	ReplyOpen bool
	ReplyBusy bool
	Draft     richtext.Document

	CanDelete  bool
	Confirming bool
	DeleteBusy bool

	TimelineURL      string
	TimelineDisabled bool

	Denied  bool
	Replies []View
}

// Compose строит дерево представлений по текущему снимку ветки.
// Пользователь и права модерации читаются один раз на весь вызов.
func (c *Controller) Compose() []View {
	trees := c.thread.Tree()

	c.mu.Lock()
	defer c.mu.Unlock()

	viewer := c.env.Viewer.CurrentViewer()
	canModerate := CanModerate(viewer, c.thread.ProjectID())

	var compose func(ts []models.Tree) []View
	compose = func(ts []models.Tree) []View {
		if len(ts) == 0 {
			return nil
		}

		out := make([]View, 0, len(ts))
		for _, t := range ts {
			v := c.viewLocked(t.Comment, viewer, canModerate)
			v.Replies = compose(t.Replies)
			out = append(out, v)
		}

		return out
	}

	return compose(trees)
}

func (c *Controller) viewLocked(node models.Comment, viewer *models.Viewer, canModerate bool) View {
	v := View{
		ID:        node.ID,
		Depth:     node.Depth,
		Deleted:   node.IsDeleted(),
		CreatedAt: node.CreatedAt,
		LikeCount: len(node.Likes),
	}

	cd, ok := c.cards[node.ID]
	if ok {
		v.Denied = cd.feedback.State() == FeedbackDenied
	}

	if v.Deleted {
		return v
	}

	author := node.Author
	v.Author = &author
	v.Content = node.Content

	if viewer != nil {
		v.Liked = node.Likes.Has(viewer.ID)
	}
	v.CanLike = !c.env.Maintenance

	v.CanReply = c.replyAllowed(node)
	switch {
	case c.env.Maintenance:
	case v.CanReply:
		v.ReplyHint = ReplyHint
	default:
		v.ReplyHint = ReplyDepthHint
	}

	v.CanDelete = canModerate

	v.TimelineURL = TimelinePath + node.ID
	v.TimelineDisabled = c.env.DisableTimeline

	if ok {
		v.LikeBusy = cd.like.Pending()
		v.ReplyOpen = cd.replyOpen && v.CanReply
		v.ReplyBusy = cd.reply.Pending()
		v.Draft = cd.draft
		v.Confirming = cd.confirmOpen && canModerate
		v.DeleteBusy = cd.del.Pending()
	}

	return v
}
