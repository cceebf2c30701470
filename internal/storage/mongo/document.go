package mongo

import (
	"time"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type authorDoc struct {
	ID          string `bson:"id"`
	DisplayName string `bson:"display_name"`
	ImageURL    string `bson:"image_url,omitempty"`
	Username    string `bson:"username,omitempty"`
	Email       string `bson:"email,omitempty"`
}

type likeDoc struct {
	UserID string `bson:"user_id"`
}

// commentDoc — представление комментария в коллекции.
// likes всегда массив (не null): на нём работают $push/$pull.
type commentDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID    string             `bson:"project_id"`
	PageID       string             `bson:"page_id"`
	ParentID     string             `bson:"parent_id"`
	Author       authorDoc          `bson:"author"`
	Content      richtext.Document  `bson:"content"`
	Depth        int                `bson:"depth"`
	Likes        []likeDoc          `bson:"likes"`
	RepliesCount int                `bson:"replies_count"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
	DeletedAt    *time.Time         `bson:"deleted_at,omitempty"`
}

// toMS — MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func toDoc(c models.Comment) commentDoc {
	likes := make([]likeDoc, 0, len(c.Likes))
	for _, l := range c.Likes.Normalize() {
		likes = append(likes, likeDoc{UserID: l.UserID})
	}

	return commentDoc{
		ProjectID: c.ProjectID,
		PageID:    c.PageID,
		ParentID:  c.ParentID,
		Author: authorDoc{
			ID:          c.Author.ID,
			DisplayName: c.Author.DisplayName,
			ImageURL:    c.Author.ImageURL,
			Username:    c.Author.Username,
			Email:       c.Author.Email,
		},
		Content:      c.Content,
		Depth:        c.Depth,
		Likes:        likes,
		RepliesCount: c.RepliesCount,
		CreatedAt:    toMS(c.CreatedAt),
		UpdatedAt:    toMS(c.UpdatedAt),
		DeletedAt:    c.DeletedAt,
	}
}

func (d commentDoc) model() models.Comment {
	c := models.Comment{
		ID:        d.ID.Hex(),
		ProjectID: d.ProjectID,
		PageID:    d.PageID,
		ParentID:  d.ParentID,
		Author: models.Author{
			ID:          d.Author.ID,
			DisplayName: d.Author.DisplayName,
			ImageURL:    d.Author.ImageURL,
			Username:    d.Author.Username,
			Email:       d.Author.Email,
		},
		Content:      d.Content,
		Depth:        d.Depth,
		Likes:        likesModel(d.Likes),
		RepliesCount: d.RepliesCount,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}

	if d.DeletedAt != nil {
		at := d.DeletedAt.UTC()
		c.DeletedAt = &at
	}

	return c
}

func likesModel(docs []likeDoc) models.LikeSet {
	out := make(models.LikeSet, 0, len(docs))
	for _, l := range docs {
		out = append(out, models.Like{UserID: l.UserID})
	}

	return out
}
