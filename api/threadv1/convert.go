package threadv1

import (
	"github.com/pribylovaa/comment-thread/internal/models"
)

// FromComment — доменная модель -> сообщение.
func FromComment(c models.Comment) *Comment {
	return &Comment{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		PageID:    c.PageID,
		ParentID:  c.ParentID,
		Author: Author{
			ID:          c.Author.ID,
			DisplayName: c.Author.DisplayName,
			ImageURL:    c.Author.ImageURL,
			Username:    c.Author.Username,
			Email:       c.Author.Email,
		},
		Content:      c.Content,
		Depth:        int32(c.Depth),
		Likes:        FromLikes(c.Likes),
		RepliesCount: int32(c.RepliesCount),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		DeletedAt:    c.DeletedAt,
		Deleted:      c.IsDeleted(),
	}
}

// FromComments — срез моделей -> срез сообщений.
func FromComments(items []models.Comment) []*Comment {
	out := make([]*Comment, 0, len(items))
	for i := range items {
		out = append(out, FromComment(items[i]))
	}

	return out
}

// Model — сообщение -> доменная модель. nil даёт нулевой Comment.
func (c *Comment) Model() models.Comment {
	if c == nil {
		return models.Comment{}
	}

	out := models.Comment{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		PageID:    c.PageID,
		ParentID:  c.ParentID,
		Author: models.Author{
			ID:          c.Author.ID,
			DisplayName: c.Author.DisplayName,
			ImageURL:    c.Author.ImageURL,
			Username:    c.Author.Username,
			Email:       c.Author.Email,
		},
		Content:      c.Content,
		Depth:        int(c.Depth),
		Likes:        LikesModel(c.Likes),
		RepliesCount: int(c.RepliesCount),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		DeletedAt:    c.DeletedAt,
	}

	// Старые клиенты могут прислать только флаг.
	if c.Deleted && out.DeletedAt == nil {
		at := c.UpdatedAt
		out.DeletedAt = &at
	}

	return out
}

// CommentsModel — срез сообщений -> срез моделей.
func CommentsModel(items []*Comment) []models.Comment {
	out := make([]models.Comment, 0, len(items))
	for _, c := range items {
		if c != nil {
			out = append(out, c.Model())
		}
	}

	return out
}

func FromLikes(likes models.LikeSet) []Like {
	out := make([]Like, 0, len(likes))
	for _, l := range likes.Normalize() {
		out = append(out, Like{UserID: l.UserID})
	}

	return out
}

func LikesModel(likes []Like) models.LikeSet {
	out := make(models.LikeSet, 0, len(likes))
	for _, l := range likes {
		out = append(out, models.Like{UserID: l.UserID})
	}

	return out.Normalize()
}

func FromViewer(v models.Viewer) *Viewer {
	projects := v.EditableProjectIDs
	if projects == nil {
		projects = []string{}
	}

	return &Viewer{
		ID:                 v.ID,
		DisplayName:        v.DisplayName,
		ImageURL:           v.ImageURL,
		Username:           v.Username,
		Email:              v.Email,
		EditableProjectIDs: projects,
	}
}

// Model — сообщение -> профиль. nil означает анонима.
func (v *Viewer) Model() *models.Viewer {
	if v == nil {
		return nil
	}

	return &models.Viewer{
		ID:                 v.ID,
		DisplayName:        v.DisplayName,
		ImageURL:           v.ImageURL,
		Username:           v.Username,
		Email:              v.Email,
		EditableProjectIDs: append([]string(nil), v.EditableProjectIDs...),
	}
}
