// Package models содержит доменные сущности ветки комментариев.
package models

import (
	"time"

	"github.com/pribylovaa/comment-thread/internal/richtext"
)

// Author — снимок автора на момент создания комментария.
// ImageURL/Username/Email — опциональны.
type Author struct {
	ID          string
	DisplayName string
	ImageURL    string
	Username    string
	Email       string
}

// Comment — неизменяемый снимок одного комментария.
// Важно:
//   - Depth — глубина в дереве (корень = 0), назначается один раз при создании;
//   - ParentID пуст у корневых комментариев;
//   - ProjectID — область модерации, общая для всей ветки;
//   - PageID — страница, к которой привязано обсуждение;
//   - DeletedAt != nil — мягкое удаление: узел остаётся в дереве, ответы к нему
//     не отрываются, но автор и содержимое не показываются.
type Comment struct {
	ID           string
	ProjectID    string
	PageID       string
	ParentID     string
	Author       Author
	Content      richtext.Document
	Depth        int
	Likes        LikeSet
	RepliesCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// IsDeleted — признак мягкого удаления.
func (c Comment) IsDeleted() bool {
	return c.DeletedAt != nil
}

// IsRoot — комментарий верхнего уровня.
func (c Comment) IsRoot() bool {
	return c.ParentID == ""
}

// Tree — вложенное представление ветки.
type Tree struct {
	Comment Comment
	Replies []Tree
}

// Flatten раскладывает вложенные деревья в плоский список (pre-order).
func Flatten(trees []Tree) []Comment {
	var out []Comment

	var walk func(ts []Tree)
	walk = func(ts []Tree) {
		for _, t := range ts {
			out = append(out, t.Comment)
			walk(t.Replies)
		}
	}
	walk(trees)

	return out
}

// ListParams — базовые параметры постраничной выдачи.
type ListParams struct {
	PageSize  int32
	PageToken string
}

// Page — результат постраничной выдачи.
type Page struct {
	Items         []Comment
	NextPageToken string
}
