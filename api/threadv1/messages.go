// Package threadv1 — контракт gRPC-сервиса thread.v1.ThreadService.
//
// Сообщения передаются в JSON (см. Codec), дескриптор сервиса описан вручную
// в форме, привычной для protoc-gen-go-grpc.
package threadv1

import (
	"time"

	"github.com/pribylovaa/comment-thread/internal/richtext"
)

type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ImageURL    string `json:"image_url,omitempty"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
}

type Like struct {
	UserID string `json:"user_id"`
}

// Comment — комментарий на проводе. У удалённого content пуст, deleted=true.
type Comment struct {
	ID           string            `json:"id"`
	ProjectID    string            `json:"project_id"`
	PageID       string            `json:"page_id"`
	ParentID     string            `json:"parent_id,omitempty"`
	Author       Author            `json:"author"`
	Content      richtext.Document `json:"content"`
	Depth        int32             `json:"depth"`
	Likes        []Like            `json:"likes"`
	RepliesCount int32             `json:"replies_count"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    *time.Time        `json:"deleted_at,omitempty"`
	Deleted      bool              `json:"deleted"`
}

type Viewer struct {
	ID                 string   `json:"id"`
	DisplayName        string   `json:"display_name"`
	ImageURL           string   `json:"image_url,omitempty"`
	Username           string   `json:"username,omitempty"`
	Email              string   `json:"email,omitempty"`
	EditableProjectIDs []string `json:"editable_project_ids"`
}

type CreateCommentRequest struct {
	ProjectID string            `json:"project_id,omitempty"`
	PageID    string            `json:"page_id,omitempty"`
	ParentID  string            `json:"parent_id,omitempty"`
	Content   richtext.Document `json:"content"`
}

type CreateCommentResponse struct {
	Comment *Comment `json:"comment"`
}

type DeleteCommentRequest struct {
	ID string `json:"id"`
}

type DeleteCommentResponse struct{}

type ToggleLikeRequest struct {
	ID string `json:"id"`
}

type ToggleLikeResponse struct {
	Likes []Like `json:"likes"`
}

type CommentByIDRequest struct {
	ID string `json:"id"`
}

type CommentByIDResponse struct {
	Comment *Comment `json:"comment"`
}

type ListByPageRequest struct {
	PageID    string `json:"page_id"`
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type ListByPageResponse struct {
	Comments      []*Comment `json:"comments"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

type ListRepliesRequest struct {
	ParentID  string `json:"parent_id"`
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

type ListRepliesResponse struct {
	Comments      []*Comment `json:"comments"`
	NextPageToken string     `json:"next_page_token,omitempty"`
}

// GetThreadResponse — вся ветка страницы: родитель всегда раньше ребёнка.
type GetThreadRequest struct {
	PageID string `json:"page_id"`
}

type GetThreadResponse struct {
	PageID   string     `json:"page_id"`
	Comments []*Comment `json:"comments"`
	MaxDepth int32      `json:"max_depth"`
}

type CurrentViewerRequest struct{}

type CurrentViewerResponse struct {
	Viewer *Viewer `json:"viewer"`
}

// SaveViewerRequest — синхронизация профиля от провайдера сессий.
type SaveViewerRequest struct {
	Viewer *Viewer `json:"viewer"`
}

type SaveViewerResponse struct {
	Viewer *Viewer `json:"viewer"`
}

type DeleteViewerRequest struct {
	ID string `json:"id"`
}

type DeleteViewerResponse struct{}
