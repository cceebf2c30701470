package thread

import (
	"slices"

	"github.com/pribylovaa/comment-thread/internal/models"
)

// CanModerate — может ли viewer удалять комментарии в проекте projectID.
// Анонимный (nil) пользователь и пустой projectID — всегда false.
func CanModerate(viewer *models.Viewer, projectID string) bool {
	if viewer == nil || projectID == "" {
		return false
	}

	return slices.Contains(viewer.EditableProjectIDs, projectID)
}
