package models

// Viewer — текущий пользователь виджета.
// EditableProjectIDs — проекты, в которых он модератор.
// nil *Viewer означает анонимного пользователя.
type Viewer struct {
	ID                 string
	DisplayName        string
	ImageURL           string
	Username           string
	Email              string
	EditableProjectIDs []string
}

// Author возвращает снимок профиля для новых комментариев.
func (v Viewer) Author() Author {
	return Author{
		ID:          v.ID,
		DisplayName: v.DisplayName,
		ImageURL:    v.ImageURL,
		Username:    v.Username,
		Email:       v.Email,
	}
}
