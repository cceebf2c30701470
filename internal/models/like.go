package models

import "slices"

// Like — отметка «нравится» одного пользователя.
type Like struct {
	UserID string
}

// LikeSet — множество лайков, не более одного на пользователя.
// Порядок — порядок добавления.
type LikeSet []Like

// Has сообщает, лайкнул ли пользователь комментарий.
func (s LikeSet) Has(userID string) bool {
	return slices.ContainsFunc(s, func(l Like) bool { return l.UserID == userID })
}

// With возвращает множество с лайком userID; повторный лайк ничего не меняет.
func (s LikeSet) With(userID string) LikeSet {
	if userID == "" || s.Has(userID) {
		return s.Clone()
	}

	return append(s.Clone(), Like{UserID: userID})
}

// Without возвращает множество без лайка userID.
func (s LikeSet) Without(userID string) LikeSet {
	return slices.DeleteFunc(s.Clone(), func(l Like) bool { return l.UserID == userID })
}

// Toggle — лайк, если его не было, и снятие лайка иначе.
func (s LikeSet) Toggle(userID string) LikeSet {
	if s.Has(userID) {
		return s.Without(userID)
	}

	return s.With(userID)
}

// Clone — независимая копия.
func (s LikeSet) Clone() LikeSet {
	if s == nil {
		return nil
	}

	return slices.Clone(s)
}

// Normalize убирает дубликаты и пустые UserID, сохраняя порядок первых вхождений.
func (s LikeSet) Normalize() LikeSet {
	out := make(LikeSet, 0, len(s))
	for _, l := range s {
		if l.UserID == "" || out.Has(l.UserID) {
			continue
		}
		out = append(out, l)
	}

	return out
}
