// Package thread реализует модель ветки комментариев: дерево с ограниченной
// глубиной, оптимистичные мутации (ответ, удаление, лайк), модерацию удаления
// и обратную связь при отказе.
//
// Дерево хранится плоско: узлы по id, дети по списку id. Указателей между
// узлами нет, поэтому мягкое удаление и слияние новых ответов не трогают
// соседние узлы.
package thread

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
)

// DefaultMaxDepth — глубина, на которой отключается ответ.
const DefaultMaxDepth = 6

type entry struct {
	comment  models.Comment
	childIDs []string
}

// Thread — одна ветка обсуждения страницы в рамках одного проекта.
// Безопасна для конкурентного использования.
type Thread struct {
	mu        sync.RWMutex
	projectID string
	maxDepth  int
	nodes     map[string]*entry
	rootIDs   []string
	closed    bool
}

// New создаёт пустую ветку; отрицательный maxDepth заменяется на DefaultMaxDepth.
// maxDepth == 0 допустим: в такой ветке только корневые комментарии.
func New(projectID string, maxDepth int) *Thread {
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}

	return &Thread{
		projectID: projectID,
		maxDepth:  maxDepth,
		nodes:     make(map[string]*entry),
	}
}

// ProjectID — проект, в рамках которого проверяются права модерации.
func (t *Thread) ProjectID() string { return t.projectID }

// MaxDepth — предельная глубина ветки.
func (t *Thread) MaxDepth() int { return t.maxDepth }

// Load заменяет содержимое ветки плоским списком с сервера.
// Родитель должен предшествовать ребёнку по depth; внутри уровня порядок —
// по CreatedAt. Список принимается целиком или не принимается вовсе.
func (t *Thread) Load(comments []models.Comment) error {
	const op = "thread/Load"

	sorted := slices.Clone(comments)
	slices.SortStableFunc(sorted, func(a, b models.Comment) int {
		return cmp.Or(
			cmp.Compare(a.Depth, b.Depth),
			a.CreatedAt.Compare(b.CreatedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})

	staged := &Thread{
		projectID: t.projectID,
		maxDepth:  t.maxDepth,
		nodes:     make(map[string]*entry, len(sorted)),
	}
	for _, c := range sorted {
		if err := staged.insertLocked(c); err != nil {
			return fmt.Errorf("%s: %s: %w", op, c.ID, err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	t.nodes = staged.nodes
	t.rootIDs = staged.rootIDs

	return nil
}

// Insert добавляет узел в конец списка детей родителя (или корней).
func (t *Thread) Insert(c models.Comment) error {
	const op = "thread/Insert"

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	if err := t.insertLocked(c); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (t *Thread) insertLocked(c models.Comment) error {
	switch {
	case c.ID == "":
		return ErrInvalidComment
	case c.ProjectID != "" && t.projectID != "" && c.ProjectID != t.projectID:
		return ErrForeignProject
	case c.Depth > t.maxDepth:
		return ErrTooDeep
	}

	if _, ok := t.nodes[c.ID]; ok {
		return ErrDuplicate
	}

	c = snapshot(c)
	c.Likes = c.Likes.Normalize()

	if c.ParentID == "" {
		if c.Depth != 0 {
			return ErrDepthMismatch
		}

		t.nodes[c.ID] = &entry{comment: c}
		t.rootIDs = append(t.rootIDs, c.ID)

		return nil
	}

	parent, ok := t.nodes[c.ParentID]
	if !ok {
		return ErrOrphan
	}

	if c.Depth != parent.comment.Depth+1 {
		return ErrDepthMismatch
	}

	t.nodes[c.ID] = &entry{comment: c}
	parent.childIDs = append(parent.childIDs, c.ID)
	parent.comment.RepliesCount = max(parent.comment.RepliesCount, len(parent.childIDs))

	return nil
}

// SoftDelete помечает узел удалённым и очищает содержимое.
// Потомки и их глубины не меняются; повторный вызов сохраняет первую отметку.
func (t *Thread) SoftDelete(id string, at time.Time) error {
	const op = "thread/SoftDelete"

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	e, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if e.comment.DeletedAt != nil {
		return nil
	}

	at = at.UTC()
	e.comment.DeletedAt = &at
	e.comment.UpdatedAt = at
	e.comment.Content = richtext.Document{}

	return nil
}

// SetLikes заменяет множество лайков узла.
func (t *Thread) SetLikes(id string, likes models.LikeSet) error {
	const op = "thread/SetLikes"

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}

	e, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	e.comment.Likes = likes.Normalize()

	return nil
}

// Node возвращает копию узла.
func (t *Thread) Node(id string) (models.Comment, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.nodes[id]
	if !ok {
		return models.Comment{}, false
	}

	return snapshot(e.comment), true
}

// Children возвращает копии прямых ответов на id в порядке вставки.
func (t *Thread) Children(id string) []models.Comment {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.nodes[id]
	if !ok {
		return nil
	}

	return t.collectLocked(e.childIDs)
}

// Roots возвращает копии корневых комментариев.
func (t *Thread) Roots() []models.Comment {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.collectLocked(t.rootIDs)
}

func (t *Thread) collectLocked(ids []string) []models.Comment {
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		out = append(out, snapshot(t.nodes[id].comment))
	}

	return out
}

// Walk обходит ветку в pre-order; fn == false прекращает обход.
func (t *Thread) Walk(fn func(c models.Comment) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var walk func(ids []string) bool
	walk = func(ids []string) bool {
		for _, id := range ids {
			e := t.nodes[id]
			if !fn(snapshot(e.comment)) {
				return false
			}
			if !walk(e.childIDs) {
				return false
			}
		}

		return true
	}
	walk(t.rootIDs)
}

// Tree возвращает вложенный снимок всей ветки.
func (t *Thread) Tree() []models.Tree {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var build func(ids []string) []models.Tree
	build = func(ids []string) []models.Tree {
		if len(ids) == 0 {
			return nil
		}

		out := make([]models.Tree, 0, len(ids))
		for _, id := range ids {
			e := t.nodes[id]
			out = append(out, models.Tree{
				Comment: snapshot(e.comment),
				Replies: build(e.childIDs),
			})
		}

		return out
	}

	return build(t.rootIDs)
}

// Len — число узлов, включая удалённые.
func (t *Thread) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.nodes)
}

// Close разбирает контекст ветки: последующие мутации возвращают ErrClosed,
// чтение продолжает работать по последнему снимку.
func (t *Thread) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// Closed сообщает, что ветка закрыта.
func (t *Thread) Closed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.closed
}

func snapshot(c models.Comment) models.Comment {
	c.Likes = c.Likes.Clone()
	if c.DeletedAt != nil {
		at := *c.DeletedAt
		c.DeletedAt = &at
	}

	return c
}
