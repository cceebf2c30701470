// Package redis — кэш профилей пользователей виджета в Redis.
package redis

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/storage"
	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "thread:viewer:"
	defaultTTL    = 24 * time.Hour
)

// Viewers хранит профиль как Redis Hash (id, name, image, username, email),
// а проекты, где пользователь модератор, — отдельным Set.
// Оба ключа живут с одним TTL и пишутся одной транзакцией.
type Viewers struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

var _ storage.ViewerStore = (*Viewers)(nil)

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Пустой prefix — "thread:viewer:", ttl <= 0 — 24h.
func New(ctx context.Context, redisURL, prefix string, ttl time.Duration) (*Viewers, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis parse url: %w", err)
	}

	rdb := goredis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewWithClient(rdb, prefix, ttl), nil
}

// NewWithClient оборачивает готовый клиент.
func NewWithClient(rdb *goredis.Client, prefix string, ttl time.Duration) *Viewers {
	if prefix == "" {
		prefix = defaultPrefix
	}

	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Viewers{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (v *Viewers) key(id string) string         { return v.prefix + id }
func (v *Viewers) projectsKey(id string) string { return v.prefix + id + ":projects" }

// Viewer возвращает профиль; отсутствие ключа — storage.ErrNotFound.
func (v *Viewers) Viewer(ctx context.Context, id string) (*models.Viewer, error) {
	const op = "storage/redis/Viewer"

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	pipe := v.rdb.Pipeline()
	hash := pipe.HGetAll(ctx, v.key(id))
	projects := pipe.SMembers(ctx, v.projectsKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := hash.Val()
	if len(m) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	editable := projects.Val()
	slices.Sort(editable)

	return &models.Viewer{
		ID:                 m["id"],
		DisplayName:        m["name"],
		ImageURL:           m["image"],
		Username:           m["username"],
		Email:              m["email"],
		EditableProjectIDs: editable,
	}, nil
}

// SaveViewer перезаписывает профиль целиком и продлевает TTL.
func (v *Viewers) SaveViewer(ctx context.Context, viewer models.Viewer) error {
	const op = "storage/redis/SaveViewer"

	if strings.TrimSpace(viewer.ID) == "" {
		return fmt.Errorf("%s: empty viewer id", op)
	}

	kv := map[string]string{
		"id":       viewer.ID,
		"name":     viewer.DisplayName,
		"image":    viewer.ImageURL,
		"username": viewer.Username,
		"email":    viewer.Email,
	}

	key, pkey := v.key(viewer.ID), v.projectsKey(viewer.ID)

	pipe := v.rdb.TxPipeline()
	pipe.Del(ctx, key, pkey)
	pipe.HSet(ctx, key, kv)
	pipe.Expire(ctx, key, v.ttl)
	if len(viewer.EditableProjectIDs) > 0 {
		members := make([]any, 0, len(viewer.EditableProjectIDs))
		for _, p := range viewer.EditableProjectIDs {
			members = append(members, p)
		}
		pipe.SAdd(ctx, pkey, members...)
		pipe.Expire(ctx, pkey, v.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteViewer удаляет профиль и список проектов.
func (v *Viewers) DeleteViewer(ctx context.Context, id string) error {
	const op = "storage/redis/DeleteViewer"

	if err := v.rdb.Del(ctx, v.key(id), v.projectsKey(id)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Ping проверяет соединение; используется health-проверкой.
func (v *Viewers) Ping(ctx context.Context) error {
	return v.rdb.Ping(ctx).Err()
}

func (v *Viewers) Close() error { return v.rdb.Close() }
