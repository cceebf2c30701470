package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/comment-thread/internal/config"
	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
	"github.com/pribylovaa/comment-thread/internal/storage"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Адрес контейнера прокидывается в ENV DATABASE_URL, а каждый тест
// создаёт свою БД с уникальным именем (см. newTestConfig).
// Без GO_TEST_INTEGRATION выполняются только unit-тесты пакета.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestConfig создаёт конфиг с отдельной тестовой БД.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration test: set GO_TEST_INTEGRATION=1")
	}

	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		baseURL = "mongodb://localhost:27017"
	}

	dbName := "threads_test_" + uuid.New().String()
	if baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL + dbName
	} else {
		baseURL = baseURL + "/" + dbName
	}

	return &config.Config{
		DB: config.DBConfig{
			URL: baseURL,
		},
		Limits: config.LimitsConfig{
			Default:  2,
			Max:      100,
			MaxDepth: 3,
		},
	}
}

// mustNewMongo создаёт подключение к тестовой БД и регистрирует очистку по завершении теста.
func mustNewMongo(t *testing.T, cfg *config.Config) *Mongo {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("cannot connect to MongoDB in container: %v (DATABASE_URL=%s)", err, cfg.DB.URL)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func rootInput(pageID, text string) models.Comment {
	return models.Comment{
		ProjectID: "p1",
		PageID:    pageID,
		Author:    models.Author{ID: "u-" + text, DisplayName: text},
		Content:   richtext.FromPlainText(text),
	}
}

func replyInput(parentID, text string) models.Comment {
	return models.Comment{
		ParentID: parentID,
		Author:   models.Author{ID: "u-" + text, DisplayName: text},
		Content:  richtext.FromPlainText(text),
	}
}

// TestEncodeDecodeCursor — encode/decode должны быть взаимно обратимыми.
func TestEncodeDecodeCursor(t *testing.T) {
	now := time.Now().UTC()
	oid := primitive.NewObjectID()

	token := encodeCursor(now, oid)
	gotT, gotID, err := decodeCursor(token)
	if err != nil {
		t.Fatalf("decodeCursor error: %v", err)
	}
	if !gotT.Equal(now) {
		t.Fatalf("time mismatch: want %v, got %v", now, gotT)
	}
	if gotID != oid {
		t.Fatalf("oid mismatch: want %v, got %v", oid, gotID)
	}
}

// TestDecodeCursor_Invalid — мусор в токене должен давать ошибку.
func TestDecodeCursor_Invalid(t *testing.T) {
	for _, token := range []string{"%%%", "bm9waXBl", "MTIzfG5vdGFuaWQ"} {
		if _, _, err := decodeCursor(token); err == nil {
			t.Errorf("decodeCursor(%q): want error", token)
		}
	}
}

// TestLimitOrDefault — граничные случаи и дефолт для размера страницы.
func TestLimitOrDefault(t *testing.T) {
	cfg := &config.Config{
		Limits: config.LimitsConfig{Default: 10, Max: 50},
	}
	tests := []struct {
		name string
		in   int32
		want int64
	}{
		{"zero->default", 0, 10},
		{"negative->default", -5, 10},
		{"less-than-max", 25, 25},
		{"more-than-max->cap", 200, 50},
	}
	for _, tt := range tests {
		if got := limitOrDefault(cfg, tt.in); got != tt.want {
			t.Errorf("%s: want %d, got %d", tt.name, tt.want, got)
		}
	}
}

// TestDocMapping — преобразование модели в документ и обратно.
func TestDocMapping(t *testing.T) {
	deleted := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	in := models.Comment{
		ProjectID: "p1",
		PageID:    "page",
		ParentID:  "parent",
		Author:    models.Author{ID: "u1", DisplayName: "Alice", Email: "a@example.com"},
		Content:   richtext.FromPlainText("hi"),
		Depth:     2,
		Likes:     models.LikeSet{{UserID: "u2"}, {UserID: "u2"}},
		CreatedAt: deleted.Add(-time.Hour),
		DeletedAt: &deleted,
	}

	doc := toDoc(in)
	if doc.Likes == nil || len(doc.Likes) != 1 {
		t.Fatalf("likes must be a deduplicated array, got %#v", doc.Likes)
	}

	doc.ID = primitive.NewObjectID()
	out := doc.model()

	if out.ID != doc.ID.Hex() || out.Depth != 2 || out.Author.Email != "a@example.com" {
		t.Fatalf("unexpected model: %+v", out)
	}
	if !out.IsDeleted() || !out.DeletedAt.Equal(deleted) {
		t.Fatalf("deleted_at lost: %v", out.DeletedAt)
	}
	if richtext.PlainText(out.Content) != "hi" {
		t.Fatalf("content lost: %q", richtext.PlainText(out.Content))
	}

	// Пустые лайки — пустой массив, а не null.
	if toDoc(models.Comment{}).Likes == nil {
		t.Fatalf("nil likes must be encoded as empty array")
	}
}

// TestCreateRootComment_SetsDefaults — корень получает Depth=0, ID и пустые лайки.
func TestCreateRootComment_SetsDefaults(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	in := rootInput("page-1", "hello world")
	in.Depth = 5
	out, err := m.CreateComment(ctx, in)
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	if out.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if out.Depth != 0 {
		t.Fatalf("root Depth = %d, want 0", out.Depth)
	}
	if out.IsDeleted() {
		t.Fatalf("root must not be deleted")
	}

	got, err := m.CommentByID(ctx, out.ID)
	if err != nil {
		t.Fatalf("CommentByID error: %v", err)
	}
	if richtext.PlainText(got.Content) != "hello world" {
		t.Fatalf("content = %q", richtext.PlainText(got.Content))
	}
}

// TestCreateReply_InheritsPageAndDepth — ответ наследует проект и страницу, поднимает Depth и replies_count.
func TestCreateReply_InheritsPageAndDepth(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	root, err := m.CreateComment(ctx, rootInput("page-1", "root"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	in := replyInput(root.ID, "reply")
	in.PageID = "other-page"
	in.ProjectID = "other-project"
	reply, err := m.CreateComment(ctx, in)
	if err != nil {
		t.Fatalf("CreateComment(reply) error: %v", err)
	}

	if reply.Depth != 1 || reply.PageID != "page-1" || reply.ProjectID != "p1" {
		t.Fatalf("reply not inherited from parent: %+v", reply)
	}

	parent, err := m.CommentByID(ctx, root.ID)
	if err != nil {
		t.Fatalf("CommentByID(root) error: %v", err)
	}
	if parent.RepliesCount != 1 {
		t.Fatalf("parent.RepliesCount = %d, want 1", parent.RepliesCount)
	}
}

// TestCreateReply_Errors — отсутствующий/удалённый родитель и превышение глубины.
func TestCreateReply_Errors(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Limits.MaxDepth = 1
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := m.CreateComment(ctx, replyInput("65e0a0c9fd2f000000000000", "orphan"))
	if !errors.Is(err, storage.ErrParentNotFound) {
		t.Fatalf("want ErrParentNotFound, got %v", err)
	}

	_, err = m.CreateComment(ctx, replyInput("not-an-oid", "orphan"))
	if !errors.Is(err, storage.ErrParentNotFound) {
		t.Fatalf("want ErrParentNotFound for bad id, got %v", err)
	}

	root, err := m.CreateComment(ctx, rootInput("page-1", "root"))
	if err != nil {
		t.Fatalf("CreateComment(root) error: %v", err)
	}

	first, err := m.CreateComment(ctx, replyInput(root.ID, "first"))
	if err != nil {
		t.Fatalf("CreateComment(first) error: %v", err)
	}

	_, err = m.CreateComment(ctx, replyInput(first.ID, "second"))
	if !errors.Is(err, storage.ErrMaxDepthExceeded) {
		t.Fatalf("want ErrMaxDepthExceeded, got %v", err)
	}

	if err := m.DeleteComment(ctx, root.ID); err != nil {
		t.Fatalf("DeleteComment error: %v", err)
	}

	_, err = m.CreateComment(ctx, replyInput(root.ID, "late"))
	if !errors.Is(err, storage.ErrParentDeleted) {
		t.Fatalf("want ErrParentDeleted, got %v", err)
	}
}

// TestDeleteComment_SoftAndIdempotent — удаление очищает содержимое, но не трогает ответы.
func TestDeleteComment_SoftAndIdempotent(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	root, _ := m.CreateComment(ctx, rootInput("page-1", "root"))
	reply, err := m.CreateComment(ctx, replyInput(root.ID, "reply"))
	if err != nil {
		t.Fatalf("CreateComment(reply) error: %v", err)
	}

	if err := m.DeleteComment(ctx, root.ID); err != nil {
		t.Fatalf("DeleteComment error: %v", err)
	}

	got, _ := m.CommentByID(ctx, root.ID)
	if !got.IsDeleted() || !richtext.IsEmpty(got.Content) {
		t.Fatalf("root must be soft deleted with empty content: %+v", got)
	}
	first := *got.DeletedAt

	if err := m.DeleteComment(ctx, root.ID); err != nil {
		t.Fatalf("second DeleteComment error: %v", err)
	}
	got, _ = m.CommentByID(ctx, root.ID)
	if !got.DeletedAt.Equal(first) {
		t.Fatalf("deleted_at changed on second delete")
	}

	child, err := m.CommentByID(ctx, reply.ID)
	if err != nil || child.IsDeleted() || child.Depth != 1 {
		t.Fatalf("reply must survive parent deletion: %+v, %v", child, err)
	}

	if err := m.DeleteComment(ctx, "65e0a0c9fd2f000000000000"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// TestToggleLike — повторный лайк снимает отметку, лайки разных пользователей независимы.
func TestToggleLike(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	root, _ := m.CreateComment(ctx, rootInput("page-1", "root"))

	likes, err := m.ToggleLike(ctx, root.ID, "u1")
	if err != nil || !likes.Has("u1") || len(likes) != 1 {
		t.Fatalf("first like: %v, %v", likes, err)
	}

	likes, err = m.ToggleLike(ctx, root.ID, "u2")
	if err != nil || len(likes) != 2 {
		t.Fatalf("second user like: %v, %v", likes, err)
	}

	likes, err = m.ToggleLike(ctx, root.ID, "u1")
	if err != nil || likes.Has("u1") || !likes.Has("u2") {
		t.Fatalf("unlike: %v, %v", likes, err)
	}

	if _, err := m.ToggleLike(ctx, "65e0a0c9fd2f000000000000", "u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	_ = m.DeleteComment(ctx, root.ID)
	if _, err := m.ToggleLike(ctx, root.ID, "u1"); !errors.Is(err, storage.ErrCommentDeleted) {
		t.Fatalf("want ErrCommentDeleted, got %v", err)
	}
}

// TestListByPage_Pagination — корни страницы, новые сначала, курсор до последней страницы.
func TestListByPage_Pagination(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	var ids []string
	for i := 0; i < 3; i++ {
		c, err := m.CreateComment(ctx, rootInput("page-1", fmt.Sprintf("root-%d", i)))
		if err != nil {
			t.Fatalf("CreateComment error: %v", err)
		}
		ids = append(ids, c.ID)
		time.Sleep(5 * time.Millisecond)
	}
	_, _ = m.CreateComment(ctx, replyInput(ids[0], "not a root"))
	_, _ = m.CreateComment(ctx, rootInput("page-2", "other page"))

	first, err := m.ListByPage(ctx, "page-1", models.ListParams{})
	if err != nil {
		t.Fatalf("ListByPage error: %v", err)
	}
	if len(first.Items) != 2 || first.Items[0].ID != ids[2] || first.Items[1].ID != ids[1] {
		t.Fatalf("unexpected first page: %+v", first.Items)
	}
	if first.NextPageToken == "" {
		t.Fatalf("expected next page token")
	}

	second, err := m.ListByPage(ctx, "page-1", models.ListParams{PageToken: first.NextPageToken})
	if err != nil {
		t.Fatalf("ListByPage(second) error: %v", err)
	}
	if len(second.Items) != 1 || second.Items[0].ID != ids[0] {
		t.Fatalf("unexpected second page: %+v", second.Items)
	}
	if second.NextPageToken != "" {
		t.Fatalf("last page must not carry a token")
	}

	if _, err := m.ListByPage(ctx, "page-1", models.ListParams{PageToken: "%%%"}); !errors.Is(err, storage.ErrInvalidCursor) {
		t.Fatalf("want ErrInvalidCursor, got %v", err)
	}
}

// TestListReplies_Ascending — ответы старые сначала.
func TestListReplies_Ascending(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	root, _ := m.CreateComment(ctx, rootInput("page-1", "root"))
	a, _ := m.CreateComment(ctx, replyInput(root.ID, "a"))
	time.Sleep(5 * time.Millisecond)
	b, _ := m.CreateComment(ctx, replyInput(root.ID, "b"))

	page, err := m.ListReplies(ctx, root.ID, models.ListParams{PageSize: 10})
	if err != nil {
		t.Fatalf("ListReplies error: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != a.ID || page.Items[1].ID != b.ID {
		t.Fatalf("unexpected replies: %+v", page.Items)
	}
}

// TestListThread_ParentsFirst — вся ветка, родитель всегда раньше ребёнка.
func TestListThread_ParentsFirst(t *testing.T) {
	cfg := newTestConfig(t)
	m := mustNewMongo(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	root, _ := m.CreateComment(ctx, rootInput("page-1", "root"))
	child, _ := m.CreateComment(ctx, replyInput(root.ID, "child"))
	_, _ = m.CreateComment(ctx, replyInput(child.ID, "grandchild"))
	_, _ = m.CreateComment(ctx, rootInput("page-1", "second root"))

	all, err := m.ListThread(ctx, "page-1")
	if err != nil {
		t.Fatalf("ListThread error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("want 4 comments, got %d", len(all))
	}

	seen := map[string]int{}
	for _, c := range all {
		if c.ParentID != "" {
			depth, ok := seen[c.ParentID]
			if !ok {
				t.Fatalf("child %s before parent %s", c.ID, c.ParentID)
			}
			if c.Depth != depth+1 {
				t.Fatalf("depth mismatch for %s", c.ID)
			}
		}
		seen[c.ID] = c.Depth
	}
}
