// client — gRPC-клиент ThreadService для хоста виджета.
// Client привязан к одной странице и реализует thread.Remote и thread.ViewerSource.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	threadv1 "github.com/pribylovaa/comment-thread/api/threadv1"
	"github.com/pribylovaa/comment-thread/internal/config"
	"github.com/pribylovaa/comment-thread/internal/interceptors"
	"github.com/pribylovaa/comment-thread/internal/models"
	"github.com/pribylovaa/comment-thread/internal/richtext"
	"github.com/pribylovaa/comment-thread/internal/thread"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const userAgent = "thread-cli"

// Client — ThreadService, привязанный к проекту, странице и пользователю.
// Ошибки gRPC возвращаются как есть: контроллер сам оборачивает отказы.
type Client struct {
	api  threadv1.ThreadServiceClient
	conn *grpc.ClientConn

	viewerID string
	pageID   string

	mu        sync.Mutex
	projectID string

	viewer atomic.Pointer[models.Viewer]
}

var (
	_ thread.Remote       = (*Client)(nil)
	_ thread.ViewerSource = (*Client)(nil)
)

// New создаёт коннект с цепочкой интерсепторов: metadata -> timeout -> logging.
// extra дополняют опции коннекта (например, dialer в тестах).
func New(ctx context.Context, cfg config.ClientConfig, log *slog.Logger, extra ...grpc.DialOption) (*Client, error) {
	const op = "internal/client/New"

	if cfg.Addr == "" {
		return nil, fmt.Errorf("%s: empty addr", op)
	}

	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(
			interceptors.ClientWithMetadata(userAgent),
			interceptors.ClientWithTimeout(cfg.Timeout),
			interceptors.ClientUnaryLoggingInterceptor(log),
		),
	}, extra...)

	conn, err := grpc.NewClient(cfg.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	c := NewWithConn(conn, cfg)
	c.conn = conn

	return c, nil
}

// NewWithConn оборачивает готовый коннект; Close его не закрывает.
func NewWithConn(cc grpc.ClientConnInterface, cfg config.ClientConfig) *Client {
	return &Client{
		api:       threadv1.NewThreadServiceClient(cc),
		viewerID:  strings.TrimSpace(cfg.ViewerID),
		projectID: strings.TrimSpace(cfg.ProjectID),
		pageID:    strings.TrimSpace(cfg.PageID),
	}
}

// Close закрывает коннект, если он был открыт New.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// withViewer — x-viewer-id для исходящего вызова (см. interceptors.ClientWithMetadata).
func (c *Client) withViewer(ctx context.Context) context.Context {
	if c.viewerID == "" {
		return ctx
	}

	return context.WithValue(ctx, interceptors.CtxViewerID, c.viewerID)
}

// CreateComment — корень страницы при parentID == "", иначе ответ.
func (c *Client) CreateComment(ctx context.Context, content richtext.Document, parentID string) (models.Comment, error) {
	req := &threadv1.CreateCommentRequest{
		ParentID: parentID,
		Content:  content,
	}
	if parentID == "" {
		req.ProjectID = c.ProjectID()
		req.PageID = c.pageID
	}

	resp, err := c.api.CreateComment(c.withViewer(ctx), req)
	if err != nil {
		return models.Comment{}, err
	}

	if resp.Comment == nil {
		return models.Comment{}, fmt.Errorf("internal/client/CreateComment: empty comment in response")
	}

	return resp.Comment.Model(), nil
}

func (c *Client) DeleteComment(ctx context.Context, id string) error {
	_, err := c.api.DeleteComment(c.withViewer(ctx), &threadv1.DeleteCommentRequest{ID: id})
	return err
}

func (c *Client) ToggleLike(ctx context.Context, id string) (models.LikeSet, error) {
	resp, err := c.api.ToggleLike(c.withViewer(ctx), &threadv1.ToggleLikeRequest{ID: id})
	if err != nil {
		return nil, err
	}

	return threadv1.LikesModel(resp.Likes), nil
}

// Thread загружает всю ветку страницы в thread.Thread.
// Если проект не задан в конфиге, он берётся из комментариев.
func (c *Client) Thread(ctx context.Context) (*thread.Thread, error) {
	const op = "internal/client/Thread"

	resp, err := c.api.GetThread(c.withViewer(ctx), &threadv1.GetThreadRequest{PageID: c.pageID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comments := threadv1.CommentsModel(resp.Comments)

	c.mu.Lock()
	if c.projectID == "" && len(comments) > 0 {
		c.projectID = comments[0].ProjectID
	}
	projectID := c.projectID
	c.mu.Unlock()

	t := thread.New(projectID, int(resp.MaxDepth))
	if err := t.Load(comments); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// FetchViewer запрашивает профиль и кэширует его для CurrentViewer.
// Аноним — nil без ошибки.
func (c *Client) FetchViewer(ctx context.Context) (*models.Viewer, error) {
	resp, err := c.api.CurrentViewer(c.withViewer(ctx), &threadv1.CurrentViewerRequest{})
	if err != nil {
		return nil, err
	}

	v := resp.Viewer.Model()
	c.viewer.Store(v)

	return v, nil
}

// CurrentViewer — последний профиль, полученный FetchViewer.
func (c *Client) CurrentViewer() *models.Viewer {
	return c.viewer.Load()
}

func (c *Client) ProjectID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.projectID
}

func (c *Client) PageID() string { return c.pageID }
