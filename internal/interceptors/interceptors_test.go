package interceptors

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/comment-thread/internal/service"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func TestUnaryLoggingInterceptor_Success_WithRequestID(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	md := metadata.New(map[string]string{MDRequestID: "rid-123"})
	ctx := metadata.NewIncomingContext(context.Background(), md)
	ctx = peer.NewContext(ctx, &peer.Peer{
		Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50055},
	})

	info := &grpc.UnaryServerInfo{FullMethod: "/thread.v1.ThreadService/GetThread"}

	inter := UnaryLoggingInterceptor(logger)
	resp, err := inter(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
		time.Sleep(5 * time.Millisecond)
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp)

	require.Equal(t, "grpc", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, "rid-123", h.attrs["request_id"])
	require.Equal(t, info.FullMethod, h.attrs["method"])
	require.Equal(t, "127.0.0.1:50055", h.attrs["peer"])
	require.Equal(t, "OK", h.attrs["code"])

	d, ok := h.attrs["dur"].(time.Duration)
	require.True(t, ok)
	require.Greater(t, d, time.Duration(0))
}

func TestUnaryLoggingInterceptor_GeneratesUUID_And_LogsErrorCode(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	info := &grpc.UnaryServerInfo{FullMethod: "/thread.v1.ThreadService/CreateComment"}
	inter := UnaryLoggingInterceptor(logger)

	_, err := inter(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.InvalidArgument, "bad input")
	})
	require.Error(t, err)

	require.Equal(t, "InvalidArgument", h.attrs["code"])

	rid, _ := h.attrs["request_id"].(string)
	_, parseErr := uuid.Parse(rid)
	require.NoError(t, parseErr)
}

func TestRecover_PanicToInternal_AndLogsStack(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	info := &grpc.UnaryServerInfo{FullMethod: "/thread.v1.ThreadService/WillPanic"}
	inter := Recover(logger)

	resp, err := inter(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})

	require.Nil(t, resp)
	require.Equal(t, codes.Internal, status.Code(err))

	require.Equal(t, slog.LevelError, h.lastLvl)
	require.Equal(t, "panic_recovered", h.lastMsg)
	require.Equal(t, info.FullMethod, h.attrs["method"])
	require.NotEmpty(t, h.attrs["panic"])

	stack, ok := h.attrs["stack"].(string)
	require.True(t, ok)
	require.NotEmpty(t, stack)
}

// Идентификаторы запроса и пользователя попадают в запись о панике из metadata.
func TestRecover_LogsRequestAndViewerFromMetadata(t *testing.T) {
	h := &capHandler{}
	inter := Recover(slog.New(h))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		MDRequestID, "rid-1",
		MDViewerID, "u-mod",
	))

	_, err := inter(ctx, "req", &grpc.UnaryServerInfo{FullMethod: "/thread.v1.ThreadService/DeleteComment"},
		func(context.Context, any) (any, error) {
			panic("boom")
		})

	require.Equal(t, codes.Internal, status.Code(err))
	require.Equal(t, "rid-1", h.attrs["request_id"])
	require.Equal(t, "u-mod", h.attrs["viewer_id"])
}

func TestRecover_NoPanic_PassThrough_NoLogs(t *testing.T) {
	h := &capHandler{}
	inter := Recover(slog.New(h))

	resp, err := inter(context.Background(), "req", &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	require.Equal(t, "ok", resp)
	require.Equal(t, "", h.lastMsg)
}

func TestWithTimeout_SetsDeadline(t *testing.T) {
	const d = 40 * time.Millisecond
	inter := WithTimeout(d)

	start := time.Now()
	_, err := inter(context.Background(), "req", &grpc.UnaryServerInfo{},
		func(ctx context.Context, req any) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestWithTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	pdl, _ := parent.Deadline()

	var childDL time.Time
	_, err := WithTimeout(time.Second)(parent, "req", &grpc.UnaryServerInfo{},
		func(ctx context.Context, req any) (any, error) {
			childDL, _ = ctx.Deadline()
			return "ok", nil
		},
	)

	require.NoError(t, err)
	require.WithinDuration(t, pdl, childDL, time.Millisecond)
}

func TestWithTimeout_ZeroDuration_PassThrough(t *testing.T) {
	_, err := WithTimeout(0)(context.Background(), "req", &grpc.UnaryServerInfo{},
		func(ctx context.Context, req any) (any, error) {
			_, hasDL := ctx.Deadline()
			require.False(t, hasDL)
			return "ok", nil
		},
	)
	require.NoError(t, err)
}

func TestViewer_FromMetadata(t *testing.T) {
	md := metadata.New(map[string]string{MDViewerID: " u-alice "})
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var got string
	_, err := Viewer()(ctx, "req", &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		got = service.ViewerIDFrom(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	require.Equal(t, "u-alice", got)
}

func TestViewer_Anonymous(t *testing.T) {
	_, err := Viewer()(context.Background(), "req", &grpc.UnaryServerInfo{}, func(ctx context.Context, req any) (any, error) {
		require.Equal(t, "", service.ViewerIDFrom(ctx))
		return nil, nil
	})
	require.NoError(t, err)
}

func TestClientWithMetadata(t *testing.T) {
	ctx := context.WithValue(context.Background(), CtxRequestID, "rid-1")
	ctx = context.WithValue(ctx, CtxViewerID, "u-bob")

	inter := ClientWithMetadata("thread-cli")
	err := inter(ctx, "/m", nil, nil, nil, func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, ok := metadata.FromOutgoingContext(ctx)
		require.True(t, ok)
		require.Equal(t, []string{"rid-1"}, md.Get(MDRequestID))
		require.Equal(t, []string{"u-bob"}, md.Get(MDViewerID))
		require.Equal(t, []string{"thread-cli"}, md.Get("user-agent"))
		return nil
	})
	require.NoError(t, err)
}

func TestClientWithTimeout(t *testing.T) {
	err := ClientWithTimeout(time.Second)(context.Background(), "/m", nil, nil, nil,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			_, ok := ctx.Deadline()
			require.True(t, ok)
			return nil
		})
	require.NoError(t, err)
}

func TestClientUnaryLoggingInterceptor_AddsRequestID(t *testing.T) {
	h := &capHandler{}

	err := ClientUnaryLoggingInterceptor(slog.New(h))(context.Background(), "/thread.v1.ThreadService/GetThread", nil, nil, nil,
		func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
			md, _ := metadata.FromOutgoingContext(ctx)
			require.Len(t, md.Get(MDRequestID), 1)
			return status.Error(codes.NotFound, "nope")
		})

	require.Equal(t, codes.NotFound, status.Code(err))
	require.Equal(t, "grpc", h.lastMsg)
	require.Equal(t, "NotFound", h.attrs["code"])
	require.Equal(t, "-", h.attrs["target"])
}
