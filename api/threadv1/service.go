package threadv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "thread.v1.ThreadService"

const (
	ThreadService_CreateComment_FullMethodName = "/thread.v1.ThreadService/CreateComment"
	ThreadService_DeleteComment_FullMethodName = "/thread.v1.ThreadService/DeleteComment"
	ThreadService_ToggleLike_FullMethodName    = "/thread.v1.ThreadService/ToggleLike"
	ThreadService_CommentByID_FullMethodName   = "/thread.v1.ThreadService/CommentByID"
	ThreadService_ListByPage_FullMethodName    = "/thread.v1.ThreadService/ListByPage"
	ThreadService_ListReplies_FullMethodName   = "/thread.v1.ThreadService/ListReplies"
	ThreadService_GetThread_FullMethodName     = "/thread.v1.ThreadService/GetThread"
	ThreadService_CurrentViewer_FullMethodName = "/thread.v1.ThreadService/CurrentViewer"
	ThreadService_SaveViewer_FullMethodName    = "/thread.v1.ThreadService/SaveViewer"
	ThreadService_DeleteViewer_FullMethodName  = "/thread.v1.ThreadService/DeleteViewer"
)

// ThreadServiceClient — клиентский API сервиса thread.v1.
type ThreadServiceClient interface {
	CreateComment(ctx context.Context, in *CreateCommentRequest, opts ...grpc.CallOption) (*CreateCommentResponse, error)
	DeleteComment(ctx context.Context, in *DeleteCommentRequest, opts ...grpc.CallOption) (*DeleteCommentResponse, error)
	ToggleLike(ctx context.Context, in *ToggleLikeRequest, opts ...grpc.CallOption) (*ToggleLikeResponse, error)
	CommentByID(ctx context.Context, in *CommentByIDRequest, opts ...grpc.CallOption) (*CommentByIDResponse, error)
	ListByPage(ctx context.Context, in *ListByPageRequest, opts ...grpc.CallOption) (*ListByPageResponse, error)
	ListReplies(ctx context.Context, in *ListRepliesRequest, opts ...grpc.CallOption) (*ListRepliesResponse, error)
	GetThread(ctx context.Context, in *GetThreadRequest, opts ...grpc.CallOption) (*GetThreadResponse, error)
	CurrentViewer(ctx context.Context, in *CurrentViewerRequest, opts ...grpc.CallOption) (*CurrentViewerResponse, error)
	SaveViewer(ctx context.Context, in *SaveViewerRequest, opts ...grpc.CallOption) (*SaveViewerResponse, error)
	DeleteViewer(ctx context.Context, in *DeleteViewerRequest, opts ...grpc.CallOption) (*DeleteViewerResponse, error)
}

type threadServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewThreadServiceClient(cc grpc.ClientConnInterface) ThreadServiceClient {
	return &threadServiceClient{cc}
}

// callOptions — JSON content-subtype обязателен для всех вызовов.
func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(ContentSubtype)}, opts...)
}

func (c *threadServiceClient) CreateComment(ctx context.Context, in *CreateCommentRequest, opts ...grpc.CallOption) (*CreateCommentResponse, error) {
	out := new(CreateCommentResponse)
	err := c.cc.Invoke(ctx, ThreadService_CreateComment_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) DeleteComment(ctx context.Context, in *DeleteCommentRequest, opts ...grpc.CallOption) (*DeleteCommentResponse, error) {
	out := new(DeleteCommentResponse)
	err := c.cc.Invoke(ctx, ThreadService_DeleteComment_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) ToggleLike(ctx context.Context, in *ToggleLikeRequest, opts ...grpc.CallOption) (*ToggleLikeResponse, error) {
	out := new(ToggleLikeResponse)
	err := c.cc.Invoke(ctx, ThreadService_ToggleLike_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) CommentByID(ctx context.Context, in *CommentByIDRequest, opts ...grpc.CallOption) (*CommentByIDResponse, error) {
	out := new(CommentByIDResponse)
	err := c.cc.Invoke(ctx, ThreadService_CommentByID_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) ListByPage(ctx context.Context, in *ListByPageRequest, opts ...grpc.CallOption) (*ListByPageResponse, error) {
	out := new(ListByPageResponse)
	err := c.cc.Invoke(ctx, ThreadService_ListByPage_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) ListReplies(ctx context.Context, in *ListRepliesRequest, opts ...grpc.CallOption) (*ListRepliesResponse, error) {
	out := new(ListRepliesResponse)
	err := c.cc.Invoke(ctx, ThreadService_ListReplies_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) GetThread(ctx context.Context, in *GetThreadRequest, opts ...grpc.CallOption) (*GetThreadResponse, error) {
	out := new(GetThreadResponse)
	err := c.cc.Invoke(ctx, ThreadService_GetThread_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) CurrentViewer(ctx context.Context, in *CurrentViewerRequest, opts ...grpc.CallOption) (*CurrentViewerResponse, error) {
	out := new(CurrentViewerResponse)
	err := c.cc.Invoke(ctx, ThreadService_CurrentViewer_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) SaveViewer(ctx context.Context, in *SaveViewerRequest, opts ...grpc.CallOption) (*SaveViewerResponse, error) {
	out := new(SaveViewerResponse)
	err := c.cc.Invoke(ctx, ThreadService_SaveViewer_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *threadServiceClient) DeleteViewer(ctx context.Context, in *DeleteViewerRequest, opts ...grpc.CallOption) (*DeleteViewerResponse, error) {
	out := new(DeleteViewerResponse)
	err := c.cc.Invoke(ctx, ThreadService_DeleteViewer_FullMethodName, in, out, callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ThreadServiceServer — серверный API сервиса thread.v1.
// Реализации должны встраивать UnimplementedThreadServiceServer.
type ThreadServiceServer interface {
	CreateComment(context.Context, *CreateCommentRequest) (*CreateCommentResponse, error)
	DeleteComment(context.Context, *DeleteCommentRequest) (*DeleteCommentResponse, error)
	ToggleLike(context.Context, *ToggleLikeRequest) (*ToggleLikeResponse, error)
	CommentByID(context.Context, *CommentByIDRequest) (*CommentByIDResponse, error)
	ListByPage(context.Context, *ListByPageRequest) (*ListByPageResponse, error)
	ListReplies(context.Context, *ListRepliesRequest) (*ListRepliesResponse, error)
	GetThread(context.Context, *GetThreadRequest) (*GetThreadResponse, error)
	CurrentViewer(context.Context, *CurrentViewerRequest) (*CurrentViewerResponse, error)
	SaveViewer(context.Context, *SaveViewerRequest) (*SaveViewerResponse, error)
	DeleteViewer(context.Context, *DeleteViewerRequest) (*DeleteViewerResponse, error)
	mustEmbedUnimplementedThreadServiceServer()
}

// UnimplementedThreadServiceServer отвечает codes.Unimplemented на все методы.
type UnimplementedThreadServiceServer struct{}

func (UnimplementedThreadServiceServer) CreateComment(context.Context, *CreateCommentRequest) (*CreateCommentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateComment not implemented")
}

func (UnimplementedThreadServiceServer) DeleteComment(context.Context, *DeleteCommentRequest) (*DeleteCommentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteComment not implemented")
}

func (UnimplementedThreadServiceServer) ToggleLike(context.Context, *ToggleLikeRequest) (*ToggleLikeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ToggleLike not implemented")
}

func (UnimplementedThreadServiceServer) CommentByID(context.Context, *CommentByIDRequest) (*CommentByIDResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CommentByID not implemented")
}

func (UnimplementedThreadServiceServer) ListByPage(context.Context, *ListByPageRequest) (*ListByPageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListByPage not implemented")
}

func (UnimplementedThreadServiceServer) ListReplies(context.Context, *ListRepliesRequest) (*ListRepliesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListReplies not implemented")
}

func (UnimplementedThreadServiceServer) GetThread(context.Context, *GetThreadRequest) (*GetThreadResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetThread not implemented")
}

func (UnimplementedThreadServiceServer) CurrentViewer(context.Context, *CurrentViewerRequest) (*CurrentViewerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CurrentViewer not implemented")
}

func (UnimplementedThreadServiceServer) SaveViewer(context.Context, *SaveViewerRequest) (*SaveViewerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SaveViewer not implemented")
}

func (UnimplementedThreadServiceServer) DeleteViewer(context.Context, *DeleteViewerRequest) (*DeleteViewerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteViewer not implemented")
}

func (UnimplementedThreadServiceServer) mustEmbedUnimplementedThreadServiceServer() {}

func RegisterThreadServiceServer(s grpc.ServiceRegistrar, srv ThreadServiceServer) {
	s.RegisterService(&ThreadService_ServiceDesc, srv)
}

func _ThreadService_CreateComment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateCommentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).CreateComment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_CreateComment_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).CreateComment(ctx, req.(*CreateCommentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_DeleteComment_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteCommentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).DeleteComment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_DeleteComment_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).DeleteComment(ctx, req.(*DeleteCommentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_ToggleLike_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ToggleLikeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).ToggleLike(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_ToggleLike_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).ToggleLike(ctx, req.(*ToggleLikeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_CommentByID_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CommentByIDRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).CommentByID(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_CommentByID_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).CommentByID(ctx, req.(*CommentByIDRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_ListByPage_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListByPageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).ListByPage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_ListByPage_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).ListByPage(ctx, req.(*ListByPageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_ListReplies_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListRepliesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).ListReplies(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_ListReplies_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).ListReplies(ctx, req.(*ListRepliesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_GetThread_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetThreadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).GetThread(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_GetThread_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).GetThread(ctx, req.(*GetThreadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_CurrentViewer_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CurrentViewerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).CurrentViewer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_CurrentViewer_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).CurrentViewer(ctx, req.(*CurrentViewerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_SaveViewer_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SaveViewerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).SaveViewer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_SaveViewer_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).SaveViewer(ctx, req.(*SaveViewerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ThreadService_DeleteViewer_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(DeleteViewerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ThreadServiceServer).DeleteViewer(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ThreadService_DeleteViewer_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ThreadServiceServer).DeleteViewer(ctx, req.(*DeleteViewerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ThreadService_ServiceDesc — дескриптор thread.v1.ThreadService.
var ThreadService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ThreadServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateComment",
			Handler:    _ThreadService_CreateComment_Handler,
		},
		{
			MethodName: "DeleteComment",
			Handler:    _ThreadService_DeleteComment_Handler,
		},
		{
			MethodName: "ToggleLike",
			Handler:    _ThreadService_ToggleLike_Handler,
		},
		{
			MethodName: "CommentByID",
			Handler:    _ThreadService_CommentByID_Handler,
		},
		{
			MethodName: "ListByPage",
			Handler:    _ThreadService_ListByPage_Handler,
		},
		{
			MethodName: "ListReplies",
			Handler:    _ThreadService_ListReplies_Handler,
		},
		{
			MethodName: "GetThread",
			Handler:    _ThreadService_GetThread_Handler,
		},
		{
			MethodName: "CurrentViewer",
			Handler:    _ThreadService_CurrentViewer_Handler,
		},
		{
			MethodName: "SaveViewer",
			Handler:    _ThreadService_SaveViewer_Handler,
		},
		{
			MethodName: "DeleteViewer",
			Handler:    _ThreadService_DeleteViewer_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "thread/v1/thread.proto",
}
