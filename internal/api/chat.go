package api

import (
	"context"

	"google.golang.org/grpc"
)

type Message struct {
	MessageID  string `json:"message_id"`
	MatchID    string `json:"match_id"`
	SenderID   string `json:"sender_id"`
	Body       string `json:"body"`
	SentAtUnix int64  `json:"sent_at_unix"`
}

type PostMessageRequest struct {
	MatchID string `json:"match_id"`
	Body    string `json:"body"`
}

type PostMessageResponse struct {
	Message *Message `json:"message"`
}

type ListMessagesRequest struct {
	MatchID string `json:"match_id"`
	// AfterMessageID returns only messages newer than this one.
	AfterMessageID string `json:"after_message_id,omitempty"`
}

type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
}

type WatchMessagesRequest struct {
	MatchID        string `json:"match_id"`
	AfterMessageID string `json:"after_message_id,omitempty"`
}

// WatchMessagesResponse is one batch of new messages, oldest first.
type WatchMessagesResponse struct {
	Messages []*Message `json:"messages"`
}

const (
	ChatService_PostMessage_FullMethodName   = "/accountadate.v1.ChatService/PostMessage"
	ChatService_ListMessages_FullMethodName  = "/accountadate.v1.ChatService/ListMessages"
	ChatService_WatchMessages_FullMethodName = "/accountadate.v1.ChatService/WatchMessages"
)

// ChatServiceServer is the server API for ChatService.
type ChatServiceServer interface {
	PostMessage(context.Context, *PostMessageRequest) (*PostMessageResponse, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesResponse, error)
	WatchMessages(*WatchMessagesRequest, grpc.ServerStreamingServer[WatchMessagesResponse]) error
}

func _ChatService_WatchMessages_Handler(srv any, stream grpc.ServerStream) error {
	in := new(WatchMessagesRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ChatServiceServer).WatchMessages(in, &grpc.GenericServerStream[WatchMessagesRequest, WatchMessagesResponse]{ServerStream: stream})
}

var ChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "accountadate.v1.ChatService",
	HandlerType: (*ChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "PostMessage", Handler: unary(ChatService_PostMessage_FullMethodName, ChatServiceServer.PostMessage)},
		{MethodName: "ListMessages", Handler: unary(ChatService_ListMessages_FullMethodName, ChatServiceServer.ListMessages)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchMessages",
			Handler:       _ChatService_WatchMessages_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "accountadate/v1/chat",
}

func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&ChatService_ServiceDesc, srv)
}

type ChatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewChatServiceClient(cc grpc.ClientConnInterface) *ChatServiceClient {
	return &ChatServiceClient{cc: cc}
}

func (c *ChatServiceClient) PostMessage(ctx context.Context, in *PostMessageRequest, opts ...grpc.CallOption) (*PostMessageResponse, error) {
	return invoke[PostMessageResponse](ctx, c.cc, ChatService_PostMessage_FullMethodName, in, opts)
}

func (c *ChatServiceClient) ListMessages(ctx context.Context, in *ListMessagesRequest, opts ...grpc.CallOption) (*ListMessagesResponse, error) {
	return invoke[ListMessagesResponse](ctx, c.cc, ChatService_ListMessages_FullMethodName, in, opts)
}

func (c *ChatServiceClient) WatchMessages(ctx context.Context, in *WatchMessagesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[WatchMessagesResponse], error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	stream, err := c.cc.NewStream(ctx, &ChatService_ServiceDesc.Streams[0], ChatService_WatchMessages_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchMessagesRequest, WatchMessagesResponse]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
