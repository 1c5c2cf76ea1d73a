package api

import (
	"context"

	"google.golang.org/grpc"
)

type ListActiveMatchesRequest struct{}

type MessagePreview struct {
	SenderID   string `json:"sender_id"`
	Body       string `json:"body"`
	SentAtUnix int64  `json:"sent_at_unix"`
}

type MatchSummary struct {
	MatchID       string          `json:"match_id"`
	Counterpart   *Profile        `json:"counterpart"`
	Status        string          `json:"status"`
	CreatedAtUnix int64           `json:"created_at_unix"`
	LastMessage   *MessagePreview `json:"last_message,omitempty"`
}

type ListActiveMatchesResponse struct {
	Matches []*MatchSummary `json:"matches"`
}

type EndMatchRequest struct {
	MatchID string `json:"match_id"`
	Reason  string `json:"reason"`
}

type EndMatchResponse struct{}

const (
	MatchService_ListActiveMatches_FullMethodName = "/accountadate.v1.MatchService/ListActiveMatches"
	MatchService_EndMatch_FullMethodName          = "/accountadate.v1.MatchService/EndMatch"
)

// MatchServiceServer is the server API for MatchService.
type MatchServiceServer interface {
	ListActiveMatches(context.Context, *ListActiveMatchesRequest) (*ListActiveMatchesResponse, error)
	EndMatch(context.Context, *EndMatchRequest) (*EndMatchResponse, error)
}

var MatchService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "accountadate.v1.MatchService",
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListActiveMatches", Handler: unary(MatchService_ListActiveMatches_FullMethodName, MatchServiceServer.ListActiveMatches)},
		{MethodName: "EndMatch", Handler: unary(MatchService_EndMatch_FullMethodName, MatchServiceServer.EndMatch)},
	},
	Metadata: "accountadate/v1/match",
}

func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&MatchService_ServiceDesc, srv)
}

type MatchServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchServiceClient(cc grpc.ClientConnInterface) *MatchServiceClient {
	return &MatchServiceClient{cc: cc}
}

func (c *MatchServiceClient) ListActiveMatches(ctx context.Context, in *ListActiveMatchesRequest, opts ...grpc.CallOption) (*ListActiveMatchesResponse, error) {
	return invoke[ListActiveMatchesResponse](ctx, c.cc, MatchService_ListActiveMatches_FullMethodName, in, opts)
}

func (c *MatchServiceClient) EndMatch(ctx context.Context, in *EndMatchRequest, opts ...grpc.CallOption) (*EndMatchResponse, error) {
	return invoke[EndMatchResponse](ctx, c.cc, MatchService_EndMatch_FullMethodName, in, opts)
}
