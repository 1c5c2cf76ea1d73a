package api

import (
	"context"

	"google.golang.org/grpc"
)

type SwipeRequest struct {
	TargetAccountID string `json:"target_account_id"`
	// Polarity is "like" or "pass" ("right"/"left" are accepted too).
	Polarity string `json:"polarity"`
}

type SwipeResponse struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}

type Profile struct {
	AccountID string   `json:"account_id"`
	Username  string   `json:"username"`
	Bio       string   `json:"bio,omitempty"`
	Interests []string `json:"interests,omitempty"`
	AvatarRef string   `json:"avatar_ref,omitempty"`
}

type ListCandidatesRequest struct {
	PaginationToken *string `json:"pagination_token,omitempty"`
	Limit           int32   `json:"limit,omitempty"`
}

type ListCandidatesResponse struct {
	Candidates          []*Profile `json:"candidates"`
	NextPaginationToken *string    `json:"next_pagination_token,omitempty"`
}

type ListAdmirersRequest struct {
	PaginationToken *string `json:"pagination_token,omitempty"`
	Limit           int32   `json:"limit,omitempty"`
}

type Admirer struct {
	AccountID     string `json:"account_id"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

type ListAdmirersResponse struct {
	Admirers            []*Admirer `json:"admirers"`
	NextPaginationToken *string    `json:"next_pagination_token,omitempty"`
}

type CountAdmirersRequest struct{}

type CountAdmirersResponse struct {
	Count uint64 `json:"count"`
}

const (
	ExploreService_Swipe_FullMethodName          = "/accountadate.v1.ExploreService/Swipe"
	ExploreService_ListCandidates_FullMethodName = "/accountadate.v1.ExploreService/ListCandidates"
	ExploreService_ListAdmirers_FullMethodName   = "/accountadate.v1.ExploreService/ListAdmirers"
	ExploreService_CountAdmirers_FullMethodName  = "/accountadate.v1.ExploreService/CountAdmirers"
)

// ExploreServiceServer is the server API for ExploreService.
type ExploreServiceServer interface {
	Swipe(context.Context, *SwipeRequest) (*SwipeResponse, error)
	ListCandidates(context.Context, *ListCandidatesRequest) (*ListCandidatesResponse, error)
	ListAdmirers(context.Context, *ListAdmirersRequest) (*ListAdmirersResponse, error)
	CountAdmirers(context.Context, *CountAdmirersRequest) (*CountAdmirersResponse, error)
}

var ExploreService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "accountadate.v1.ExploreService",
	HandlerType: (*ExploreServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Swipe", Handler: unary(ExploreService_Swipe_FullMethodName, ExploreServiceServer.Swipe)},
		{MethodName: "ListCandidates", Handler: unary(ExploreService_ListCandidates_FullMethodName, ExploreServiceServer.ListCandidates)},
		{MethodName: "ListAdmirers", Handler: unary(ExploreService_ListAdmirers_FullMethodName, ExploreServiceServer.ListAdmirers)},
		{MethodName: "CountAdmirers", Handler: unary(ExploreService_CountAdmirers_FullMethodName, ExploreServiceServer.CountAdmirers)},
	},
	Metadata: "accountadate/v1/explore",
}

func RegisterExploreServiceServer(s grpc.ServiceRegistrar, srv ExploreServiceServer) {
	s.RegisterService(&ExploreService_ServiceDesc, srv)
}

type ExploreServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewExploreServiceClient(cc grpc.ClientConnInterface) *ExploreServiceClient {
	return &ExploreServiceClient{cc: cc}
}

func (c *ExploreServiceClient) Swipe(ctx context.Context, in *SwipeRequest, opts ...grpc.CallOption) (*SwipeResponse, error) {
	return invoke[SwipeResponse](ctx, c.cc, ExploreService_Swipe_FullMethodName, in, opts)
}

func (c *ExploreServiceClient) ListCandidates(ctx context.Context, in *ListCandidatesRequest, opts ...grpc.CallOption) (*ListCandidatesResponse, error) {
	return invoke[ListCandidatesResponse](ctx, c.cc, ExploreService_ListCandidates_FullMethodName, in, opts)
}

func (c *ExploreServiceClient) ListAdmirers(ctx context.Context, in *ListAdmirersRequest, opts ...grpc.CallOption) (*ListAdmirersResponse, error) {
	return invoke[ListAdmirersResponse](ctx, c.cc, ExploreService_ListAdmirers_FullMethodName, in, opts)
}

func (c *ExploreServiceClient) CountAdmirers(ctx context.Context, in *CountAdmirersRequest, opts ...grpc.CallOption) (*CountAdmirersResponse, error) {
	return invoke[CountAdmirersResponse](ctx, c.cc, ExploreService_CountAdmirers_FullMethodName, in, opts)
}
