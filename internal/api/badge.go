package api

import (
	"context"

	"google.golang.org/grpc"
)

type EvaluateBadgesRequest struct{}

type BadgeStatus struct {
	BadgeID     string `json:"badge_id"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Requirement int64  `json:"requirement"`
	Progress    int64  `json:"progress"`
	Earned      bool   `json:"earned"`
	NewlyEarned bool   `json:"newly_earned,omitempty"`
}

type EvaluateBadgesResponse struct {
	Badges []*BadgeStatus `json:"badges"`
}

const (
	BadgeService_EvaluateBadges_FullMethodName = "/accountadate.v1.BadgeService/EvaluateBadges"
)

// BadgeServiceServer is the server API for BadgeService.
type BadgeServiceServer interface {
	EvaluateBadges(context.Context, *EvaluateBadgesRequest) (*EvaluateBadgesResponse, error)
}

var BadgeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "accountadate.v1.BadgeService",
	HandlerType: (*BadgeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "EvaluateBadges", Handler: unary(BadgeService_EvaluateBadges_FullMethodName, BadgeServiceServer.EvaluateBadges)},
	},
	Metadata: "accountadate/v1/badge",
}

func RegisterBadgeServiceServer(s grpc.ServiceRegistrar, srv BadgeServiceServer) {
	s.RegisterService(&BadgeService_ServiceDesc, srv)
}

type BadgeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBadgeServiceClient(cc grpc.ClientConnInterface) *BadgeServiceClient {
	return &BadgeServiceClient{cc: cc}
}

func (c *BadgeServiceClient) EvaluateBadges(ctx context.Context, in *EvaluateBadgesRequest, opts ...grpc.CallOption) (*EvaluateBadgesResponse, error) {
	return invoke[EvaluateBadgesResponse](ctx, c.cc, BadgeService_EvaluateBadges_FullMethodName, in, opts)
}
