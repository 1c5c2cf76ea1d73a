package explore

import (
	"context"

	"github.com/oggyb/accountadate/internal/api"
	"github.com/oggyb/accountadate/internal/auth"
	"github.com/oggyb/accountadate/internal/domain"
	svcErr "github.com/oggyb/accountadate/internal/errors"
)

// Handler exposes Service as api.ExploreServiceServer. The acting account
// always comes from the session.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

var _ api.ExploreServiceServer = (*Handler)(nil)

func (h *Handler) Swipe(ctx context.Context, req *api.SwipeRequest) (*api.SwipeResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	targetID, err := api.ParseID("target_account_id", req.TargetAccountID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	polarity, ok := domain.ParsePolarity(req.Polarity)
	if !ok {
		return nil, svcErr.InvalidField("polarity", "polarity must be like or pass")
	}

	res, err := h.svc.RecordSwipe(ctx, me, targetID, polarity)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &api.SwipeResponse{Matched: res.Matched}
	if res.Match != nil {
		resp.MatchID = api.FormatID(res.Match.ID)
	}
	return resp, nil
}

func (h *Handler) ListCandidates(ctx context.Context, req *api.ListCandidatesRequest) (*api.ListCandidatesResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	users, next, err := h.svc.ListCandidates(ctx, me, req.PaginationToken, int(req.Limit))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &api.ListCandidatesResponse{
		Candidates:          make([]*api.Profile, 0, len(users)),
		NextPaginationToken: next,
	}
	for _, u := range users {
		resp.Candidates = append(resp.Candidates, &api.Profile{
			AccountID: api.FormatID(u.ID),
			Username:  u.Username,
			Bio:       u.Bio,
			Interests: u.Interests,
			AvatarRef: u.AvatarRef,
		})
	}
	return resp, nil
}

func (h *Handler) ListAdmirers(ctx context.Context, req *api.ListAdmirersRequest) (*api.ListAdmirersResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	swipes, next, err := h.svc.ListAdmirers(ctx, me, req.PaginationToken, int(req.Limit))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &api.ListAdmirersResponse{
		Admirers:            make([]*api.Admirer, 0, len(swipes)),
		NextPaginationToken: next,
	}
	for _, s := range swipes {
		resp.Admirers = append(resp.Admirers, &api.Admirer{
			AccountID:     api.FormatID(s.ActorID),
			UnixTimestamp: uint64(s.UpdatedAt.UnixMilli()),
		})
	}
	return resp, nil
}

func (h *Handler) CountAdmirers(ctx context.Context, _ *api.CountAdmirersRequest) (*api.CountAdmirersResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	n, err := h.svc.CountAdmirers(ctx, me)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.CountAdmirersResponse{Count: uint64(n)}, nil
}
