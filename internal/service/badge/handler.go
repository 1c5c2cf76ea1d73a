package badge

import (
	"context"

	"github.com/oggyb/accountadate/internal/api"
	"github.com/oggyb/accountadate/internal/auth"
	svcErr "github.com/oggyb/accountadate/internal/errors"
)

// Handler exposes Service as api.BadgeServiceServer.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

var _ api.BadgeServiceServer = (*Handler)(nil)

func (h *Handler) EvaluateBadges(ctx context.Context, _ *api.EvaluateBadgesRequest) (*api.EvaluateBadgesResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	eval, err := h.svc.Evaluate(ctx, me)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &api.EvaluateBadgesResponse{Badges: make([]*api.BadgeStatus, 0, len(eval.Progress))}
	for _, p := range eval.Progress {
		resp.Badges = append(resp.Badges, &api.BadgeStatus{
			BadgeID:     string(p.Badge.ID),
			Key:         p.Badge.Key,
			Title:       p.Badge.Title,
			Description: p.Badge.Description,
			Icon:        p.Badge.Icon,
			Requirement: p.Badge.Requirement,
			Progress:    p.Value,
			Earned:      p.Earned,
			NewlyEarned: p.NewlyEarned,
		})
	}
	return resp, nil
}
