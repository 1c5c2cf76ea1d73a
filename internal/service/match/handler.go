package match

import (
	"context"

	"github.com/oggyb/accountadate/internal/api"
	"github.com/oggyb/accountadate/internal/auth"
	svcErr "github.com/oggyb/accountadate/internal/errors"
)

// Handler exposes Service as api.MatchServiceServer.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

var _ api.MatchServiceServer = (*Handler)(nil)

func (h *Handler) ListActiveMatches(ctx context.Context, _ *api.ListActiveMatchesRequest) (*api.ListActiveMatchesResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	summaries, err := h.svc.ListActiveMatches(ctx, me)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &api.ListActiveMatchesResponse{Matches: make([]*api.MatchSummary, 0, len(summaries))}
	for _, s := range summaries {
		item := &api.MatchSummary{
			MatchID: api.FormatID(s.Match.ID),
			Counterpart: &api.Profile{
				AccountID: api.FormatID(s.Match.Counterpart(me)),
				Username:  s.Counterpart.Username,
				AvatarRef: s.Counterpart.AvatarRef,
			},
			Status:        string(s.Match.Status),
			CreatedAtUnix: s.Match.CreatedAt.Unix(),
		}
		if s.LastMessage != nil {
			item.LastMessage = &api.MessagePreview{
				SenderID:   api.FormatID(s.LastMessage.SenderID),
				Body:       s.LastMessage.Body,
				SentAtUnix: s.LastMessage.CreatedAt.UnixMilli(),
			}
		}
		resp.Matches = append(resp.Matches, item)
	}
	return resp, nil
}

func (h *Handler) EndMatch(ctx context.Context, req *api.EndMatchRequest) (*api.EndMatchResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	matchID, err := api.ParseID("match_id", req.MatchID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if err := h.svc.EndMatch(ctx, me, matchID, req.Reason); err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.EndMatchResponse{}, nil
}
