package chat

import (
	"context"

	"google.golang.org/grpc"

	"github.com/oggyb/accountadate/internal/api"
	"github.com/oggyb/accountadate/internal/auth"
	"github.com/oggyb/accountadate/internal/db"
	svcErr "github.com/oggyb/accountadate/internal/errors"
)

// Handler exposes Service as api.ChatServiceServer.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

var _ api.ChatServiceServer = (*Handler)(nil)

func (h *Handler) PostMessage(ctx context.Context, req *api.PostMessageRequest) (*api.PostMessageResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	matchID, err := api.ParseID("match_id", req.MatchID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	msg, err := h.svc.PostMessage(ctx, matchID, me, req.Body)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.PostMessageResponse{Message: toAPI(msg)}, nil
}

func (h *Handler) ListMessages(ctx context.Context, req *api.ListMessagesRequest) (*api.ListMessagesResponse, error) {
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	matchID, err := api.ParseID("match_id", req.MatchID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	afterID, err := api.ParseOptionalID("after_message_id", req.AfterMessageID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	msgs, err := h.svc.ListMessages(ctx, matchID, me, afterID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &api.ListMessagesResponse{Messages: toAPIList(msgs)}, nil
}

// WatchMessages streams new messages until the client goes away.
func (h *Handler) WatchMessages(req *api.WatchMessagesRequest, stream grpc.ServerStreamingServer[api.WatchMessagesResponse]) error {
	ctx := stream.Context()
	me, err := auth.RequireAccount(ctx)
	if err != nil {
		return svcErr.Map(err)
	}
	matchID, err := api.ParseID("match_id", req.MatchID)
	if err != nil {
		return svcErr.Map(err)
	}
	afterID, err := api.ParseOptionalID("after_message_id", req.AfterMessageID)
	if err != nil {
		return svcErr.Map(err)
	}

	sub, err := h.svc.Watch(ctx, matchID, me, afterID)
	if err != nil {
		return svcErr.Map(err)
	}
	if err := sub.Start(ctx); err != nil {
		return svcErr.Map(err)
	}
	defer sub.Stop()

	for batch := range sub.Messages() {
		if err := stream.Send(&api.WatchMessagesResponse{Messages: toAPIList(batch)}); err != nil {
			return err
		}
	}
	if err := sub.Err(); err != nil {
		return svcErr.Map(err)
	}
	return nil
}

func toAPI(m *db.Message) *api.Message {
	return &api.Message{
		MessageID:  api.FormatID(m.ID),
		MatchID:    api.FormatID(m.MatchID),
		SenderID:   api.FormatID(m.SenderID),
		Body:       m.Body,
		SentAtUnix: m.CreatedAt.UnixMilli(),
	}
}

func toAPIList(msgs []db.Message) []*api.Message {
	out := make([]*api.Message, 0, len(msgs))
	for i := range msgs {
		out = append(out, toAPI(&msgs[i]))
	}
	return out
}
