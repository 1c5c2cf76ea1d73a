package chat

import (
	"context"
	"strings"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/metrics"
	"github.com/oggyb/accountadate/internal/repository"
)

// Service is the conversation log of a match.
type Service struct {
	appCtx *app.AppContext
	store  *repository.Store
}

// NewChatService creates a new Chat service with dependencies from AppContext.
// Dependencies include:
//   - Store for matches and messages
//   - RedisCache for new-message notifications
func NewChatService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		store:  appCtx.Store,
	}
}

// PostMessage appends body to the conversation of matchID.
//
// Behavior:
//   - body is trimmed; a blank body returns domain.ErrEmptyBody.
//   - sender must be a party of the match (domain.ErrNotFound otherwise).
//   - The match must still be active when the row is written
//     (domain.ErrMatchNotActive otherwise).
//   - Watchers are notified on chat:match:<id> after commit. A failed
//     publish is logged; pollers still pick the message up.
func (s *Service) PostMessage(ctx context.Context, matchID, senderID uint64, body string) (*db.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyBody
	}

	msg := &db.Message{MatchID: matchID, SenderID: senderID, Body: body}
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		m, err := tx.Matches.GetForParty(ctx, matchID, senderID, true)
		if err != nil {
			return err
		}
		if m.Status != domain.MatchActive {
			return domain.ErrMatchNotActive
		}
		return tx.Messages.Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	metrics.MessagesPosted.Inc()
	if rc := s.appCtx.RedisCache; rc != nil {
		if err := rc.PublishChatMessage(ctx, matchID, msg.ID); err != nil {
			s.appCtx.Logger.Warn("chat notify failed", "match", matchID, "message", msg.ID, "err", err)
		}
	}
	return msg, nil
}

// ListMessages returns the conversation oldest first. afterID > 0 keeps
// only messages posted after that one. Ended matches stay readable.
func (s *Service) ListMessages(ctx context.Context, matchID, accountID, afterID uint64) ([]db.Message, error) {
	var msgs []db.Message
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		if _, err := tx.Matches.GetForParty(ctx, matchID, accountID, false); err != nil {
			return err
		}
		var err error
		msgs, err = tx.Messages.List(ctx, matchID, afterID, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Watch prepares a subscription to new messages of matchID after afterID.
// Nothing runs until Start is called.
func (s *Service) Watch(ctx context.Context, matchID, accountID, afterID uint64) (*Subscription, error) {
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		_, err := tx.Matches.GetForParty(ctx, matchID, accountID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newSubscription(s, matchID, afterID), nil
}

// messagesAfter is the poll query of a subscription; the party check was
// done once in Watch.
func (s *Service) messagesAfter(ctx context.Context, matchID, afterID uint64) ([]db.Message, error) {
	var msgs []db.Message
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		var err error
		msgs, err = tx.Messages.List(ctx, matchID, afterID, 0)
		return err
	})
	return msgs, err
}
