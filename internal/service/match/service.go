package match

import (
	"context"
	"sort"
	"strings"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/metrics"
	"github.com/oggyb/accountadate/internal/repository"
)

// Service is the match/conversation registry. Each match backs exactly one
// conversation; active -> ended is its only transition.
type Service struct {
	appCtx *app.AppContext
	store  *repository.Store
}

// NewMatchService creates a new Match service with dependencies from AppContext.
func NewMatchService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, store: appCtx.Store}
}

// Summary is one row of the conversation list.
type Summary struct {
	Match       db.Match
	Counterpart db.User
	// LastMessage is nil for a match without messages.
	LastMessage *db.Message
}

// CreateMatch materializes the match of a pair. Idempotent: an existing
// match of the pair is returned with created == false.
func (s *Service) CreateMatch(ctx context.Context, ownerID, counterpartID uint64) (m *db.Match, created bool, err error) {
	if ownerID == counterpartID {
		ve := domain.NewValidationError()
		ve.Add("counterpart_id", "cannot match with yourself")
		return nil, false, ve
	}
	err = s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		for _, id := range []uint64{ownerID, counterpartID} {
			if _, err := tx.Accounts.Get(ctx, id); err != nil {
				return err
			}
		}
		var err error
		m, created, err = tx.Matches.CreateForPair(ctx, ownerID, counterpartID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		metrics.MatchesCreated.Inc()
	}
	return m, created, nil
}

// ListActiveMatches returns accountID's active matches decorated with the
// counterpart profile and the latest message.
//
// Ordering:
//   - latest message time DESC;
//   - matches without messages after all others;
//   - ties by newer match first.
func (s *Service) ListActiveMatches(ctx context.Context, accountID uint64) ([]Summary, error) {
	var out []Summary
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		matches, err := tx.Matches.ListActiveForAccount(ctx, accountID)
		if err != nil {
			return err
		}

		ids := make([]uint64, 0, len(matches))
		for i := range matches {
			ids = append(ids, matches[i].Counterpart(accountID))
		}
		users, err := tx.Accounts.GetMany(ctx, ids)
		if err != nil {
			return err
		}

		out = make([]Summary, 0, len(matches))
		for _, m := range matches {
			last, err := tx.Messages.Latest(ctx, m.ID)
			if err != nil {
				return err
			}
			out = append(out, Summary{
				Match:       m,
				Counterpart: users[m.Counterpart(accountID)],
				LastMessage: last,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool { return newer(out[i], out[j]) })
	return out, nil
}

func newer(a, b Summary) bool {
	switch {
	case a.LastMessage != nil && b.LastMessage != nil:
		if !a.LastMessage.CreatedAt.Equal(b.LastMessage.CreatedAt) {
			return a.LastMessage.CreatedAt.After(b.LastMessage.CreatedAt)
		}
		return a.LastMessage.ID > b.LastMessage.ID
	case a.LastMessage != nil:
		return true
	case b.LastMessage != nil:
		return false
	}
	if !a.Match.CreatedAt.Equal(b.Match.CreatedAt) {
		return a.Match.CreatedAt.After(b.Match.CreatedAt)
	}
	return a.Match.ID > b.Match.ID
}

// EndMatch ends matchID on behalf of accountID.
//
// Behavior:
//   - reason is required after trimming.
//   - Only a party of the match may end it; anyone else gets
//     domain.ErrNotFound.
//   - Ending an already ended match returns domain.ErrMatchNotActive.
func (s *Service) EndMatch(ctx context.Context, accountID, matchID uint64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		ve := domain.NewValidationError()
		ve.Add("reason", "Please select a reason")
		return ve
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		m, err := tx.Matches.GetForParty(ctx, matchID, accountID, true)
		if err != nil {
			return err
		}
		if m.Status != domain.MatchActive {
			return domain.ErrMatchNotActive
		}
		return tx.Matches.End(ctx, matchID, accountID, reason, s.appCtx.Now())
	})
	if err != nil {
		return err
	}

	metrics.MatchesEnded.Inc()
	s.appCtx.Logger.Info("match ended", "match", matchID, "by", accountID, "reason", reason)
	return nil
}
