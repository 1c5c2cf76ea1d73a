package badge

import (
	"context"
	"time"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/metrics"
	"github.com/oggyb/accountadate/internal/repository"
)

// Service evaluates achievements from an account's activity.
type Service struct {
	appCtx *app.AppContext
	store  *repository.Store
}

// NewBadgeService creates a new Badge service with dependencies from AppContext.
func NewBadgeService(appCtx *app.AppContext) *Service {
	return &Service{appCtx: appCtx, store: appCtx.Store}
}

// Progress is the state of one badge for one account.
type Progress struct {
	Badge domain.Badge
	// Value is the current metric, e.g. matches so far for MATCH_MAKER.
	Value       int64
	Earned      bool
	NewlyEarned bool
}

// Ratio is Value/Requirement capped at 1.
func (p Progress) Ratio() float64 {
	if p.Badge.Requirement <= 0 || p.Value >= p.Badge.Requirement {
		return 1
	}
	if p.Value <= 0 {
		return 0
	}
	return float64(p.Value) / float64(p.Badge.Requirement)
}

// Evaluation is the outcome of Evaluate. Progress follows domain.Badges
// order.
type Evaluation struct {
	AccountID uint64
	Earned    []domain.BadgeID
	Progress  []Progress
}

// Evaluate recomputes every badge metric of accountID and stores the
// badges whose threshold is crossed for the first time.
//
// Metrics:
//   - CONVERSATION_STARTER: distinct matches the account wrote in.
//   - RESPECTFUL_ENDER: matches the account ended with a reason.
//   - ACTIVE_DATER: whole days since the account's first message.
//   - MATCH_MAKER: matches the account is a party of, ended ones included.
//
// Reads and inserts share one transaction. Badges are insert-if-absent
// rows, so the earned set never shrinks.
func (s *Service) Evaluate(ctx context.Context, accountID uint64) (*Evaluation, error) {
	now := s.appCtx.Now()
	eval := &Evaluation{AccountID: accountID}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		if _, err := tx.Accounts.Get(ctx, accountID); err != nil {
			return err
		}

		values, err := metricValues(ctx, tx, accountID, now)
		if err != nil {
			return err
		}

		rows, err := tx.Badges.List(ctx, accountID)
		if err != nil {
			return err
		}
		held := make(map[domain.BadgeID]bool, len(rows))
		for _, r := range rows {
			held[r.BadgeID] = true
		}

		eval.Progress = make([]Progress, 0, len(domain.Badges))
		for _, b := range domain.Badges {
			p := Progress{Badge: b, Value: values[b.ID], Earned: held[b.ID]}
			if !p.Earned && p.Value >= b.Requirement {
				inserted, err := tx.Badges.Award(ctx, accountID, b.ID, now)
				if err != nil {
					return err
				}
				p.Earned = true
				p.NewlyEarned = inserted
			}
			eval.Progress = append(eval.Progress, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range eval.Progress {
		if p.Earned {
			eval.Earned = append(eval.Earned, p.Badge.ID)
		}
		if p.NewlyEarned {
			metrics.BadgesAwarded.WithLabelValues(string(p.Badge.ID)).Inc()
			s.appCtx.Logger.Info("badge earned", "account", accountID, "badge", p.Badge.Key)
		}
	}
	return eval, nil
}

func metricValues(
	ctx context.Context,
	tx *repository.Store,
	accountID uint64,
	now time.Time,
) (map[domain.BadgeID]int64, error) {
	conversations, err := tx.Messages.CountConversationsBySender(ctx, accountID)
	if err != nil {
		return nil, err
	}
	ended, err := tx.Matches.CountEndedBy(ctx, accountID)
	if err != nil {
		return nil, err
	}
	matches, err := tx.Matches.CountForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var days int64
	first, err := tx.Messages.FirstBySender(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if first != nil && now.After(first.CreatedAt) {
		days = int64(now.Sub(first.CreatedAt) / (24 * time.Hour))
	}

	return map[domain.BadgeID]int64{
		domain.BadgeConversationStarter: conversations,
		domain.BadgeRespectfulEnder:     ended,
		domain.BadgeActiveDater:         days,
		domain.BadgeMatchMaker:          matches,
	}, nil
}
