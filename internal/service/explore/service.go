package explore

import (
	"context"
	"fmt"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/metrics"
	"github.com/oggyb/accountadate/internal/repository"
	"github.com/oggyb/accountadate/internal/utils/pagination"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service is the swipe deck: it records swipes, detects mutual likes and
// lists candidates and admirers.
// It contains the business logic on top of repository and cache layers.
type Service struct {
	appCtx *app.AppContext
	store  *repository.Store
}

// NewExploreService creates a new Explore service with dependencies from AppContext.
// Dependencies include:
//   - Store for swipes, accounts and matches
//   - RedisCache for admirer counters
func NewExploreService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx: appCtx,
		store:  appCtx.Store,
	}
}

// SwipeResult reports what a swipe did. Match is set whenever the pair has
// a match, Matched only when this swipe created it.
type SwipeResult struct {
	Matched bool
	Match   *db.Match
}

// RecordSwipe stores actor's swipe on target and runs match detection.
//
// Behavior:
//   - actor == target is a validation error; an unknown target is
//     domain.ErrNotFound and an unknown actor (a token outliving its
//     account) is domain.ErrUnauthenticated.
//   - Both account rows are locked in id order before the upsert, so
//     concurrent swipes of one pair serialize on every driver.
//   - Upsert, reciprocal check and match creation run in ONE transaction, so
//     two accounts liking each other at the same time end up with exactly
//     one match.
//   - Cached admirer counts of both parties are dropped after commit.
//
// Example:
//
//	svc.RecordSwipe(ctx, 1, 2, domain.PolarityLike) // user 1 liked user 2
func (s *Service) RecordSwipe(
	ctx context.Context,
	actorID, targetID uint64,
	polarity domain.Polarity,
) (*SwipeResult, error) {
	log := s.appCtx.Logger
	log.Debug("RecordSwipe called", "actor", actorID, "target", targetID, "polarity", polarity)

	if actorID == targetID {
		ve := domain.NewValidationError()
		ve.Add("target_account_id", "cannot swipe on yourself")
		return nil, ve
	}
	if polarity != domain.PolarityLike && polarity != domain.PolarityPass {
		ve := domain.NewValidationError()
		ve.Add("polarity", "polarity must be like or pass")
		return nil, ve
	}

	res := &SwipeResult{}
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		accounts, err := tx.Accounts.LockPair(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if _, ok := accounts[actorID]; !ok {
			return fmt.Errorf("actor %d: %w", actorID, domain.ErrUnauthenticated)
		}
		if _, ok := accounts[targetID]; !ok {
			return fmt.Errorf("target %d: %w", targetID, domain.ErrNotFound)
		}
		if err := tx.Swipes.Upsert(ctx, actorID, targetID, polarity); err != nil {
			return err
		}
		if !polarity.IsLike() {
			return nil
		}
		match, created, err := detectMatch(ctx, tx, actorID, targetID)
		if err != nil {
			return err
		}
		res.Match, res.Matched = match, created
		return nil
	})
	if err != nil {
		log.Error("RecordSwipe failed", "actor", actorID, "target", targetID, "err", err)
		return nil, err
	}

	metrics.SwipesRecorded.WithLabelValues(string(polarity)).Inc()
	if res.Matched {
		metrics.MatchesCreated.Inc()
		log.Info("match created", "match", res.Match.ID, "owner", actorID, "counterpart", targetID)
	}

	if err := s.appCtx.RedisCache.InvalidateAdmirerCounts(ctx, actorID, targetID); err != nil {
		log.Warn("admirer count invalidation failed", "err", err)
	}
	return res, nil
}

// ListCandidates returns the deck: accounts actor has not swiped on yet.
func (s *Service) ListCandidates(
	ctx context.Context,
	actorID uint64,
	paginationToken *string,
	limit int,
) ([]db.User, *string, error) {
	limit = pagination.Limit(limit, defaultPageSize, maxPageSize)

	var (
		users []db.User
		next  *string
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		var err error
		users, next, err = tx.Accounts.ListCandidates(ctx, actorID, paginationToken, limit)
		return err
	})
	return users, next, err
}

// ListAdmirers returns accounts who liked accountID and are still waiting
// for an answer. Mutual likes and passed actors are excluded.
func (s *Service) ListAdmirers(
	ctx context.Context,
	accountID uint64,
	paginationToken *string,
	limit int,
) ([]db.Swipe, *string, error) {
	limit = pagination.Limit(limit, defaultPageSize, maxPageSize)

	var (
		swipes []db.Swipe
		next   *string
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		var err error
		swipes, next, err = tx.Swipes.ListAdmirers(ctx, accountID, paginationToken, limit)
		return err
	})
	s.appCtx.Logger.Debug("ListAdmirers result", "account", accountID, "count", len(swipes))
	return swipes, next, err
}

// CountAdmirers returns how many admirers accountID has.
// Cache-first strategy:
//  1. Attempts to read from Redis (admirers:count:accountID), refreshing TTL.
//  2. On a miss or Redis error, falls back to the DB.
//  3. On DB fetch, updates Redis with a 1h TTL unless a swipe invalidated
//     the count meanwhile.
func (s *Service) CountAdmirers(ctx context.Context, accountID uint64) (int64, error) {
	rc := s.appCtx.RedisCache

	version, verr := rc.AdmirerCountVersion(ctx, accountID)

	n, ok, err := rc.GetAdmirerCount(ctx, accountID)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.appCtx.Logger.Warn("admirer count cache read failed", "err", err)
	case ok:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return n, nil
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	// fallback: DB
	var count int64
	err = s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		var err error
		count, err = tx.Swipes.CountAdmirers(ctx, accountID)
		return err
	})
	if err != nil {
		return 0, err
	}

	if verr == nil {
		if stored, err := rc.SetAdmirerCountIfVersion(ctx, accountID, count, version); err != nil {
			s.appCtx.Logger.Warn("admirer count cache write failed", "err", err)
		} else if !stored {
			s.appCtx.Logger.Debug("admirer count changed while counting, not cached", "account", accountID)
		}
	}
	return count, nil
}
