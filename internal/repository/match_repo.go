package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
)

// MatchRepository provides data access methods for the Match model.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// CreateForPair inserts an active match for the unordered pair
// {ownerID, counterpartID} unless the pair already has one.
//
// Behavior:
//   - Insert-if-absent on (pair_low_id, pair_high_id).
//   - created is false when a row already existed; that row is returned
//     whatever its status, ended matches are never reopened.
func (r *MatchRepository) CreateForPair(
	ctx context.Context,
	ownerID, counterpartID uint64,
) (match *db.Match, created bool, err error) {
	low, high := domain.PairKey(ownerID, counterpartID)
	m := db.Match{
		OwnerID:       ownerID,
		CounterpartID: counterpartID,
		PairLowID:     low,
		PairHighID:    high,
		Status:        domain.MatchActive,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_low_id"}, {Name: "pair_high_id"}},
			DoNothing: true,
		}).
		Create(&m)
	if res.Error != nil {
		return nil, false, fmt.Errorf("create match: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return &m, true, nil
	}

	existing, err := r.GetByPair(ctx, ownerID, counterpartID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// GetByPair returns the match of two accounts in either order.
func (r *MatchRepository) GetByPair(ctx context.Context, a, b uint64) (*db.Match, error) {
	low, high := domain.PairKey(a, b)
	var m db.Match
	err := r.db.WithContext(ctx).
		Where("pair_low_id = ? AND pair_high_id = ?", low, high).
		First(&m).Error
	if err != nil {
		return nil, notFound(err, "get match")
	}
	return &m, nil
}

// Get loads a match by id.
func (r *MatchRepository) Get(ctx context.Context, id uint64) (*db.Match, error) {
	var m db.Match
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, "get match")
	}
	return &m, nil
}

// GetForParty loads match id only if accountID is one of its parties;
// anyone else gets domain.ErrNotFound. lock takes a row lock on dialects
// that have one.
func (r *MatchRepository) GetForParty(
	ctx context.Context,
	id, accountID uint64,
	lock bool,
) (*db.Match, error) {
	query := r.db.WithContext(ctx)
	if lock {
		query = forUpdate(query)
	}
	var m db.Match
	if err := query.First(&m, id).Error; err != nil {
		return nil, notFound(err, "get match")
	}
	if !m.HasParty(accountID) {
		return nil, fmt.Errorf("get match %d: %w", id, domain.ErrNotFound)
	}
	return &m, nil
}

// End moves match id from active to ended.
//
// Behavior:
//   - Conditional update on status = active: concurrent enders cannot both
//     succeed.
//   - A match that is already ended returns domain.ErrMatchNotActive.
func (r *MatchRepository) End(
	ctx context.Context,
	id, endedBy uint64,
	reason string,
	at time.Time,
) error {
	res := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("id = ? AND status = ?", id, domain.MatchActive).
		Updates(map[string]any{
			"status":   domain.MatchEnded,
			"reason":   reason,
			"ended_by": endedBy,
			"ended_at": at,
		})
	if res.Error != nil {
		return fmt.Errorf("end match: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return domain.ErrMatchNotActive
	}
	return nil
}

// ListActiveForAccount returns active matches where accountID is either
// party, newest first.
func (r *MatchRepository) ListActiveForAccount(ctx context.Context, accountID uint64) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("status = ? AND (owner_id = ? OR counterpart_id = ?)", domain.MatchActive, accountID, accountID).
		Order("created_at DESC, id DESC").
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// CountForAccount counts matches accountID is a party of, any status.
func (r *MatchRepository) CountForAccount(ctx context.Context, accountID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("owner_id = ? OR counterpart_id = ?", accountID, accountID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

// CountEndedBy counts matches accountID ended with a reason.
func (r *MatchRepository) CountEndedBy(ctx context.Context, accountID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("ended_by = ? AND status = ? AND reason IS NOT NULL AND reason <> ''", accountID, domain.MatchEnded).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count ended matches: %w", err)
	}
	return count, nil
}
