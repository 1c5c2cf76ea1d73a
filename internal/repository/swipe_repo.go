package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/utils/pagination"
)

// SwipeRepository provides data access methods for the Swipe model.
// It encapsulates all queries related to likes/passes between accounts.
type SwipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository creates a new repository bound to the given DB connection.
func NewSwipeRepository(database *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: database}
}

// Upsert records actor's swipe on target.
//
// Behavior:
//   - If (actor_id, target_id) exists the row takes the new polarity
//     (latest polarity wins).
//   - Otherwise a new row is inserted.
//   - Composite PK keeps one row per pair, so repeating a swipe is idempotent.
func (r *SwipeRepository) Upsert(
	ctx context.Context,
	actorID, targetID uint64,
	polarity domain.Polarity,
) error {
	swipe := db.Swipe{
		ActorID:  actorID,
		TargetID: targetID,
		Polarity: polarity,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"polarity", "updated_at"}),
		}).
		Create(&swipe).Error
	if err != nil {
		return fmt.Errorf("upsert swipe: %w", err)
	}
	return nil
}

// Get returns actor's swipe on target.
func (r *SwipeRepository) Get(ctx context.Context, actorID, targetID uint64) (*db.Swipe, error) {
	var s db.Swipe
	err := r.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ?", actorID, targetID).
		First(&s).Error
	if err != nil {
		return nil, notFound(err, "get swipe")
	}
	return &s, nil
}

// HasLiked checks whether actor currently likes target. On mysql it is a
// locking read, so it sees the latest committed swipe rather than the
// transaction snapshot.
func (r *SwipeRepository) HasLiked(
	ctx context.Context,
	actorID, targetID uint64,
) (bool, error) {
	var count int64
	err := reciprocalLike(r.db.WithContext(ctx), actorID, targetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return count > 0, nil
}

func reciprocalLike(tx *gorm.DB, actorID, targetID uint64) *gorm.DB {
	return forUpdate(tx).
		Model(&db.Swipe{}).
		Where("actor_id = ? AND target_id = ? AND polarity = ?", actorID, targetID, domain.PolarityLike)
}

// oneSidedLikes selects likes on accountID that accountID has not answered
// with a swipe of its own.
func (r *SwipeRepository) oneSidedLikes(ctx context.Context, accountID uint64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("swipes s").
		Where("s.target_id = ? AND s.polarity = ?", accountID, domain.PolarityLike).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s2
				WHERE s2.actor_id = ?
				  AND s2.target_id = s.actor_id
			)`, accountID)
}

// ListAdmirers returns accounts whose like on accountID is still one-sided.
//
// Behavior:
//   - Excludes mutual likes and actors accountID already passed.
//   - Ordered by updated_at DESC, actor_id DESC.
//   - Supports cursor-based pagination via paginationToken.
func (r *SwipeRepository) ListAdmirers(
	ctx context.Context,
	accountID uint64,
	paginationToken *string,
	limit int,
) ([]db.Swipe, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.oneSidedLikes(ctx, accountID).
		Order("s.updated_at DESC, s.actor_id DESC").
		Limit(limit + 1)

	// apply cursor
	if cursor.ID > 0 && cursor.Unix > 0 {
		ts := time.UnixMilli(cursor.Unix).UTC()
		query = query.Where(
			"(s.updated_at < ? OR (s.updated_at = ? AND s.actor_id < ?))",
			ts, ts, cursor.ID,
		)
	}

	var swipes []db.Swipe
	if err := query.Find(&swipes).Error; err != nil {
		return nil, nil, fmt.Errorf("list admirers: %w", err)
	}

	var nextToken *string
	if len(swipes) > limit {
		last := swipes[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			ID:   last.ActorID,
			Unix: last.UpdatedAt.UnixMilli(),
		})
		nextToken = &token
		swipes = swipes[:limit]
	}
	return swipes, nextToken, nil
}

// CountAdmirers counts the same set ListAdmirers pages through. The Redis
// cache sits in front of it.
func (r *SwipeRepository) CountAdmirers(ctx context.Context, accountID uint64) (int64, error) {
	var count int64
	if err := r.oneSidedLikes(ctx, accountID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count admirers: %w", err)
	}
	return count, nil
}
