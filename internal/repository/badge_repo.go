package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
)

// BadgeRepository stores earned badges, one row per (account, badge).
type BadgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository creates a new repository bound to the given DB connection.
func NewBadgeRepository(database *gorm.DB) *BadgeRepository {
	return &BadgeRepository{db: database}
}

// Award inserts the badge if the account does not have it yet. It reports
// whether a row was written.
func (r *BadgeRepository) Award(
	ctx context.Context,
	accountID uint64,
	badge domain.BadgeID,
	at time.Time,
) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(&db.AccountBadge{AccountID: accountID, BadgeID: badge, EarnedAt: at})
	if res.Error != nil {
		return false, fmt.Errorf("award badge: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// List returns the badges of accountID in the order they were earned.
func (r *BadgeRepository) List(ctx context.Context, accountID uint64) ([]db.AccountBadge, error) {
	var rows []db.AccountBadge
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("earned_at ASC, badge_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	return rows, nil
}
