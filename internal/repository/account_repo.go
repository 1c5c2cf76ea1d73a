package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/utils/pagination"
)

// AccountRepository provides data access methods for the User model.
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new repository bound to the given DB connection.
func NewAccountRepository(database *gorm.DB) *AccountRepository {
	return &AccountRepository{db: database}
}

// Create inserts user and fills its ID. A taken email returns
// domain.ErrDuplicateEmail.
func (r *AccountRepository) Create(ctx context.Context, user *db.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Get loads one account by id.
func (r *AccountRepository) Get(ctx context.Context, id uint64) (*db.User, error) {
	var u db.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "get account")
	}
	return &u, nil
}

// LockPair loads accounts a and b with row locks taken in ascending id
// order, so two swipes between the same accounts run one after the other.
// Missing ids are absent from the result.
func (r *AccountRepository) LockPair(ctx context.Context, a, b uint64) (map[uint64]db.User, error) {
	low, high := domain.PairKey(a, b)
	var users []db.User
	if err := lockAccounts(r.db.WithContext(ctx), []uint64{low, high}).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}
	out := make(map[uint64]db.User, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// lockAccounts expects ids sorted ascending.
func lockAccounts(tx *gorm.DB, ids []uint64) *gorm.DB {
	return forUpdate(tx).Where("id IN ?", ids).Order("id")
}

// GetMany loads accounts by id, keyed by id. Missing ids are simply absent.
func (r *AccountRepository) GetMany(ctx context.Context, ids []uint64) (map[uint64]db.User, error) {
	out := make(map[uint64]db.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []db.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// FindByEmail looks an account up by its normalized email.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	var u db.User
	err := r.db.WithContext(ctx).
		Where("email = ?", domain.NormalizeEmail(email)).
		First(&u).Error
	if err != nil {
		return nil, notFound(err, "find account")
	}
	return &u, nil
}

// ExistsByEmail reports whether an account already uses email.
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("email = ?", domain.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile overwrites bio, interests and avatar of account id.
func (r *AccountRepository) UpdateProfile(
	ctx context.Context,
	id uint64,
	bio string,
	interests []string,
	avatarRef string,
) error {
	u, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	u.Bio = bio
	u.Interests = interests
	u.AvatarRef = avatarRef
	err = r.db.WithContext(ctx).
		Model(u).
		Select("Bio", "Interests", "AvatarRef", "UpdatedAt").
		Updates(u).Error
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ListCandidates returns accounts the actor has not swiped on yet.
//
// Behavior:
//   - Excludes the actor and every account with a swipe row from the actor,
//     whatever its polarity.
//   - Ordered by id ASC; the cursor carries the last id.
func (r *AccountRepository) ListCandidates(
	ctx context.Context,
	actorID uint64,
	paginationToken *string,
	limit int,
) ([]db.User, *string, error) {
	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	var users []db.User
	err = r.db.WithContext(ctx).
		Table("users u").
		Where("u.id <> ? AND u.id > ?", actorID, cursor.ID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM swipes s
				WHERE s.actor_id = ?
				  AND s.target_id = u.id
			)`, actorID).
		Order("u.id ASC").
		Limit(limit + 1).
		Find(&users).Error
	if err != nil {
		return nil, nil, fmt.Errorf("list candidates: %w", err)
	}

	var nextToken *string
	if len(users) > limit {
		token, _ := pagination.Encode(pagination.Cursor{ID: users[limit-1].ID})
		nextToken = &token
		users = users[:limit]
	}
	return users, nextToken, nil
}
