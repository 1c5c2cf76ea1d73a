package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/accountadate/internal/domain"
)

// Store groups the repositories over one gorm handle. The handle is either
// the connection pool or, inside WithTx, the open transaction.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
	inTx    bool

	Accounts *AccountRepository
	Swipes   *SwipeRepository
	Matches  *MatchRepository
	Messages *MessageRepository
	Badges   *BadgeRepository
}

// NewStore binds all repositories to database. timeout bounds every
// WithTx call; zero disables the bound.
func NewStore(database *gorm.DB, timeout time.Duration) *Store {
	return bind(database, timeout, false)
}

func bind(database *gorm.DB, timeout time.Duration, inTx bool) *Store {
	return &Store{
		db:       database,
		timeout:  timeout,
		inTx:     inTx,
		Accounts: NewAccountRepository(database),
		Swipes:   NewSwipeRepository(database),
		Matches:  NewMatchRepository(database),
		Messages: NewMessageRepository(database),
		Badges:   NewBadgeRepository(database),
	}
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB { return s.db }

// WithTx runs fn in a single transaction with repositories bound to it.
// fn must use the ctx it is handed so queries observe the timeout.
//
// Behavior:
//   - fn returning an error rolls everything back.
//   - The whole call is bounded by the store timeout; running out of time
//     returns an error matching domain.ErrTimeout.
//   - Called on a Store that is already inside a transaction, fn joins it.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, bind(tx, s.timeout, true))
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

// forUpdate adds a row lock where the dialect supports it. SQLite has a
// single writer and no FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// notFound turns gorm's sentinel into the domain one, keeping the context.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
