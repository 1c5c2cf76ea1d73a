package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oggyb/accountadate/internal/app"
	"github.com/oggyb/accountadate/internal/db"
	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/repository"
)

// Service implements registration, sign-in and profile management on top
// of the account repository. Every operation takes the account id
// explicitly; nothing is inferred from storage.
type Service struct {
	appCtx   *app.AppContext
	store    *repository.Store
	hashCost int
}

// NewAccountService creates a new Account service with dependencies from AppContext.
func NewAccountService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		store:    appCtx.Store,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *Service) WithHashCost(cost int) *Service {
	s.hashCost = cost
	return s
}

// Session is the result of a successful sign-in.
type Session struct {
	AccountID uint64
	Token     string
	ExpiresAt time.Time
}

// Account is a stored account plus its earned badges.
type Account struct {
	db.User
	Badges []domain.BadgeID
}

// Register creates an account after validating the sign-up form.
//
// Behavior:
//   - Validation problems come back as *domain.ValidationError and never
//     reach storage.
//   - The email is trimmed and lower-cased before it is stored.
//   - A taken email returns domain.ErrDuplicateEmail, also when two sign-ups
//     race (unique index).
func (s *Service) Register(ctx context.Context, username, email, password, confirm string) (uint64, error) {
	if err := domain.ValidateRegistration(username, email, password, confirm); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &db.User{
		Username:     strings.TrimSpace(username),
		Email:        domain.NormalizeEmail(email),
		PasswordHash: string(hash),
	}
	err = s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		exists, err := tx.Accounts.ExistsByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateEmail
		}
		return tx.Accounts.Create(ctx, user)
	})
	if err != nil {
		return 0, err
	}

	s.appCtx.Logger.Info("account registered", "account", user.ID)
	return user.ID, nil
}

// Authenticate returns the account matching email and password. Unknown
// email and wrong password both return domain.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	if err := domain.ValidateLogin(email, password); err != nil {
		return nil, err
	}

	var user *db.User
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		var err error
		user, err = tx.Accounts.FindByEmail(ctx, email)
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.appCtx.Tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{AccountID: user.ID, Token: token, ExpiresAt: exp}, nil
}

// EmailExists reports whether email is already registered.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		var err error
		exists, err = tx.Accounts.ExistsByEmail(ctx, email)
		return err
	})
	return exists, err
}

// UpdateProfile stores the profile-setup form: bio and interests are
// required, interests are normalized tags.
func (s *Service) UpdateProfile(
	ctx context.Context,
	accountID uint64,
	bio string,
	interests []string,
	avatarRef string,
) (*Account, error) {
	tags := domain.NormalizeInterests(interests)
	if err := domain.ValidateProfile(bio, tags); err != nil {
		return nil, err
	}

	var acc *Account
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		if err := tx.Accounts.UpdateProfile(ctx, accountID, strings.TrimSpace(bio), tags, strings.TrimSpace(avatarRef)); err != nil {
			return err
		}
		var err error
		acc, err = load(ctx, tx, accountID)
		return err
	})
	return acc, err
}

// GetAccount returns the account with its earned badges.
func (s *Service) GetAccount(ctx context.Context, accountID uint64) (*Account, error) {
	var acc *Account
	err := s.store.WithTx(ctx, func(ctx context.Context, tx *repository.Store) error {
		var err error
		acc, err = load(ctx, tx, accountID)
		return err
	})
	return acc, err
}

func load(ctx context.Context, tx *repository.Store, accountID uint64) (*Account, error) {
	user, err := tx.Accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Badges.List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	acc := &Account{User: *user, Badges: make([]domain.BadgeID, 0, len(rows))}
	for _, r := range rows {
		if _, ok := domain.LookupBadge(r.BadgeID); !ok {
			continue // retired from the catalogue
		}
		acc.Badges = append(acc.Badges, r.BadgeID)
	}
	return acc, nil
}
