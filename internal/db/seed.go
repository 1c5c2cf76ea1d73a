package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oggyb/accountadate/internal/domain"
	"github.com/oggyb/accountadate/internal/logger"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password"

// SeedTestData resets the database and populates it with demo data.
//
// Behavior:
//  1. Clears account_badges, messages, matches, swipes and users.
//  2. Creates `users` accounts with profiles (user1@example.com ... ).
//  3. Every account swipes on ~half of the others with ~70% likes; every
//     3rd like is answered with a like so there are plenty of matches.
//     Matches exist exactly for the pairs with two reciprocal likes.
//  4. Each match gets a short conversation; every 4th match is ended.
//
// seed makes the run reproducible; 0 picks a random one.
func SeedTestData(db *gorm.DB, users int, seed int64) error {
	f := gofakeit.New(seed)

	// --- Fresh start ---
	for _, table := range []string{"account_badges", "messages", "matches", "swipes", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Reset auto-increment sequences
	switch db.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"messages", "matches", "users"} {
			if err := db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1").Error; err != nil {
				logger.Warn("failed to reset sequence", "table", table, "err", err)
			}
		}
	case "sqlite":
		if err := db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('messages', 'matches', 'users')").Error; err != nil {
			logger.Warn("failed to reset sequences", "err", err)
		}
	}

	logger.Info("cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// --- Accounts ---
	ids := make([]uint64, 0, users)
	for i := 1; i <= users; i++ {
		interests := make([]string, 0, 3)
		for j := 0; j < 3; j++ {
			interests = append(interests, f.Hobby())
		}
		user := User{
			Username:     f.Username(),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Bio:          f.Sentence(12),
			Interests:    domain.NormalizeInterests(interests),
			AvatarRef:    f.ImageURL(256, 256),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		ids = append(ids, user.ID)
	}
	logger.Info("seeded accounts", "count", len(ids))

	// --- Swipes and matches ---
	// Each direction of a pair is written once; a like meeting a like back
	// gets its match immediately.
	written := make(map[[2]uint64]domain.Polarity)
	swipes, matches, counter := 0, 0, 0
	record := func(actorID, targetID uint64, polarity domain.Polarity) error {
		if err := upsertSwipe(db, actorID, targetID, polarity); err != nil {
			return fmt.Errorf("failed to seed swipe: %w", err)
		}
		written[[2]uint64{actorID, targetID}] = polarity
		swipes++

		if !polarity.IsLike() || written[[2]uint64{targetID, actorID}] != domain.PolarityLike {
			return nil
		}
		created, err := seedMatch(db, f, actorID, targetID, matches)
		if err != nil {
			return err
		}
		if created {
			matches++
		}
		return nil
	}

	for _, actorID := range ids {
		for _, targetID := range ids {
			if actorID == targetID || f.Bool() {
				continue
			}
			if _, done := written[[2]uint64{actorID, targetID}]; done {
				continue
			}

			polarity := domain.PolarityPass
			if f.Number(1, 100) <= 70 {
				polarity = domain.PolarityLike
			}
			if err := record(actorID, targetID, polarity); err != nil {
				return err
			}

			if !polarity.IsLike() {
				continue
			}
			counter++
			if counter%3 != 0 {
				continue
			}
			// answer with a like unless target already swiped on actor
			if _, done := written[[2]uint64{targetID, actorID}]; done {
				continue
			}
			if err := record(targetID, actorID, domain.PolarityLike); err != nil {
				return err
			}
		}
	}

	logger.Info("seeded swipes and matches", "swipes", swipes, "matches", matches)
	return nil
}

func upsertSwipe(db *gorm.DB, actorID, targetID uint64, polarity domain.Polarity) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"polarity", "updated_at"}),
	}).Create(&Swipe{ActorID: actorID, TargetID: targetID, Polarity: polarity}).Error
}

func seedMatch(db *gorm.DB, f *gofakeit.Faker, ownerID, counterpartID uint64, n int) (bool, error) {
	low, high := domain.PairKey(ownerID, counterpartID)
	match := Match{
		OwnerID:       ownerID,
		CounterpartID: counterpartID,
		PairLowID:     low,
		PairHighID:    high,
		Status:        domain.MatchActive,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pair_low_id"}, {Name: "pair_high_id"}},
		DoNothing: true,
	}).Create(&match)
	if res.Error != nil {
		return false, fmt.Errorf("failed to seed match: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	start := time.Now().UTC().Add(-time.Duration(f.Number(1, 240)) * time.Hour)
	lines := f.Number(0, 6)
	for i := 0; i < lines; i++ {
		sender := ownerID
		if i%2 == 1 {
			sender = counterpartID
		}
		msg := Message{
			MatchID:   match.ID,
			SenderID:  sender,
			Body:      strings.TrimSpace(f.Sentence(f.Number(2, 10))),
			CreatedAt: start.Add(time.Duration(i) * time.Minute).Truncate(time.Millisecond),
		}
		if err := db.Create(&msg).Error; err != nil {
			return false, fmt.Errorf("failed to seed message: %w", err)
		}
	}

	if n%4 == 3 {
		reason := domain.ReasonNotCompatible
		now := time.Now().UTC().Truncate(time.Millisecond)
		if err := db.Model(&match).Updates(map[string]any{
			"status":   domain.MatchEnded,
			"reason":   reason,
			"ended_by": ownerID,
			"ended_at": now,
		}).Error; err != nil {
			return false, fmt.Errorf("failed to seed ended match: %w", err)
		}
	}
	return true, nil
}
