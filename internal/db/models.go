package db

import (
	"time"

	"github.com/oggyb/accountadate/internal/domain"
)

// User table
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"index;size:64;not null"`
	Email        string    `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Bio          string    `gorm:"type:text"`
	Interests    []string  `gorm:"serializer:json;type:text"`
	AvatarRef    string    `gorm:"size:512"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Swipe is an actor's like/pass on a target.
//
// Composite PK: (ActorID, TargetID)
//   - One row per directed pair; a re-swipe overwrites the polarity.
//
// Indexes:
//   - idx_target_polarity_updated_actor(target_id, polarity, updated_at DESC, actor_id)
//     Serves the admirers list and count.
type Swipe struct {
	ActorID   uint64          `gorm:"primaryKey"`
	TargetID  uint64          `gorm:"primaryKey;index:idx_target_polarity_updated_actor,priority:1"`
	Polarity  domain.Polarity `gorm:"size:8;not null;index:idx_target_polarity_updated_actor,priority:2"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime;index:idx_target_polarity_updated_actor,priority:3,sort:desc"`
}

// Match is the mutual-like relationship between two accounts.
//
// OwnerID is the account whose like completed the pair, CounterpartID the
// other one. PairLowID/PairHighID hold the same two ids in ascending order
// and carry the unique index, so the pair maps to exactly one row whichever
// side acts second.
type Match struct {
	ID            uint64             `gorm:"primaryKey;autoIncrement"`
	OwnerID       uint64             `gorm:"not null;index"`
	CounterpartID uint64             `gorm:"not null;index"`
	PairLowID     uint64             `gorm:"not null;uniqueIndex:idx_match_pair,priority:1"`
	PairHighID    uint64             `gorm:"not null;uniqueIndex:idx_match_pair,priority:2"`
	Status        domain.MatchStatus `gorm:"size:16;not null;default:active;index"`
	Reason        *string            `gorm:"size:255"`
	EndedBy       *uint64            `gorm:"index"`
	EndedAt       *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// Counterpart returns the party of m that is not accountID.
func (m *Match) Counterpart(accountID uint64) uint64 {
	if m.OwnerID == accountID {
		return m.CounterpartID
	}
	return m.OwnerID
}

// HasParty reports whether accountID is one of the two matched accounts.
func (m *Match) HasParty(accountID uint64) bool {
	return m.OwnerID == accountID || m.CounterpartID == accountID
}

// Message is one chat line inside a match. Rows are append-only and ordered
// by (created_at, id).
type Message struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	MatchID   uint64    `gorm:"not null;index:idx_messages_match_created,priority:1"`
	SenderID  uint64    `gorm:"not null;index"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_messages_match_created,priority:2"`
}

// AccountBadge records that an account earned a badge. Rows are only ever
// inserted.
type AccountBadge struct {
	AccountID uint64         `gorm:"primaryKey"`
	BadgeID   domain.BadgeID `gorm:"primaryKey;size:32"`
	EarnedAt  time.Time      `gorm:"not null"`
}

// Models lists every table in migration order.
func Models() []any {
	return []any{&User{}, &Swipe{}, &Match{}, &Message{}, &AccountBadge{}}
}
