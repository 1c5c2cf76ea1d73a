package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/oggyb/accountadate/internal/db"
)

// MessageRepository provides data access methods for the Message model.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Create appends msg and fills its ID and CreatedAt.
func (r *MessageRepository) Create(ctx context.Context, msg *db.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// List returns the messages of matchID oldest first, ordered by
// (created_at, id). afterID > 0 keeps only rows inserted after that
// message; limit <= 0 means no limit.
func (r *MessageRepository) List(
	ctx context.Context,
	matchID, afterID uint64,
	limit int,
) ([]db.Message, error) {
	query := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at ASC, id ASC")
	if afterID > 0 {
		query = query.Where("id > ?", afterID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var msgs []db.Message
	if err := query.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Latest returns the newest message of matchID, or nil when the match has
// none.
func (r *MessageRepository) Latest(ctx context.Context, matchID uint64) (*db.Message, error) {
	var msg db.Message
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at DESC, id DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest message: %w", err)
	}
	return &msg, nil
}

// FirstBySender returns the oldest message senderID ever sent, or nil.
func (r *MessageRepository) FirstBySender(ctx context.Context, senderID uint64) (*db.Message, error) {
	var msg db.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at ASC, id ASC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first message: %w", err)
	}
	return &msg, nil
}

// CountConversationsBySender counts distinct matches senderID wrote in.
func (r *MessageRepository) CountConversationsBySender(ctx context.Context, senderID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Message{}).
		Where("sender_id = ?", senderID).
		Distinct("match_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count conversations: %w", err)
	}
	return count, nil
}
