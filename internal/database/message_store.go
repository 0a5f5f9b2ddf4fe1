package database

import (
	"context"
	"fmt"

	"messageboard/backend/internal/models"

	"gorm.io/gorm"
)

// MessageStore persists board messages in a single table.
// It is safe for concurrent use; every call borrows a pooled connection for its duration.
type MessageStore struct {
	db *gorm.DB
}

// NewMessageStore wraps an open connection pool.
func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// EnsureSchema creates the messages table if it does not exist yet.
// Existing rows are left untouched, so it is safe to call on every start.
func (s *MessageStore) EnsureSchema(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Message{}); err != nil {
		return fmt.Errorf("%w: create messages table: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Append stores a new message. The id is assigned by the database engine.
func (s *MessageStore) Append(ctx context.Context, username, message string) (models.Message, error) {
	if username == "" || message == "" {
		return models.Message{}, ErrMissingField
	}

	msg := models.Message{Username: username, Body: message}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return models.Message{}, fmt.Errorf("%w: insert message: %v", ErrStoreUnavailable, err)
	}
	return msg, nil
}

// Sample returns up to n messages picked at random. Order is not stable between calls.
// An empty table yields ErrNoMessages; a missing table yields ErrStoreUnavailable.
func (s *MessageStore) Sample(ctx context.Context, n int) ([]models.Message, error) {
	if n <= 0 {
		return []models.Message{}, nil
	}

	var msgs []models.Message
	if err := s.db.WithContext(ctx).Order("RANDOM()").Limit(n).Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("%w: sample messages: %v", ErrStoreUnavailable, err)
	}
	if len(msgs) == 0 {
		return nil, ErrNoMessages
	}
	return msgs, nil
}

// Count reports how many messages are stored.
func (s *MessageStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Message{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: count messages: %v", ErrStoreUnavailable, err)
	}
	return total, nil
}

// Close releases the underlying connection pool.
func (s *MessageStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
