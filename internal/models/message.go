package models

import "time"

// Message is a single post on the board: a handle and the text submitted with it.
// Rows are append-only; nothing updates or deletes them.
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"column:username;not null"`
	Body      string    `gorm:"column:message;not null"`
	CreatedAt time.Time
}

// TableName pins the table name used by GORM.
func (Message) TableName() string {
	return "messages"
}
