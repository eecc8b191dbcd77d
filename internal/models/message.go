package models

import "time"

// Message is a direct message between two profiles. Discount redemptions
// append a system-generated message; that message is the redemption receipt.
type Message struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	SenderID   int64     `gorm:"not null;index;column:sender_id"`
	ReceiverID int64     `gorm:"not null;index;column:receiver_id"`
	Content    string    `gorm:"type:text;not null;column:content"`
	Read       bool      `gorm:"not null;default:false;column:read"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "paw_messages"
}
