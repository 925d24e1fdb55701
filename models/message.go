package models

import (
	"strings"
	"time"
)

const (
	MessageTypeText = "text"
	MessageTypeFile = "file"
)

// Message is a single pairwise message. Rows are insert-only except for the
// is_read flag, which only ever moves false -> true. The auto-increment ID is
// the tie-breaker for messages persisted within the same timestamp.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FromUserID     uint      `gorm:"not null;index:idx_messages_from_to" json:"from_user_id"`
	ToUserID       uint      `gorm:"not null;index:idx_messages_from_to" json:"to_user_id"`
	Content        string    `json:"content"`
	MessageType    string    `gorm:"default:text" json:"message_type"`
	AttachmentURL  string    `json:"attachment_url,omitempty"`
	AttachmentName string    `json:"attachment_name,omitempty"`
	AttachmentSize int64     `json:"attachment_size,omitempty"`

	// AttachmentThumbnailURL is set for image attachments only.
	AttachmentThumbnailURL string `json:"attachment_thumbnail_url,omitempty"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

func (m *Message) HasAttachment() bool {
	return m.AttachmentURL != ""
}

// Blank reports whether the message carries neither text nor a file.
func (m *Message) Blank() bool {
	return strings.TrimSpace(m.Content) == "" && !m.HasAttachment()
}

type SendMessageRequest struct {
	ToUserID uint   `json:"to_user_id" binding:"required"`
	Content  string `json:"content"`
}

// Attachment is what the attachment handler returns after a successful store.
type Attachment struct {
	URL          string `json:"url"`
	OriginalName string `json:"original_name"`
	SizeBytes    int64  `json:"size_bytes"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Conversation is a derived view, never persisted: the counterpart plus the
// most recent message between the viewer and them, and how many of their
// messages the viewer has not read yet.
type Conversation struct {
	Counterpart UserResponse `json:"user"`
	LastMessage Message      `json:"last_message"`
	UnreadCount int          `json:"unread_count"`
}
