package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Platform string

const (
	PlatformTelegramBot      Platform = "telegram_bot"
	PlatformTelegramPersonal Platform = "telegram_personal"
	PlatformMessenger        Platform = "messenger"
)

type Conversation struct {
	ID          uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name        string    `gorm:"not null"             json:"name"`
	Initials    string    `                            json:"initials"`
	LastMessage string    `                            json:"lastMessage"`
	Time        string    `                            json:"time"`
	UnreadCount int       `gorm:"not null;default:0"   json:"unreadCount"`
	IsOnline    bool      `gorm:"not null;default:false" json:"isOnline"`
	Platform    Platform  `gorm:"not null"             json:"platform"`
	CreatedAt   time.Time `                            json:"createdAt"`
}

func (c *Conversation) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primarykey"   json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null"     json:"conversationId"`
	Content        string    `gorm:"not null"               json:"content"`
	IsFromBot      bool      `gorm:"not null;default:false" json:"isFromBot"`
	Timestamp      string    `                              json:"timestamp"`
	CreatedAt      time.Time `                              json:"createdAt"`
}

func (m *Message) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type MessageActivity struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	IsFromBot      bool      `json:"is_from_bot"`
}

func (m *Message) ToActivity() MessageActivity {
	return MessageActivity{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		IsFromBot:      m.IsFromBot,
	}
}

type ConversationQueryParams struct {
	Platform string `json:"platform" validate:"omitempty,oneof=telegram_bot telegram_personal messenger"`
}

// MessageCreateBody carries either free text or the key of a canned reply.
type MessageCreateBody struct {
	Content     string `json:"content"     validate:"required_without=TemplateKey,excluded_with=TemplateKey,max=4000"`
	TemplateKey string `json:"templateKey" validate:"required_without=Content,max=64"`
	IsFromBot   *bool  `json:"isFromBot"`
}

type ReplyTemplate struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
