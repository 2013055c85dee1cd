package sql

import (
	"errors"

	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ListConversations(db *gorm.DB, params models.ConversationQueryParams) ([]models.Conversation, error) {
	conversations := []models.Conversation{}
	query := db.Model(&models.Conversation{})
	if params.Platform != "" {
		query = query.Where("platform = ?", params.Platform)
	}
	err := query.Order("created_at DESC").Find(&conversations).Error
	return conversations, err
}

func GetConversationByID(db *gorm.DB, id uuid.UUID) (models.Conversation, error) {
	var conversation models.Conversation

	if err := db.Where("id = ?", id).First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Conversation{}, apierrors.NewAPIError(404, apierrors.ErrConversationNotFound)
		}
		return models.Conversation{}, err
	}

	return conversation, nil
}

// ListMessages returns the messages of a conversation, oldest first.
func ListMessages(db *gorm.DB, conversationID uuid.UUID) ([]models.Message, error) {
	if _, err := GetConversationByID(db, conversationID); err != nil {
		return nil, err
	}

	messages := []models.Message{}
	err := db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// CreateMessage stores the message and refreshes the conversation preview.
// A bot reply marks the conversation as read.
func CreateMessage(db *gorm.DB, message *models.Message, previewTime string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetConversationByID(tx, message.ConversationID); err != nil {
			return err
		}

		if err := tx.Create(message).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"last_message": message.Content,
			"time":         previewTime,
		}
		if message.IsFromBot {
			updates["unread_count"] = 0
		} else {
			updates["unread_count"] = gorm.Expr("unread_count + 1")
		}

		return tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Updates(updates).Error
	})
}
