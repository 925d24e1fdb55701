package db

import (
	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	SaveMessage(message *models.Message) error
	GetMessagesBetween(userA, userB uint) ([]models.Message, error)
	GetMessagesInvolving(userID uint) ([]models.Message, error)
	GetMessageByAttachmentURL(url string) (*models.Message, error)
	MarkThreadRead(viewerID, counterpartID uint) (int64, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func (m *messageRepo) SaveMessage(message *models.Message) error {
	if message == nil {
		return errors.New("message is nil")
	}
	if err := m.DB.Create(message).Error; err != nil {
		return errors.Wrap(err, "unable to save message")
	}
	return nil
}

// GetMessagesBetween returns the full thread for the unordered pair (userA,
// userB). The id column breaks ties between rows created within the same
// timestamp, so the order is stable under concurrent sends.
func (m *messageRepo) GetMessagesBetween(userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to load thread")
	}
	return messages, nil
}

func (m *messageRepo) GetMessagesInvolving(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := m.DB.
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "unable to load messages")
	}
	return messages, nil
}

func (m *messageRepo) GetMessageByAttachmentURL(url string) (*models.Message, error) {
	var message models.Message
	err := m.DB.Where("attachment_url = ?", url).First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkThreadRead flips is_read on every unread message from counterpart to
// viewer and reports how many rows changed. The single conditional UPDATE
// makes the call idempotent and keeps a send racing against it from losing
// its unread status: a row inserted after the update ran simply isn't matched.
func (m *messageRepo) MarkThreadRead(viewerID, counterpartID uint) (int64, error) {
	result := m.DB.Model(&models.Message{}).
		Where("to_user_id = ? AND from_user_id = ? AND is_read = ?", viewerID, counterpartID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "unable to mark thread read")
	}
	return result.RowsAffected, nil
}
