package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *GormDB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	return &GormDB{DB: gdb}
}

func seedMessage(t *testing.T, db *GormDB, msg models.Message) models.Message {
	t.Helper()
	require.NoError(t, db.DB.Create(&msg).Error)
	return msg
}

func TestGetMessagesBetween_OrdersByCreatedAtThenID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewMessageRepo(gdb)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	later := seedMessage(t, gdb, models.Message{FromUserID: 1, ToUserID: 2, Content: "second", CreatedAt: base.Add(time.Minute)})
	first := seedMessage(t, gdb, models.Message{FromUserID: 2, ToUserID: 1, Content: "first", CreatedAt: base})

	// same timestamp as "second"; the larger id must sort after it
	tied := seedMessage(t, gdb, models.Message{FromUserID: 1, ToUserID: 2, Content: "third", CreatedAt: base.Add(time.Minute)})

	messages, err := repo.GetMessagesBetween(1, 2)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, first.ID, messages[0].ID)
	assert.Equal(t, later.ID, messages[1].ID)
	assert.Equal(t, tied.ID, messages[2].ID)
}

func TestGetMessagesBetween_ExcludesOtherPairs(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewMessageRepo(gdb)

	seedMessage(t, gdb, models.Message{FromUserID: 1, ToUserID: 2, Content: "ours"})
	seedMessage(t, gdb, models.Message{FromUserID: 1, ToUserID: 3, Content: "different thread"})
	seedMessage(t, gdb, models.Message{FromUserID: 3, ToUserID: 2, Content: "also different"})

	messages, err := repo.GetMessagesBetween(1, 2)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "ours", messages[0].Content)
}

func TestMarkThreadRead(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewMessageRepo(gdb)

	// two unread from user 2 to user 1, one already read, one going the
	// other way, and one from an unrelated counterpart
	seedMessage(t, gdb, models.Message{FromUserID: 2, ToUserID: 1, Content: "a"})
	seedMessage(t, gdb, models.Message{FromUserID: 2, ToUserID: 1, Content: "b"})
	seedMessage(t, gdb, models.Message{FromUserID: 2, ToUserID: 1, Content: "c", IsRead: true})
	mine := seedMessage(t, gdb, models.Message{FromUserID: 1, ToUserID: 2, Content: "mine"})
	other := seedMessage(t, gdb, models.Message{FromUserID: 3, ToUserID: 1, Content: "other"})

	count, err := repo.MarkThreadRead(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var unreadFromTwo int64
	require.NoError(t, gdb.DB.Model(&models.Message{}).
		Where("to_user_id = ? AND from_user_id = ? AND is_read = ?", 1, 2, false).
		Count(&unreadFromTwo).Error)
	assert.Zero(t, unreadFromTwo)

	// the viewer's own outgoing message and the unrelated thread are untouched
	var reloadedMine models.Message
	require.NoError(t, gdb.DB.First(&reloadedMine, mine.ID).Error)
	assert.False(t, reloadedMine.IsRead)
	var reloadedOther models.Message
	require.NoError(t, gdb.DB.First(&reloadedOther, other.ID).Error)
	assert.False(t, reloadedOther.IsRead)
}

func TestMarkThreadRead_Idempotent(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewMessageRepo(gdb)

	seedMessage(t, gdb, models.Message{FromUserID: 2, ToUserID: 1, Content: "hello"})

	count, err := repo.MarkThreadRead(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.MarkThreadRead(1, 2)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkThreadRead_EmptyThread(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewMessageRepo(gdb)

	count, err := repo.MarkThreadRead(1, 99)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetMessageByAttachmentURL(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewMessageRepo(gdb)

	seeded := seedMessage(t, gdb, models.Message{
		FromUserID:     1,
		ToUserID:       2,
		MessageType:    models.MessageTypeFile,
		AttachmentURL:  "https://bucket.s3.us-east-1.amazonaws.com/attachments/x.pdf",
		AttachmentName: "x.pdf",
	})

	found, err := repo.GetMessageByAttachmentURL(seeded.AttachmentURL)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.Equal(t, "x.pdf", found.AttachmentName)

	_, err = repo.GetMessageByAttachmentURL("https://bucket.s3.us-east-1.amazonaws.com/attachments/missing.pdf")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
