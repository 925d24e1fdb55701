package services

import (
	"log"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/db"
	apiError "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"gorm.io/gorm"
)

type MessageService interface {
	SendMessage(senderID uint, request *models.SendMessageRequest, attachment *multipart.FileHeader) (*models.Message, *apiError.Error)
	ListConversations(viewerID uint) ([]models.Conversation, *apiError.Error)
	GetThread(viewerID, counterpartID uint) ([]models.Message, *apiError.Error)
	MarkThreadRead(viewerID, counterpartID uint) (int64, *apiError.Error)
}

type messageService struct {
	messageRepo  db.MessageRepository
	authRepo     db.AuthRepository
	mediaService MediaService
}

func NewMessageService(messageRepo db.MessageRepository, authRepo db.AuthRepository, mediaService MediaService) MessageService {
	return &messageService{
		messageRepo:  messageRepo,
		authRepo:     authRepo,
		mediaService: mediaService,
	}
}

// SendMessage validates and persists one message. A message must carry text
// or an attachment; the attachment is stored first, and if the message row
// itself is then rejected the stored object is left behind as accepted
// garbage rather than rolled back.
func (s *messageService) SendMessage(senderID uint, request *models.SendMessageRequest, attachment *multipart.FileHeader) (*models.Message, *apiError.Error) {
	if request.ToUserID == senderID {
		return nil, apiError.New("cannot message yourself", http.StatusBadRequest)
	}

	if _, err := s.authRepo.FindUserByID(request.ToUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("recipient not found", http.StatusNotFound)
		}
		log.Printf("SendMessage recipient lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	message := &models.Message{
		FromUserID:  senderID,
		ToUserID:    request.ToUserID,
		Content:     request.Content,
		MessageType: models.MessageTypeText,
	}

	if attachment != nil {
		stored, err := s.mediaService.StoreAttachment(attachment)
		if err != nil {
			var apiErr *apiError.Error
			if errors.As(err, &apiErr) {
				return nil, apiErr
			}
			log.Printf("SendMessage attachment error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		message.MessageType = models.MessageTypeFile
		message.AttachmentURL = stored.URL
		message.AttachmentName = stored.OriginalName
		message.AttachmentSize = stored.SizeBytes
		message.AttachmentThumbnailURL = stored.ThumbnailURL
	}

	if message.Blank() {
		return nil, apiError.New("message needs text or an attachment", http.StatusBadRequest)
	}

	if err := s.messageRepo.SaveMessage(message); err != nil {
		log.Printf("SendMessage save error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return message, nil
}

// ListConversations derives the viewer's inbox from their messages: one entry
// per counterpart, carrying the most recent message between the two and the
// number of the counterpart's messages the viewer has not read. Conversations
// are never stored; this recomputes on every call.
func (s *messageService) ListConversations(viewerID uint) ([]models.Conversation, *apiError.Error) {
	messages, err := s.messageRepo.GetMessagesInvolving(viewerID)
	if err != nil {
		log.Printf("ListConversations load error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	type group struct {
		last   models.Message
		unread int
	}
	groups := make(map[uint]*group)
	var order []uint

	for _, msg := range messages {
		counterpartID := msg.FromUserID
		if counterpartID == viewerID {
			counterpartID = msg.ToUserID
		}

		g, ok := groups[counterpartID]
		if !ok {
			g = &group{last: msg}
			groups[counterpartID] = g
			order = append(order, counterpartID)
		} else if laterThan(msg, g.last) {
			g.last = msg
		}

		if msg.ToUserID == viewerID && !msg.IsRead {
			g.unread++
		}
	}

	conversations := make([]models.Conversation, 0, len(order))
	for _, counterpartID := range order {
		counterpart, err := s.authRepo.FindUserByID(counterpartID)
		if err != nil {
			// dangling reference, e.g. a deleted account; the conversation is
			// dropped from the list rather than failing the whole call
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			log.Printf("ListConversations counterpart lookup error: %v", err)
			return nil, apiError.ErrInternalServerError
		}

		g := groups[counterpartID]
		conversations = append(conversations, models.Conversation{
			Counterpart: counterpart.Response(),
			LastMessage: g.last,
			UnreadCount: g.unread,
		})
	}

	// most recently active conversation first
	sort.SliceStable(conversations, func(i, j int) bool {
		return laterThan(conversations[i].LastMessage, conversations[j].LastMessage)
	})

	return conversations, nil
}

// laterThan orders messages by (createdAt, id); the id breaks same-timestamp
// ties.
func laterThan(a, b models.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// GetThread returns the full message history between the viewer and a
// counterpart, oldest first. Reading a thread never touches read state.
func (s *messageService) GetThread(viewerID, counterpartID uint) ([]models.Message, *apiError.Error) {
	if _, err := s.authRepo.FindUserByID(counterpartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("GetThread counterpart lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	messages, err := s.messageRepo.GetMessagesBetween(viewerID, counterpartID)
	if err != nil {
		log.Printf("GetThread load error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return messages, nil
}

// MarkThreadRead flips the unread flag on the counterpart's messages to the
// viewer and reports how many were newly marked. Safe to call repeatedly.
func (s *messageService) MarkThreadRead(viewerID, counterpartID uint) (int64, *apiError.Error) {
	count, err := s.messageRepo.MarkThreadRead(viewerID, counterpartID)
	if err != nil {
		log.Printf("MarkThreadRead error: %v", err)
		return 0, apiError.ErrInternalServerError
	}
	return count, nil
}
