package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	errs "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
	"github.com/talentbridgehq/talentbridge/server/response"
	"gorm.io/gorm"
)

// handleSendMessage accepts either a JSON body or, when the message carries a
// file, a multipart form with to_user_id/content fields and an "attachment"
// part.
func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var request models.SendMessageRequest
		var attachment *multipart.FileHeader

		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			toUserID, err := strconv.ParseUint(c.PostForm("to_user_id"), 10, 64)
			if err != nil {
				response.JSON(c, "invalid to_user_id", http.StatusBadRequest, nil, errs.ErrBadRequest)
				return
			}
			request.ToUserID = uint(toUserID)
			request.Content = c.PostForm("content")

			file, err := c.FormFile("attachment")
			if err != nil && !errors.Is(err, http.ErrMissingFile) {
				response.JSON(c, "unable to read attachment", http.StatusBadRequest, nil, errs.ErrBadRequest)
				return
			}
			attachment = file
		} else {
			if err := c.ShouldBindJSON(&request); err != nil {
				response.JSON(c, "invalid request body", http.StatusBadRequest, nil, err)
				return
			}
		}

		message, apiErr := s.MessageService.SendMessage(userID, &request, attachment)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "message sent", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleGetConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		conversations, apiErr := s.MessageService.ListConversations(userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "conversations retrieved", http.StatusOK, conversations, nil)
	}
}

// handleGetThread returns the message history with one counterpart. Fetching
// a thread does not mark anything read; the client calls the read endpoint
// when it actually opens the thread.
func (s *Server) handleGetThread() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		counterpartID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		messages, apiErr := s.MessageService.GetThread(userID, uint(counterpartID))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "messages retrieved", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleMarkThreadRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		counterpartID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		count, apiErr := s.MessageService.MarkThreadRead(userID, uint(counterpartID))
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "thread marked read", http.StatusOK, gin.H{"updated": count}, nil)
	}
}

// handleDownloadAttachment streams a stored attachment back as a download,
// preserving the original filename. Only a participant of the message the
// attachment belongs to may fetch it through here.
func (s *Server) handleDownloadAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		fileURL := c.Query("url")
		if fileURL == "" {
			response.JSON(c, "url query parameter required", http.StatusBadRequest, nil, errs.ErrBadRequest)
			return
		}

		message, err := s.MessageRepository.GetMessageByAttachmentURL(fileURL)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.JSON(c, "attachment not found", http.StatusNotFound, nil, errs.ErrNotFound)
				return
			}
			log.Printf("attachment lookup error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		if message.FromUserID != userID && message.ToUserID != userID {
			response.JSON(c, "", http.StatusForbidden, nil, errs.ErrForbidden)
			return
		}

		body, size, err := s.MediaService.FetchAttachment(fileURL)
		if err != nil {
			log.Printf("attachment fetch error: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		defer body.Close()

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, message.AttachmentName))
		c.Header("Content-Type", "application/octet-stream")
		if size > 0 {
			c.Header("Content-Length", strconv.FormatInt(size, 10))
		}
		if _, err := io.Copy(c.Writer, body); err != nil {
			log.Printf("attachment stream error: %v", err)
		}
	}
}
