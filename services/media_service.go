package services

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/talentbridgehq/talentbridge/config"
	"github.com/talentbridgehq/talentbridge/db"
	apiError "github.com/talentbridgehq/talentbridge/errors"
	"github.com/talentbridgehq/talentbridge/models"
)

// extensions accepted for message attachments
var supportedAttachmentTypes = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

type MediaService interface {
	StoreAttachment(fileHeader *multipart.FileHeader) (*models.Attachment, error)
	StoreProfileImage(fileHeader *multipart.FileHeader, userID uint) (string, error)
	FetchAttachment(fileURL string) (io.ReadCloser, int64, error)
}

type mediaService struct {
	Config    *config.Config
	mediaRepo db.MediaRepository
}

func NewMediaService(mediaRepo db.MediaRepository, conf *config.Config) MediaService {
	return &mediaService{
		Config:    conf,
		mediaRepo: mediaRepo,
	}
}

func CheckAttachmentSize(fileHeader *multipart.FileHeader, maxSize int64) *apiError.Error {
	if fileHeader.Size > maxSize {
		return apiError.ErrPayloadTooLarge
	}
	return nil
}

func CheckSupportedAttachment(filename string) (string, *apiError.Error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !supportedAttachmentTypes[ext] {
		return ext, apiError.ErrUnsupportedType
	}
	return ext, nil
}

func generateUniqueFilename(extension string) string {
	timestamp := time.Now().UnixNano()
	randomUUID := uuid.New()
	return fmt.Sprintf("%d_%s%s", timestamp, randomUUID, extension)
}

// StoreAttachment validates and stores a message attachment. Validation runs
// before anything touches storage, so an oversized or disallowed file never
// produces an object.
func (m *mediaService) StoreAttachment(fileHeader *multipart.FileHeader) (*models.Attachment, error) {
	if err := CheckAttachmentSize(fileHeader, m.Config.MaxAttachmentSize); err != nil {
		return nil, err
	}
	ext, typeErr := CheckSupportedAttachment(fileHeader.Filename)
	if typeErr != nil {
		return nil, typeErr
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %v", err)
	}

	key := generateUniqueFilename(ext)
	fileURL, err := m.mediaRepo.UploadToStorage(bytes.NewReader(content), "attachments", key)
	if err != nil {
		return nil, err
	}

	attachment := &models.Attachment{
		URL:          fileURL,
		OriginalName: fileHeader.Filename,
		SizeBytes:    fileHeader.Size,
	}

	if imageExtensions[ext] {
		thumbURL, err := m.storeThumbnail(content, key)
		if err != nil {
			// the attachment itself is stored; a missing thumbnail only
			// degrades the preview
			log.Printf("thumbnail generation failed for %s: %v", key, err)
		} else {
			attachment.ThumbnailURL = thumbURL
		}
	}

	return attachment, nil
}

func (m *mediaService) storeThumbnail(content []byte, key string) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}
	thumb := imaging.Fit(img, 320, 320, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %v", err)
	}

	thumbKey := strings.TrimSuffix(key, filepath.Ext(key)) + "_thumb.jpg"
	return m.mediaRepo.UploadToStorage(&buf, "thumbnails", thumbKey)
}

// StoreProfileImage resizes an avatar or company logo and stores it.
func (m *mediaService) StoreProfileImage(fileHeader *multipart.FileHeader, userID uint) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !imageExtensions[ext] {
		return "", apiError.ErrUnsupportedType
	}
	if err := CheckAttachmentSize(fileHeader, m.Config.MaxAttachmentSize); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}
	resized := imaging.Fill(img, 256, 256, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image: %v", err)
	}

	key := fmt.Sprintf("%d_%s.jpg", userID, uuid.New())
	return m.mediaRepo.UploadToStorage(&buf, "avatars", key)
}

func (m *mediaService) FetchAttachment(fileURL string) (io.ReadCloser, int64, error) {
	return m.mediaRepo.FetchFromStorage(fileURL)
}
