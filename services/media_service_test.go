package services

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentbridgehq/talentbridge/config"
	apiError "github.com/talentbridgehq/talentbridge/errors"
)

// fakeMediaRepo records uploads without touching real storage.
type fakeMediaRepo struct {
	uploads []string
}

func (f *fakeMediaRepo) UploadToStorage(reader io.Reader, folderName, key string) (string, error) {
	f.uploads = append(f.uploads, folderName+"/"+key)
	return "https://bucket.s3.us-east-1.amazonaws.com/" + folderName + "/" + key, nil
}

func (f *fakeMediaRepo) FetchFromStorage(fileURL string) (io.ReadCloser, int64, error) {
	return io.NopCloser(bytes.NewReader([]byte("content"))), 7, nil
}

// buildFileHeader produces a real multipart.FileHeader whose Open() works.
func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("attachment", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["attachment"][0]
}

func TestCheckAttachmentSize(t *testing.T) {
	small := buildFileHeader(t, "small.pdf", []byte("ok"))
	assert.Nil(t, CheckAttachmentSize(small, 1024))

	big := buildFileHeader(t, "big.pdf", bytes.Repeat([]byte("x"), 2048))
	err := CheckAttachmentSize(big, 1024)
	require.NotNil(t, err)
	assert.Equal(t, apiError.ErrPayloadTooLarge, err)
}

func TestCheckSupportedAttachment(t *testing.T) {
	for _, name := range []string{"cv.pdf", "notes.TXT", "photo.JPG", "doc.docx"} {
		_, err := CheckSupportedAttachment(name)
		assert.Nil(t, err, name)
	}

	for _, name := range []string{"malware.exe", "archive.zip", "noextension"} {
		_, err := CheckSupportedAttachment(name)
		require.NotNil(t, err, name)
		assert.Equal(t, apiError.ErrUnsupportedType, err)
	}
}

func TestStoreAttachment(t *testing.T) {
	repo := &fakeMediaRepo{}
	svc := NewMediaService(repo, &config.Config{MaxAttachmentSize: 1024})

	fileHeader := buildFileHeader(t, "resume.pdf", []byte("%PDF-1.4 fake"))
	attachment, err := svc.StoreAttachment(fileHeader)
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", attachment.OriginalName)
	assert.Equal(t, fileHeader.Size, attachment.SizeBytes)
	assert.Contains(t, attachment.URL, "attachments/")
	assert.Empty(t, attachment.ThumbnailURL)
	require.Len(t, repo.uploads, 1)
}

func TestStoreAttachment_RejectsBeforeUpload(t *testing.T) {
	repo := &fakeMediaRepo{}
	svc := NewMediaService(repo, &config.Config{MaxAttachmentSize: 10})

	oversized := buildFileHeader(t, "big.pdf", bytes.Repeat([]byte("x"), 100))
	_, err := svc.StoreAttachment(oversized)
	assert.Equal(t, apiError.ErrPayloadTooLarge, err)

	svc = NewMediaService(repo, &config.Config{MaxAttachmentSize: 1024})
	unsupported := buildFileHeader(t, "script.sh", []byte("#!/bin/sh"))
	_, err = svc.StoreAttachment(unsupported)
	assert.Equal(t, apiError.ErrUnsupportedType, err)

	assert.Empty(t, repo.uploads)
}
