package db

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"github.com/talentbridgehq/talentbridge/config"
)

// MediaRepository stores uploaded files out-of-line and serves them back.
type MediaRepository interface {
	UploadToStorage(reader io.Reader, folderName, key string) (string, error)
	FetchFromStorage(fileURL string) (io.ReadCloser, int64, error)
}

type mediaRepo struct {
	conf   *config.Config
	client *s3.Client
}

func NewMediaRepo(conf *config.Config) (MediaRepository, error) {
	client, err := createS3Client(conf)
	if err != nil {
		return nil, err
	}
	return &mediaRepo{conf: conf, client: client}, nil
}

func createS3Client(conf *config.Config) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(conf.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.AwsAccessKeyID,
			conf.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

// UploadToStorage puts the object under folderName/key and returns its public
// URL.
func (m *mediaRepo) UploadToStorage(reader io.Reader, folderName, key string) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.Wrap(err, "failed to read file content")
	}

	objectKey := fmt.Sprintf("%s/%s", folderName, key)
	_, err = m.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(m.conf.AwsBucket),
		Key:    aws.String(objectKey),
		Body:   bytes.NewReader(content),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload file to S3")
	}

	fileURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.conf.AwsBucket, m.conf.AwsRegion, objectKey)
	return fileURL, nil
}

// FetchFromStorage streams an object previously uploaded by this service.
// Only URLs under our own bucket are accepted.
func (m *mediaRepo) FetchFromStorage(fileURL string) (io.ReadCloser, int64, error) {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", m.conf.AwsBucket, m.conf.AwsRegion)
	if !strings.HasPrefix(fileURL, prefix) {
		return nil, 0, errors.New("url does not reference the attachment bucket")
	}
	objectKey := strings.TrimPrefix(fileURL, prefix)

	out, err := m.client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(m.conf.AwsBucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to fetch file from S3")
	}

	var size int64
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}
