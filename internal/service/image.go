package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/connexo-app/backend/config"
)

// ImageService stores profile and cover images uploaded from the
// appearance tab. With S3 configured the image is uploaded and a public
// URL returned; without it the image is embedded as a data URI so the
// document stays self-contained.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance. s3Config may be
// nil, in which case every image is embedded.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Store saves the image bytes and returns the reference to place in the
// appearance theme.
func (s *ImageService) Store(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if s.s3Config == nil {
		return dataURI(contentType, data), nil
	}

	key := fmt.Sprintf("profile-media/%s%s", uuid.New(), path.Ext(filename))
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		// The edit is not lost: fall back to embedding.
		log.Printf("[ImageService] S3 upload failed, embedding image instead: %v", err)
		return dataURI(contentType, data), nil
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key), nil
}

func dataURI(contentType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
