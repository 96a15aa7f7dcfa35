// Package storage содержит хранилище изображений поверх S3-совместимого API.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"whispr/internal/diary/config"
	"whispr/internal/diary/ports/services"
	"whispr/pkg/logger"
)

const (
	methodPut    = "Put"
	methodDelete = "Delete"

	msgObjectStored  = "object stored"
	msgObjectDeleted = "object deleted"

	ErrLoadAWSConfig = "failed to load storage client config"
	ErrPutObject     = "failed to put object"
	ErrDeleteObject  = "failed to delete object"
)

// ObjectAPI подмножество клиента S3, используемое хранилищем.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage реализует services.ImageStorage.
type S3Storage struct {
	client  ObjectAPI
	bucket  string
	baseURL string
}

var _ services.ImageStorage = (*S3Storage)(nil)

// New создает клиент S3 по конфигурации сервиса.
func New(ctx context.Context, cfg *config.StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadAWSConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, cfg.Bucket, publicBase(cfg)), nil
}

// NewWithClient создает хранилище поверх готового клиента.
// baseURL используется как префикс публичных ссылок на объекты.
func NewWithClient(client ObjectAPI, bucket, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func publicBase(cfg *config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
}

// Put загружает объект и возвращает его публичный URL.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodPut), zap.String("key", key))

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Error(ctx, ErrPutObject, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrPutObject, err)
	}

	log.Debug(ctx, msgObjectStored, zap.Int64("size", size))
	return s.baseURL + "/" + key, nil
}

// Delete удаляет объект. Отсутствующий объект не считается ошибкой.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.String("key", key))

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error(ctx, ErrDeleteObject, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteObject, err)
	}

	log.Debug(ctx, msgObjectDeleted)
	return nil
}
