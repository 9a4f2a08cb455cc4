package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type OSSStorage struct {
	bucket        *oss.Bucket
	bucketName    string
	endpoint      string
	publicBaseURL string // opsional, mis. CDN
	prefix        string
}

func getEnvTrim(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewOSSStorageFromEnv() (*OSSStorage, error) {
	endpoint := getEnvTrim("OSS_ENDPOINT")
	keyID := getEnvTrim("OSS_ACCESS_KEY_ID")
	keySecret := getEnvTrim("OSS_ACCESS_KEY_SECRET")
	bucketName := getEnvTrim("OSS_BUCKET")

	if endpoint == "" || keyID == "" || keySecret == "" || bucketName == "" {
		return nil, errors.New("OSS_ENDPOINT / OSS_ACCESS_KEY_ID / OSS_ACCESS_KEY_SECRET / OSS_BUCKET wajib diisi")
	}

	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}

	return &OSSStorage{
		bucket:        bucket,
		bucketName:    bucketName,
		endpoint:      endpoint,
		publicBaseURL: strings.TrimRight(getEnvTrim("OSS_PUBLIC_BASE_URL"), "/"),
		prefix:        strings.Trim(getEnvTrim("OSS_PREFIX"), "/"),
	}, nil
}

func (s *OSSStorage) UploadBytes(ctx context.Context, dir, filename string, data []byte, contentType string) (UploadResult, error) {
	key := buildObjectKey(dir, filename)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
		oss.WithContext(ctx),
	}
	if err := s.bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		return UploadResult{}, fmt.Errorf("oss put %s: %w", key, err)
	}

	return UploadResult{URL: s.publicURL(key), Key: key}, nil
}

func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	return s.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStorage) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	host := s.endpoint
	if u, err := url.Parse(s.endpoint); err == nil && u.Host != "" {
		host = u.Host
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, host, key)
}
