package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"skyhr_backend/internals/configs"
)

type UploadResult struct {
	URL string
	Key string
}

// BlobStorage: satu kontrak upload untuk semua driver. Driver dipilih sekali
// saat startup lewat STORAGE_DRIVER, bukan per-request.
type BlobStorage interface {
	UploadBytes(ctx context.Context, dir, filename string, data []byte, contentType string) (UploadResult, error)
	Delete(ctx context.Context, key string) error
}

func NewFromEnv() (BlobStorage, error) {
	switch configs.StorageDriver {
	case "oss":
		return NewOSSStorageFromEnv()
	case "local":
		return NewLocalStorageFromEnv()
	default:
		return nil, fmt.Errorf("storage driver tidak dikenal: %q", configs.StorageDriver)
	}
}

var nonWord = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWord.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// buildObjectKey: <dir>/<slug>-<rand><ext> — nama asli tetap kebaca,
// rand suffix mencegah tabrakan & overwrite.
func buildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := slugify(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "file"
	}
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return fmt.Sprintf("%s-%s%s", base, randHex(6), ext)
	}
	return fmt.Sprintf("%s/%s-%s%s", dir, base, randHex(6), ext)
}
