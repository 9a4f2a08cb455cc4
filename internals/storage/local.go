package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skyhr_backend/internals/configs"
)

// LocalStorage menulis ke filesystem dan mengembalikan URL publik dengan
// kontrak yang sama dengan driver OSS. Dipakai untuk development / deploy kecil.
type LocalStorage struct {
	rootDir       string
	publicBaseURL string
}

func NewLocalStorageFromEnv() (*LocalStorage, error) {
	rootDir := configs.GetEnv("LOCAL_STORAGE_DIR", "./uploads")
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("local storage dir: %w", err)
	}
	return &LocalStorage{
		rootDir:       rootDir,
		publicBaseURL: strings.TrimRight(configs.GetEnv("LOCAL_PUBLIC_BASE_URL", "/uploads"), "/"),
	}, nil
}

func (s *LocalStorage) UploadBytes(_ context.Context, dir, filename string, data []byte, _ string) (UploadResult, error) {
	key := buildObjectKey(dir, filename)

	path := filepath.Join(s.rootDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return UploadResult{}, fmt.Errorf("local mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return UploadResult{}, fmt.Errorf("local write %s: %w", key, err)
	}

	return UploadResult{URL: s.publicBaseURL + "/" + key, Key: key}, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(s.rootDir, filepath.FromSlash(key)))
}
