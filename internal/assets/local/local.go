package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbonduro/lookbook/internal/assets"
)

// LocalAssetStore serves outfit pictures from a directory tree.
type LocalAssetStore struct {
	basePath string
}

func NewLocalAssetStore(basePath string) (*LocalAssetStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}
	return &LocalAssetStore{basePath: basePath}, nil
}

func (s *LocalAssetStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", assets.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close asset", "key", key, "error", cerr)
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to stat file: %w", err)
		}
		return nil, "", assets.ErrNotFound
	}
	return f, extToMimeType(filePath), nil
}

// Put writes r under key, creating parent directories. Used to seed the store.
func (s *LocalAssetStore) Put(ctx context.Context, key string, r io.Reader) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *LocalAssetStore) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "image/jpeg"
	}
}
