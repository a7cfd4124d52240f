package connector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/logger"
)

// localStorage keeps document content in a directory tree rooted at root
type localStorage struct {
	root   string
	logger logger.Logger
}

// NewLocalStorage creates a DocumentStorage writing below root
func NewLocalStorage(root string, logger logger.Logger) (documents.DocumentStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", abs, err)
	}
	return &localStorage{root: abs, logger: logger}, nil
}

// path maps a storage key to a file below root and rejects keys escaping it
func (s *localStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	full := filepath.Join(s.root, clean)
	if clean == "." || !strings.HasPrefix(full, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: invalid storage key %q", apperr.ErrValidation, key)
	}
	return full, nil
}

func (s *localStorage) Put(ctx context.Context, key, contentType string, content []byte) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	if err := os.WriteFile(full, content, 0o640); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.logger.Info("Stored document content", "key", key, "size", len(content), "content_type", contentType)
	return nil
}

func (s *localStorage) Get(ctx context.Context, key string) ([]byte, error) {
	full, err := s.path(key)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("content %s %w", key, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return content, nil
}

func (s *localStorage) Delete(ctx context.Context, key string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	s.logger.Info("Deleted document content", "key", key)
	return nil
}
