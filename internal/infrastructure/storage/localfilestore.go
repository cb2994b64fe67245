// Package storage keeps uploaded attachment bytes on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/qreserve/qreserve/internal/domain/ticket"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

var (
	ErrFileTooLarge = ticket.ErrAttachmentTooLarge
	ErrInvalidPath  = errors.New("invalid file path")
)

// LocalFileStore writes files to <baseDir>/<ticket_id>/<uuid><ext>. Stored
// paths are relative to baseDir.
type LocalFileStore struct {
	baseDir string
	logger  logger.Interface
}

func NewLocalFileStore(baseDir string, log logger.Interface) (*LocalFileStore, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalFileStore{baseDir: abs, logger: log}, nil
}

// Save copies at most maxSize bytes from r. A larger body is discarded and
// ErrFileTooLarge returned.
func (s *LocalFileStore) Save(ctx context.Context, ticketID uint, originalName string, r io.Reader, maxSize int64) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	dir := filepath.Join(s.baseDir, strconv.FormatUint(uint64(ticketID), 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create ticket upload dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	full := filepath.Join(dir, name)

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, copyErr := io.Copy(f, io.LimitReader(r, maxSize+1))
	closeErr := f.Close()

	if copyErr == nil && written > maxSize {
		copyErr = ErrFileTooLarge
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		if rmErr := os.Remove(full); rmErr != nil {
			s.logger.Warnw("failed to remove partial upload", "path", full, "error", rmErr)
		}
		if errors.Is(copyErr, ErrFileTooLarge) {
			return "", 0, copyErr
		}
		return "", 0, fmt.Errorf("failed to write file: %w", copyErr)
	}

	rel := filepath.ToSlash(filepath.Join(strconv.FormatUint(uint64(ticketID), 10), name))
	s.logger.Debugw("attachment stored", "path", rel, "size", written)
	return rel, written, nil
}

func (s *LocalFileStore) Open(path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (s *LocalFileStore) Remove(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve rejects paths that would escape baseDir.
func (s *LocalFileStore) resolve(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.baseDir, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.baseDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
