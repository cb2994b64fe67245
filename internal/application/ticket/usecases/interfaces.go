package usecases

import (
	"context"
	"io"
)

// FileStore keeps attachment bytes outside the database. Paths returned by
// Save are opaque to callers and stored on the attachment row.
type FileStore interface {
	Save(ctx context.Context, ticketID uint, originalName string, r io.Reader, maxSize int64) (path string, size int64, err error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// MarkdownRenderer turns stored markdown into sanitized HTML.
type MarkdownRenderer interface {
	Render(source string) string
}
