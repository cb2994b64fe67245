package ticket

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/qreserve/qreserve/internal/shared/biztime"
)

// Attachment is a file uploaded to a ticket. FilePath is relative to the
// configured upload directory.
type Attachment struct {
	id           uint
	ticketID     uint
	uploadedByID uint
	filename     string
	filePath     string
	fileSize     int64
	mimeType     string
	createdAt    time.Time
}

func NewAttachment(ticketID, uploadedByID uint, filename, filePath string, fileSize int64, mimeType string) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if uploadedByID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, fmt.Errorf("filename is required")
	}
	if filePath == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if fileSize < 0 {
		return nil, fmt.Errorf("file size cannot be negative")
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &Attachment{
		ticketID:     ticketID,
		uploadedByID: uploadedByID,
		filename:     filename,
		filePath:     filePath,
		fileSize:     fileSize,
		mimeType:     mimeType,
		createdAt:    biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(id, ticketID, uploadedByID uint, filename, filePath string, fileSize int64, mimeType string, createdAt time.Time) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	return &Attachment{
		id:           id,
		ticketID:     ticketID,
		uploadedByID: uploadedByID,
		filename:     filename,
		filePath:     filePath,
		fileSize:     fileSize,
		mimeType:     mimeType,
		createdAt:    createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) TicketID() uint {
	return a.ticketID
}

func (a *Attachment) UploadedByID() uint {
	return a.uploadedByID
}

func (a *Attachment) Filename() string {
	return a.filename
}

func (a *Attachment) FilePath() string {
	return a.filePath
}

func (a *Attachment) FileSize() int64 {
	return a.fileSize
}

func (a *Attachment) MimeType() string {
	return a.mimeType
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}
