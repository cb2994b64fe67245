package models

// TicketModel timestamps are written from the domain: a new comment bumps
// last_activity without touching updated_at, so neither is auto-maintained.
type TicketModel struct {
	ID           uint   `gorm:"primaryKey"`
	Subject      string `gorm:"size:200;not null;index"`
	Description  string `gorm:"type:text;not null"`
	Status       string `gorm:"size:20;not null;default:open;index"`
	Priority     string `gorm:"size:20;not null;default:medium"`
	OwnerID      uint   `gorm:"not null;index"`
	AssigneeID   *uint  `gorm:"index"`
	CategoryID   *uint  `gorm:"index"`
	CreatedAt    int64  `gorm:"not null;index"`
	UpdatedAt    int64  `gorm:"not null;index"`
	LastActivity int64  `gorm:"not null"`

	// Foreign keys are declared in the migration scripts only; there are no
	// gorm associations and relationships are resolved by id lookups.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	ParentID  *uint  `gorm:"index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}

// VoteModel holds at most one row per (ticket, user).
type VoteModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;uniqueIndex:idx_votes_ticket_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_votes_ticket_user;index"`
	VoteType  string `gorm:"size:10;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (VoteModel) TableName() string {
	return "votes"
}

type AttachmentModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketID     uint   `gorm:"not null;index"`
	UploadedByID uint   `gorm:"not null;index"`
	Filename     string `gorm:"size:255;not null"`
	FilePath     string `gorm:"size:500;not null"`
	FileSize     int64  `gorm:"not null"`
	MimeType     string `gorm:"size:100;not null"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "attachments"
}
