// Package models contains the gorm persistence models.
package models

// All lists every model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&CategoryModel{},
		&TicketModel{},
		&CommentModel{},
		&VoteModel{},
		&AttachmentModel{},
	}
}
