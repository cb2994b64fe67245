package db

import (
	"strings"

	"gorm.io/gorm"
)

// ActiveOnly keeps rows whose is_active flag is set.
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// ContainsInsensitive matches rows where any of columns contains term,
// ignoring case. An empty term matches every row.
func ContainsInsensitive(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(columns) == 0 {
			return db
		}
		pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// likeEscape is not a backslash because MySQL treats backslash inside string
// literals as an escape of its own.
const likeEscape = "!"

// EscapeLike escapes LIKE metacharacters so user input matches literally.
func EscapeLike(s string) string {
	return strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_").Replace(s)
}
