package scope

import (
	"strings"

	"gorm.io/gorm"
)

// NotDeleted filters out soft-deleted rows of the given table.
func NotDeleted(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if table == "" {
			return db.Where("is_deleted = ?", false)
		}
		return db.Where(table+".is_deleted = ?", false)
	}
}

func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}
		return db.Offset((page - 1) * limit).Limit(limit)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern lowercases s and escapes LIKE wildcards so it matches literally.
// Pair it with "LIKE ? ESCAPE '\'".
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
