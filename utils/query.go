package utils

import (
	"gorm.io/gorm"
)

// BuildWhere returns a gorm scope applying equality filters, keeping
// only keys present in the allow-list. Nil values are skipped.
func BuildWhere(filters map[string]interface{}, allowedFields []string) func(*gorm.DB) *gorm.DB {
	allowed := make(map[string]bool, len(allowedFields))
	for _, f := range allowedFields {
		allowed[f] = true
	}

	return func(db *gorm.DB) *gorm.DB {
		for field, value := range filters {
			if !allowed[field] || value == nil {
				continue
			}
			db = db.Where(field+" = ?", value)
		}
		return db
	}
}

// BuildSearch returns a gorm scope matching the search term against any
// of the allowed fields, case-insensitively. Empty terms are a no-op.
func BuildSearch(term string, fields []string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(fields) == 0 {
			return db
		}
		pattern := "%" + term + "%"
		cond := db.Session(&gorm.Session{NewDB: true})
		for _, field := range fields {
			cond = cond.Or("LOWER("+field+") LIKE LOWER(?)", pattern)
		}
		return db.Where(cond)
	}
}
