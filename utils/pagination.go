package utils

import (
	"encoding/base64"
	"encoding/json"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PaginationParams are the cursor-pagination inputs shared by list endpoints
type PaginationParams struct {
	Cursor    string
	Limit     int
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// PaginatedResult wraps a page of items with the cursor for the next page
type PaginatedResult struct {
	Items      interface{} `json:"items"`
	NextCursor *string     `json:"next_cursor"`
	HasMore    bool        `json:"has_more"`
}

// CursorData is the decoded content of an opaque list cursor
type CursorData struct {
	ID        uint        `json:"id"`
	SortValue interface{} `json:"sort_value,omitempty"`
}

// EncodeCursor encodes cursor data to a base64url string
func EncodeCursor(data CursorData) string {
	raw, _ := json.Marshal(data)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeCursor decodes a base64url cursor string. Returns nil for
// anything that is not a cursor this service produced.
func DecodeCursor(cursor string) *CursorData {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil
	}
	var data CursorData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return &data
}

// NormalizeLimit clamps the requested page size within bounds
func NormalizeLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizeSort picks the sort field from the allow-list, falling back
// to the default, and normalizes the order to asc/desc.
func NormalizeSort(params PaginationParams, allowedFields []string, defaultField string) (string, string) {
	field := defaultField
	for _, allowed := range allowedFields {
		if params.SortBy == allowed {
			field = params.SortBy
			break
		}
	}
	order := "desc"
	if params.SortOrder == "asc" {
		order = "asc"
	}
	return field, order
}

// ApplyPagination returns a gorm scope applying sort order, cursor
// offset and limit+1 (the extra row signals another page exists).
// Results are always tie-broken by id so cursors stay stable. The
// cursor seeks by (sortField, id) keyset so rows are never skipped
// under a non-id sort; cursors without a sort value seek by id alone.
func ApplyPagination(params PaginationParams, allowedFields []string, defaultField string) func(*gorm.DB) *gorm.DB {
	limit := NormalizeLimit(params.Limit)
	field, order := NormalizeSort(params, allowedFields, defaultField)

	return func(db *gorm.DB) *gorm.DB {
		if cursor := DecodeCursor(params.Cursor); cursor != nil {
			op := "<"
			if order == "asc" {
				op = ">"
			}
			if field != "id" && cursor.SortValue != nil {
				db = db.Where(
					field+" "+op+" ? OR ("+field+" = ? AND id "+op+" ?)",
					cursor.SortValue, cursor.SortValue, cursor.ID,
				)
			} else {
				db = db.Where("id "+op+" ?", cursor.ID)
			}
		}
		if field != "id" {
			db = db.Order(field + " " + order)
		}
		return db.Order("id " + order).Limit(limit + 1)
	}
}

// BuildPage trims a limit+1 result set to one page and produces the
// next cursor from the last kept row. keyOf must return the row's id
// together with its value for the active sort field, so the cursor
// can resume within the sorted stream; SortValue stays nil for plain
// id sorts.
func BuildPage[T any](items []T, limit int, keyOf func(T) CursorData) PaginatedResult {
	limit = NormalizeLimit(limit)
	if len(items) <= limit {
		return PaginatedResult{Items: items, HasMore: false}
	}
	page := items[:limit]
	cursor := EncodeCursor(keyOf(page[len(page)-1]))
	return PaginatedResult{Items: page, NextCursor: &cursor, HasMore: true}
}
