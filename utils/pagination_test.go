package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorRoundtrip(t *testing.T) {
	cursor := EncodeCursor(CursorData{ID: 42})
	decoded := DecodeCursor(cursor)
	require.NotNil(t, decoded)
	require.EqualValues(t, 42, decoded.ID)
}

func TestDecodeCursorGarbage(t *testing.T) {
	require.Nil(t, DecodeCursor("!!!not-base64!!!"))
	require.Nil(t, DecodeCursor("bm90LWpzb24")) // base64("not-json")
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero falls back to default", 0, DefaultLimit},
		{"negative falls back to default", -5, DefaultLimit},
		{"in range kept", 50, 50},
		{"above max clamped", 500, MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeLimit(tt.limit))
		})
	}
}

func TestNormalizeSortAllowList(t *testing.T) {
	allowed := []string{"started_at", "id"}

	field, order := NormalizeSort(PaginationParams{SortBy: "started_at", SortOrder: "asc"}, allowed, "id")
	require.Equal(t, "started_at", field)
	require.Equal(t, "asc", order)

	// Fields off the allow-list fall back to the default
	field, order = NormalizeSort(PaginationParams{SortBy: "password; DROP TABLE users"}, allowed, "id")
	require.Equal(t, "id", field)
	require.Equal(t, "desc", order)
}

func TestBuildPage(t *testing.T) {
	type row struct{ ID uint }
	keyOf := func(r row) CursorData { return CursorData{ID: r.ID} }

	rows := []row{{1}, {2}, {3}}

	// Fewer rows than the limit: no next page
	page := BuildPage(rows, 5, keyOf)
	require.False(t, page.HasMore)
	require.Nil(t, page.NextCursor)
	require.Len(t, page.Items.([]row), 3)

	// limit+1 rows: trimmed, cursor points at the last kept row
	page = BuildPage(rows, 2, keyOf)
	require.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	require.Len(t, page.Items.([]row), 2)

	decoded := DecodeCursor(*page.NextCursor)
	require.NotNil(t, decoded)
	require.EqualValues(t, 2, decoded.ID)
}

func TestBuildPageCarriesSortValue(t *testing.T) {
	type row struct {
		ID uint
		Xp int
	}
	rows := []row{{1, 30}, {3, 20}, {2, 10}}

	page := BuildPage(rows, 1, func(r row) CursorData {
		return CursorData{ID: r.ID, SortValue: r.Xp}
	})
	require.True(t, page.HasMore)

	// The cursor must carry the sort value of the last kept row so the
	// next page can resume inside the sorted stream instead of by id
	decoded := DecodeCursor(*page.NextCursor)
	require.NotNil(t, decoded)
	require.EqualValues(t, 1, decoded.ID)
	require.EqualValues(t, 30, decoded.SortValue)
}
