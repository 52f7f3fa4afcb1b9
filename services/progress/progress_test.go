package progress

import (
	"testing"

	"storyisle/database"
	"storyisle/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createIslands(t *testing.T, db *gorm.DB) []models.Island {
	t.Helper()
	islands := []models.Island{
		{IslandName: "Sulawesi", UnlockOrder: 1, IsLockedDefault: false},
		{IslandName: "Sumatra", UnlockOrder: 2, IsLockedDefault: true},
	}
	for i := range islands {
		require.NoError(t, db.Create(&islands[i]).Error)
	}
	return islands
}

func boolPtr(b bool) *bool { return &b }

func TestUpsertCreatesLazily(t *testing.T) {
	db := setupTestDB(t)
	islands := createIslands(t, db)

	row, err := Upsert(db, 1, islands[0].ID, boolPtr(true), nil)
	require.NoError(t, err)
	require.True(t, row.IsUnlocked)
	require.False(t, row.IsCompleted)

	// Second upsert updates the same row
	row2, err := Upsert(db, 1, islands[0].ID, nil, boolPtr(true))
	require.NoError(t, err)
	require.Equal(t, row.ID, row2.ID)
	require.True(t, row2.IsUnlocked, "absent fields keep their values")
	require.True(t, row2.IsCompleted)

	var count int64
	require.NoError(t, db.Model(&models.UserProgress{}).Where("user_id = ?", 1).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetByIslandNotFound(t *testing.T) {
	db := setupTestDB(t)
	islands := createIslands(t, db)

	_, err := GetByIsland(db, 1, islands[0].ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInitializeForUser(t *testing.T) {
	db := setupTestDB(t)
	islands := createIslands(t, db)

	require.NoError(t, InitializeForUser(db, 7))

	rows, err := List(db, 7, ListFilters{})
	require.NoError(t, err)
	require.Len(t, rows, len(islands))

	unlocked, err := GetByIsland(db, 7, islands[0].ID)
	require.NoError(t, err)
	require.True(t, unlocked.IsUnlocked)

	locked, err := GetByIsland(db, 7, islands[1].ID)
	require.NoError(t, err)
	require.False(t, locked.IsUnlocked)

	// Re-running keeps existing rows
	require.NoError(t, InitializeForUser(db, 7))
	rows, err = List(db, 7, ListFilters{})
	require.NoError(t, err)
	require.Len(t, rows, len(islands))
}

func TestListFilters(t *testing.T) {
	db := setupTestDB(t)
	createIslands(t, db)
	require.NoError(t, InitializeForUser(db, 3))

	unlockedOnly, err := List(db, 3, ListFilters{IsUnlocked: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, unlockedOnly, 1)

	lockedOnly, err := List(db, 3, ListFilters{IsUnlocked: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, lockedOnly, 1)
}

func TestIncrementCycleCount(t *testing.T) {
	db := setupTestDB(t)
	islands := createIslands(t, db)

	// No row yet: created completed with cycle 1
	row, err := IncrementCycleCount(db, 5, islands[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1, row.CycleCount)
	require.True(t, row.IsCompleted)
	require.True(t, row.IsUnlocked)

	row, err = IncrementCycleCount(db, 5, islands[0].ID)
	require.NoError(t, err)
	require.Equal(t, 2, row.CycleCount)
}

func TestBelongsToUser(t *testing.T) {
	db := setupTestDB(t)
	islands := createIslands(t, db)

	row, err := Upsert(db, 10, islands[0].ID, nil, nil)
	require.NoError(t, err)

	owned, err := BelongsToUser(db, row.ID, 10)
	require.NoError(t, err)
	require.True(t, owned)

	owned, err = BelongsToUser(db, row.ID, 11)
	require.NoError(t, err)
	require.False(t, owned)
}
