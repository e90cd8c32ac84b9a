package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menvy/internal/testutil"
)

func TestGet_CreatesDefaultsOnFirstRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSettingsRepository(db)

	settings, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Menvy", settings.StoreName)
	assert.Equal(t, "BDT", settings.Currency)
	assert.Equal(t, 24, settings.SessionTimeoutHours)
	assert.Equal(t, 5, settings.MaxLoginAttempts)

	// The defaults were persisted, not just returned.
	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM settings WHERE id = 1").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGet_ReturnsExistingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSettingsRepository(db)
	ctx := context.Background()

	first, err := repo.Get(ctx)
	require.NoError(t, err)

	first.StoreName = "Menvy Gulshan"
	require.NoError(t, repo.Update(ctx, first))

	second, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Menvy Gulshan", second.StoreName)
}

func TestUpdate_PersistsChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	require.NoError(t, err)

	settings.VatRate = 15
	settings.ShowVAT = true
	settings.SessionTimeoutHours = 8
	require.NoError(t, repo.Update(ctx, settings))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got.VatRate)
	assert.True(t, got.ShowVAT)
	assert.Equal(t, 8, got.SessionTimeoutHours)
}

func TestUpdate_SeedsMissingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	testutil.SetupTestTables(t, db)

	repo := NewMySQLSettingsRepository(db)
	ctx := context.Background()

	settings, err := repo.Get(ctx)
	require.NoError(t, err)

	_, err = db.Exec("DELETE FROM settings")
	require.NoError(t, err)

	settings.StoreName = "Menvy Reborn"
	require.NoError(t, repo.Update(ctx, settings))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Menvy Reborn", got.StoreName)
}
