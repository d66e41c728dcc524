package bootstrap

import (
	"context"
	"testing"

	"filmorate/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIfEmpty(t *testing.T) {
	db := testutil.OpenSQLite(t)
	ctx := context.Background()

	require.NoError(t, SeedIfEmpty(ctx, db, "small"))

	var users int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM users`).Scan(&users).Error)
	assert.Equal(t, int64(10), users)

	// A second run sees existing users and does nothing.
	require.NoError(t, SeedIfEmpty(ctx, db, "small"))
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM users`).Scan(&users).Error)
	assert.Equal(t, int64(10), users)
}

func TestSeedIfEmpty_UnknownPreset(t *testing.T) {
	db := testutil.OpenSQLite(t)
	assert.Error(t, SeedIfEmpty(context.Background(), db, "missing"))
}
