package database

import (
	"path/filepath"
	"testing"

	"github.com/sangkips/storefront-pos/internal/config"
	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_SQLiteMigrateAndSeed(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "nested", "pos.db"),
	}

	db, err := NewDB(cfg, false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	seed := &config.SeedConfig{AdminEmail: "admin@example.com", AdminPassword: "secret"}
	require.NoError(t, SeedAdminUser(db, seed))
	// second run is a no-op
	require.NoError(t, SeedAdminUser(db, seed))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
	assert.Equal(t, "Store Admin", users[0].Name)
	assert.True(t, utils.CheckPassword(users[0].Password, "secret"))
}

func TestNewDB_UnknownDriver(t *testing.T) {
	_, err := NewDB(&config.DatabaseConfig{Driver: "oracle"}, false)
	assert.Error(t, err)
}
