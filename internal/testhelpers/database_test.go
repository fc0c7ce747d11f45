package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/internal/models"
)

func TestSetupSQLiteDB(t *testing.T) {
	db := SetupSQLiteDB(t)
	require.NotNil(t, db)

	for _, table := range []interface{}{&models.User{}, &models.FoodLogEntry{}, &models.DailyNutritionTotal{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}

	user := CreateUser(t, db, "helper@example.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.HasTargets())
}

func TestSetupSQLiteDB_IsolatedPerTest(t *testing.T) {
	db := SetupSQLiteDB(t)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
