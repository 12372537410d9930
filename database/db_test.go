package database

import (
	"path/filepath"
	"testing"

	"gerisafe/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "gerisafe.db")
	require.NoError(t, InitDB(dbPath))
	t.Cleanup(func() {
		_ = CloseDB()
	})
	return dbPath
}

func TestInitDBSeedsCatalog(t *testing.T) {
	initTestDB(t)

	var classCount, drugCount int64
	require.NoError(t, GetDB().Model(model.DrugClass{}).Count(&classCount).Error)
	require.NoError(t, GetDB().Model(model.Drug{}).Count(&drugCount).Error)
	assert.Greater(t, classCount, int64(0))
	assert.Greater(t, drugCount, int64(0))

	drug := &model.Drug{}
	require.NoError(t, GetDB().Where("name = ?", "Digoxin").First(drug).Error)
	assert.NotEmpty(t, drug.BeersCriteria)
	assert.NotEmpty(t, drug.StoppStartCriteria)

	drugClass := &model.DrugClass{}
	require.NoError(t, GetDB().Where("id = ?", drug.DrugClassId).First(drugClass).Error)
	assert.Equal(t, "Cardiac Glycosides", drugClass.Name)
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	dbPath := initTestDB(t)

	var before int64
	require.NoError(t, GetDB().Model(model.Drug{}).Count(&before).Error)

	// reopening the same database must not duplicate the catalog
	require.NoError(t, CloseDB())
	require.NoError(t, InitDB(dbPath))

	var after int64
	require.NoError(t, GetDB().Model(model.Drug{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestIsDuplicateKey(t *testing.T) {
	initTestDB(t)

	user := &model.User{Name: "A", Email: "a@example.com", Password: "x"}
	require.NoError(t, GetDB().Create(user).Error)

	dup := &model.User{Name: "B", Email: "a@example.com", Password: "y"}
	err := GetDB().Create(dup).Error
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsDuplicateKey(nil))
}
