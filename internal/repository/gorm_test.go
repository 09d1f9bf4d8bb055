package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/relaxmesh/stencil/pkg/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&BenchmarkRun{}))

	return db
}

func TestGormResultRepository_SaveAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormResultRepository(db)
	ctx := context.Background()

	t.Run("List_Empty", func(t *testing.T) {
		results, err := repo.List(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Save_And_List", func(t *testing.T) {
		r1 := model.Result{LoopCount: 1, Type: model.RunTypeSerial, Size: 64, Threads: 1, Precision: 0.0001, Seconds: 0.01}
		r2 := model.Result{LoopCount: 2, Type: model.RunTypePool, Size: 256, Threads: 4, Precision: 0.0001, Seconds: 0.5}

		require.NoError(t, repo.Save(ctx, r1, ""))
		require.NoError(t, repo.Save(ctx, r2, "file:///tmp/archive.csv.gz"))

		results, err := repo.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		// newest first
		assert.Equal(t, model.RunTypePool, results[0].Type)
		assert.Equal(t, model.RunTypeSerial, results[1].Type)
	})

	t.Run("List_RespectsLimit", func(t *testing.T) {
		results, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}

func TestGormResultRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormResultRepository(db)
	ctx := context.Background()

	result := model.Result{LoopCount: 5, Type: model.RunTypeDistributed, Size: 128, Threads: 2, Precision: 0.001}
	require.NoError(t, repo.Save(ctx, result, ""))

	var row BenchmarkRun
	require.NoError(t, db.First(&row).Error)

	got, err := repo.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunTypeDistributed, got.Type)
	assert.Equal(t, 128, got.Size)

	_, err = repo.GetByID(ctx, row.ID+999)
	assert.Error(t, err)
}
