package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&BenchmarkRun{}))
	return db
}

func TestNewRepositories(t *testing.T) {
	db := newTestGormDB(t)

	t.Run("Postgres", func(t *testing.T) {
		repos := NewRepositories(db, "postgres")
		require.NotNil(t, repos)
		assert.NotNil(t, repos.Result)
	})

	t.Run("MySQL", func(t *testing.T) {
		repos := NewRepositories(db, "mysql")
		require.NotNil(t, repos)
		assert.NotNil(t, repos.Result)
	})

	t.Run("SQLite", func(t *testing.T) {
		repos := NewRepositories(db, "sqlite")
		require.NotNil(t, repos)
		assert.NotNil(t, repos.Result)
	})
}

func TestRepositories_Close(t *testing.T) {
	db := newTestGormDB(t)
	repos := NewRepositories(db, "sqlite")

	err := repos.Close()
	assert.NoError(t, err)
}

func TestRepositories_DB(t *testing.T) {
	db := newTestGormDB(t)
	repos := NewRepositories(db, "sqlite")

	sqlDB := repos.DB()
	assert.NotNil(t, sqlDB)
}

func TestRepositories_GormDB(t *testing.T) {
	db := newTestGormDB(t)
	repos := NewRepositories(db, "sqlite")

	gormDB := repos.GormDB()
	assert.Equal(t, db, gormDB)
}

func TestRepositories_HealthCheck(t *testing.T) {
	db := newTestGormDB(t)
	repos := NewRepositories(db, "sqlite")

	assert.NoError(t, repos.HealthCheck(context.Background()))
}

func TestDBConfig_Validation(t *testing.T) {
	t.Run("ValidPostgresConfig", func(t *testing.T) {
		cfg := &DBConfig{
			Type:     "postgres",
			Host:     "localhost",
			Port:     5432,
			Database: "testdb",
			User:     "testuser",
			Password: "testpass",
			MaxConns: 10,
		}
		assert.Equal(t, "postgres", cfg.Type)
		assert.Equal(t, 5432, cfg.Port)
	})

	t.Run("ValidMySQLConfig", func(t *testing.T) {
		cfg := &DBConfig{
			Type:     "mysql",
			Host:     "localhost",
			Port:     3306,
			Database: "testdb",
			User:     "testuser",
			Password: "testpass",
			MaxConns: 10,
		}
		assert.Equal(t, "mysql", cfg.Type)
		assert.Equal(t, 3306, cfg.Port)
	})

	t.Run("ValidSQLiteConfig", func(t *testing.T) {
		cfg := &DBConfig{Type: "sqlite", Path: "./runs.db"}
		assert.Equal(t, "sqlite", cfg.Type)
		assert.Equal(t, "./runs.db", cfg.Path)
	})
}
