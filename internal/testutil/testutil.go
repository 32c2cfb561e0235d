// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/careerkit/careerkit-service/internal/models"
)

var dbSeq atomic.Int64

// NewTestDB returns a migrated, isolated in-memory SQLite database
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:careerkit_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// a single connection keeps the in-memory database alive and serializes transactions
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// NewTestLogger returns a logger that discards output
func NewTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateUser inserts a user with the given id
func CreateUser(t testing.TB, db *gorm.DB, id string) *models.User {
	t.Helper()

	user := &models.User{
		ID:         id,
		ExternalID: "ext-" + id,
		Email:      id + "@example.com",
		Name:       id,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", id, err)
	}
	return user
}

// CreateCourse inserts an active course owned by creatorID
func CreateCourse(t testing.TB, db *gorm.DB, creatorID string, premium bool, price float64) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:     "Course by " + creatorID,
		Category:  "Engineering",
		JobRole:   "Backend Developer",
		Level:     models.LevelBeginner,
		IsPremium: premium,
		Price:     price,
		Status:    models.CourseActive,
		CreatorID: creatorID,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}
