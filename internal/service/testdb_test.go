package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tatblog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Author{}, &db.Category{}, &db.Tag{}, &db.Post{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func seedAuthor(t *testing.T, gdb *gorm.DB, name, slug string) db.Author {
	t.Helper()

	author := db.Author{FullName: name, URLSlug: slug, JoinedDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	if err := gdb.Create(&author).Error; err != nil {
		t.Fatalf("failed to seed author: %v", err)
	}
	return author
}

func seedCategory(t *testing.T, gdb *gorm.DB, name, slug string, showOnMenu bool) db.Category {
	t.Helper()

	category := db.Category{Name: name, URLSlug: slug, ShowOnMenu: showOnMenu}
	if err := gdb.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

func seedTag(t *testing.T, gdb *gorm.DB, name, slug string) db.Tag {
	t.Helper()

	tag := db.Tag{Name: name, URLSlug: slug}
	if err := gdb.Create(&tag).Error; err != nil {
		t.Fatalf("failed to seed tag: %v", err)
	}
	return tag
}

func seedPost(t *testing.T, gdb *gorm.DB, post db.Post) db.Post {
	t.Helper()

	if post.PostedDate.IsZero() {
		post.PostedDate = time.Date(2023, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post %q: %v", post.Title, err)
	}
	return post
}
