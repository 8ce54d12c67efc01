package db

import "time"

// Author 定义了作者模型
type Author struct {
	ID         uint   `gorm:"primaryKey"`
	FullName   string `gorm:"size:100;not null"`
	URLSlug    string `gorm:"column:url_slug;size:100;uniqueIndex"`
	Email      string `gorm:"size:150"`
	ImageURL   string `gorm:"size:1000"`
	Notes      string `gorm:"size:500"`
	JoinedDate time.Time
	Posts      []Post
}
