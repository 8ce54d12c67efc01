package db

import "time"

// Post 定义了文章模型
type Post struct {
	ID               uint   `gorm:"primaryKey"`
	Title            string `gorm:"size:500;not null"`
	ShortDescription string `gorm:"size:5000"`
	Description      string
	Meta             string `gorm:"size:1000"`
	URLSlug          string `gorm:"column:url_slug;size:200;not null;index"`
	ImageURL         string `gorm:"size:1000"`
	ViewCount        int    `gorm:"not null;default:0"`
	Published        bool   `gorm:"not null;default:false"`
	PostedDate       time.Time
	ModifiedDate     *time.Time
	AuthorID         uint `gorm:"index"`
	Author           Author
	CategoryID       uint `gorm:"index"`
	Category         Category
	Tags             []Tag `gorm:"many2many:post_tags;"`
}
