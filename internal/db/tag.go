package db

// Tag 定义了标签模型，通过 post_tags 关联表与文章多对多
type Tag struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	URLSlug     string `gorm:"column:url_slug;size:100;not null;uniqueIndex"`
	Description string `gorm:"size:500"`
	Posts       []Post `gorm:"many2many:post_tags;"`
}
