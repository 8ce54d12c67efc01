package db

// Category 定义了栏目模型，与文章是一对多关系
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	URLSlug     string `gorm:"column:url_slug;size:100;not null;uniqueIndex"`
	Description string `gorm:"size:500"`
	ShowOnMenu  bool   `gorm:"not null;default:false"`
	Posts       []Post
}
