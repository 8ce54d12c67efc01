package service

import (
	"strings"

	"gorm.io/gorm"
)

// PostQuery 保存文章的搜索条件，零值字段表示该维度不限制
type PostQuery struct {
	AuthorID      uint
	CategoryID    uint
	CategorySlug  string
	Year          int
	Month         int
	Keyword       string
	PublishedOnly bool
}

// applyPostQuery combines the non-zero constraints of q conjunctively onto
// the supplied query. It never touches shared state, so the same PostQuery
// value can back a count and a page fetch; callers must hand it a fresh
// query each time.
func applyPostQuery(query *gorm.DB, q PostQuery) *gorm.DB {
	if q.PublishedOnly {
		query = query.Where("posts.published = ?", true)
	}

	if q.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", q.AuthorID)
	}

	if q.CategoryID > 0 {
		query = query.Where("posts.category_id = ?", q.CategoryID)
	}

	if slug := strings.TrimSpace(q.CategorySlug); slug != "" {
		query = query.
			Joins("JOIN categories AS filter_categories ON filter_categories.id = posts.category_id").
			Where("filter_categories.url_slug = ?", slug)
	}

	if q.Year > 0 {
		query = query.Where("CAST(strftime('%Y', posts.posted_date) AS INTEGER) = ?", q.Year)
	}

	if q.Month > 0 {
		query = query.Where("CAST(strftime('%m', posts.posted_date) AS INTEGER) = ?", q.Month)
	}

	if keyword := strings.TrimSpace(q.Keyword); keyword != "" {
		pattern := "%" + strings.ToLower(keyword) + "%"
		query = query.Where(
			"(LOWER(posts.title) LIKE ? OR LOWER(posts.short_description) LIKE ? OR LOWER(posts.description) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	return query
}
