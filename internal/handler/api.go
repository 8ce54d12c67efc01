package handler

import (
	"github.com/tatblog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db              *gorm.DB
	posts           *service.PostService
	categories      *service.CategoryService
	tags            *service.TagService
	defaultPageSize int
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, defaultPageSize int) *API {
	if defaultPageSize < 1 {
		defaultPageSize = 10
	}

	return &API{
		db:              db,
		posts:           service.NewPostService(db),
		categories:      service.NewCategoryService(db),
		tags:            service.NewTagService(db),
		defaultPageSize: defaultPageSize,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
