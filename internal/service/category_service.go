package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tatblog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInUse      = errors.New("category is referenced by posts")
	ErrCategoryNameNeeded = errors.New("category name is required")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

var categorySortColumns = map[string]string{
	"id":         "categories.id",
	"name":       "categories.name",
	"post_count": "post_count",
}

// CategoryItem 是栏目的只读视图，PostCount 实时统计已发布文章数
type CategoryItem struct {
	ID          uint
	Name        string
	URLSlug     string `gorm:"column:url_slug"`
	Description string
	ShowOnMenu  bool
	PostCount   int64
}

func (s *CategoryService) categoryItemQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&db.Category{}).
		Select("categories.id, categories.name, categories.url_slug, categories.description, "+
			"categories.show_on_menu, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id AND posts.published = ?", true).
		Group("categories.id")
}

// GetCategories lists categories ordered by name, each annotated with its
// published post count. showOnMenu restricts to menu-flagged categories.
func (s *CategoryService) GetCategories(ctx context.Context, showOnMenu bool) ([]CategoryItem, error) {
	query := s.categoryItemQuery(ctx).Order("categories.name asc, categories.id asc")
	if showOnMenu {
		query = query.Where("categories.show_on_menu = ?", true)
	}

	var items []CategoryItem
	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []CategoryItem{}
	}
	return items, nil
}

// GetPagedCategories pages the category items per pagingParams.
func (s *CategoryService) GetPagedCategories(ctx context.Context, p PagingParams) (*PagedResult[CategoryItem], error) {
	order, err := p.orderClause(categorySortColumns, "categories.name asc, categories.id asc")
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&db.Category{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []CategoryItem
	if err := s.categoryItemQuery(ctx).
		Order(order).
		Limit(p.PageSize).
		Offset(p.offset()).
		Scan(&items).Error; err != nil {
		return nil, err
	}

	return newPagedResult(items, total, p), nil
}

// GetCategoryBySlug looks a category up by slug; (nil, nil) when absent.
func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*db.Category, error) {
	var category db.Category
	err := s.db.WithContext(ctx).
		Where("url_slug = ?", strings.TrimSpace(slug)).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetCategoryByID looks a category up by id; (nil, nil) when absent.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*db.Category, error) {
	var category db.Category
	err := s.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// IsCategorySlugExisted reports whether a category other than categoryID
// already holds the slug.
func (s *CategoryService) IsCategorySlugExisted(ctx context.Context, categoryID uint, slug string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Category{}).
		Where("id <> ? AND url_slug = ?", categoryID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddOrUpdateCategory upserts a category: update when ID is set, insert
// otherwise. An empty slug is derived from the name. Slug uniqueness is
// pre-checked; the unique index remains the final arbiter under races.
func (s *CategoryService) AddOrUpdateCategory(ctx context.Context, category *db.Category) error {
	name := strings.TrimSpace(category.Name)
	if name == "" {
		return ErrCategoryNameNeeded
	}
	category.Name = name

	slug := strings.TrimSpace(category.URLSlug)
	if slug == "" {
		slug = slugify(name)
	}
	category.URLSlug = slug

	taken, err := s.IsCategorySlugExisted(ctx, category.ID, slug)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugConflict
	}

	if err := s.db.WithContext(ctx).Omit("Posts").Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugConflict
		}
		return err
	}
	return nil
}

// DeleteCategoryByID removes a category. Deletion is blocked with
// ErrCategoryInUse while posts still reference it; reassign or delete those
// posts first. The reference check and the delete share one transaction.
func (s *CategoryService) DeleteCategoryByID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&db.Post{}).
			Where("category_id = ?", id).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrCategoryInUse
		}

		result := tx.Delete(&db.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// IsPostSlugExistedInCategory reports whether any post inside the category
// already holds the slug, for uniqueness scoped to one category.
func (s *CategoryService) IsPostSlugExistedInCategory(ctx context.Context, categoryID uint, slug string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Post{}).
		Where("category_id = ? AND url_slug = ?", categoryID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
