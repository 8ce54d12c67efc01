package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tatblog/internal/db"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

var tagSortColumns = map[string]string{
	"id":         "tags.id",
	"name":       "tags.name",
	"post_count": "post_count",
}

// TagItem 是标签的只读视图，PostCount 实时统计已发布文章数
type TagItem struct {
	ID          uint
	Name        string
	URLSlug     string `gorm:"column:url_slug"`
	Description string
	PostCount   int64
}

func (s *TagService) tagItemQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&db.Tag{}).
		Select("tags.id, tags.name, tags.url_slug, tags.description, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("LEFT JOIN posts ON posts.id = post_tags.post_id AND posts.published = ?", true).
		Group("tags.id")
}

// GetTagItems lists every tag with its published post count, name ascending.
func (s *TagService) GetTagItems(ctx context.Context) ([]TagItem, error) {
	var items []TagItem
	if err := s.tagItemQuery(ctx).
		Order("tags.name asc, tags.id asc").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []TagItem{}
	}
	return items, nil
}

// GetPagedTags pages the tag items per pagingParams.
func (s *TagService) GetPagedTags(ctx context.Context, p PagingParams) (*PagedResult[TagItem], error) {
	order, err := p.orderClause(tagSortColumns, "tags.name asc, tags.id asc")
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&db.Tag{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []TagItem
	if err := s.tagItemQuery(ctx).
		Order(order).
		Limit(p.PageSize).
		Offset(p.offset()).
		Scan(&items).Error; err != nil {
		return nil, err
	}

	return newPagedResult(items, total, p), nil
}

// GetTagBySlug looks a tag up by slug; (nil, nil) when absent.
func (s *TagService) GetTagBySlug(ctx context.Context, slug string) (*db.Tag, error) {
	var tag db.Tag
	err := s.db.WithContext(ctx).
		Where("url_slug = ?", strings.TrimSpace(slug)).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTagWithID removes the tag's post associations and then the tag
// itself inside one transaction, so a failure between the two statements
// never leaves an orphaned tag or a dangling association row.
func (s *TagService) DeleteTagWithID(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&db.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTagNotFound
		}
		return nil
	})
}
