package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tatblog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrAmbiguousSlug = errors.New("slug matches more than one post")
	ErrSlugConflict  = errors.New("slug is already taken")
)

// PostService wraps post related database operations. Every method runs
// against the caller's context so cancellation aborts the in-flight query.
type PostService struct {
	db *gorm.DB
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

var postSortColumns = map[string]string{
	"id":          "posts.id",
	"title":       "posts.title",
	"posted_date": "posts.posted_date",
	"view_count":  "posts.view_count",
}

// MonthlyPostCount 按年月汇总文章数量
type MonthlyPostCount struct {
	Year      int
	Month     int
	PostCount int64
}

// PostSummary 是文章列表的精简投影，避免加载完整实体
type PostSummary struct {
	ID           uint
	Title        string
	URLSlug      string `gorm:"column:url_slug"`
	ViewCount    int
	PostedDate   time.Time
	AuthorName   string
	CategoryName string
}

// SelectPostSummary narrows a post query to the summary columns. The joins
// use their own aliases so they cannot collide with ones added by filters.
func SelectPostSummary(query *gorm.DB) *gorm.DB {
	return query.
		Select("posts.id, posts.title, posts.url_slug, posts.view_count, posts.posted_date, " +
			"summary_authors.full_name AS author_name, summary_categories.name AS category_name").
		Joins("LEFT JOIN authors AS summary_authors ON summary_authors.id = posts.author_id").
		Joins("LEFT JOIN categories AS summary_categories ON summary_categories.id = posts.category_id")
}

// GetPost finds the single post matching the non-zero constraints among
// posted year, posted month and slug, with Author and Category resolved.
// Zero matches is a valid outcome and returns (nil, nil). A slug-qualified
// lookup that somehow matches more than one row fails with ErrAmbiguousSlug
// since post slugs are expected to be unique.
func (s *PostService) GetPost(ctx context.Context, year, month int, slug string) (*db.Post, error) {
	query := s.db.WithContext(ctx).Model(&db.Post{}).
		Preload("Author").
		Preload("Category")

	if year > 0 {
		query = query.Where("CAST(strftime('%Y', posts.posted_date) AS INTEGER) = ?", year)
	}
	if month > 0 {
		query = query.Where("CAST(strftime('%m', posts.posted_date) AS INTEGER) = ?", month)
	}

	slug = strings.TrimSpace(slug)
	if slug != "" {
		query = query.Where("posts.url_slug = ?", slug)
	}

	var posts []db.Post
	if err := query.
		Order("posts.posted_date desc, posts.id desc").
		Limit(2).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, nil
	}
	if slug != "" && len(posts) > 1 {
		return nil, ErrAmbiguousSlug
	}
	return &posts[0], nil
}

// GetPostByID fetches a post with its author, category and tags resolved.
func (s *PostService) GetPostByID(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPopularArticles returns the numPosts most viewed posts. Ties on view
// count break by most recent posted date so the ranking is deterministic.
// numPosts <= 0 yields an empty list.
func (s *PostService) GetPopularArticles(ctx context.Context, numPosts int) ([]db.Post, error) {
	if numPosts <= 0 {
		return []db.Post{}, nil
	}

	var posts []db.Post
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Order("view_count desc, posted_date desc, id desc").
		Limit(numPosts).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// IsPostSlugExisted reports whether a post other than postID already holds
// the slug. Excluding the post itself keeps no-op edits valid. The check is
// advisory; the unique index on url_slug is the final arbiter under races.
func (s *PostService) IsPostSlugExisted(ctx context.Context, postID uint, slug string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Post{}).
		Where("id <> ? AND url_slug = ?", postID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncreaseViewCount bumps the post's view counter by one as a single
// in-place UPDATE, so concurrent increments never lose updates. A missing
// post is a no-op, not an error.
func (s *PostService) IncreaseViewCount(ctx context.Context, postID uint) error {
	return s.db.WithContext(ctx).Model(&db.Post{}).
		Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// TogglePublished flips the post's published flag in place.
func (s *PostService) TogglePublished(ctx context.Context, postID uint) error {
	result := s.db.WithContext(ctx).Model(&db.Post{}).
		Where("id = ?", postID).
		UpdateColumn("published", gorm.Expr("NOT published"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AddOrUpdatePost upserts a post and replaces its tag associations in one
// transaction. An empty slug is derived from the title; uniqueness is
// pre-checked for a friendly error and backstopped by the unique index.
func (s *PostService) AddOrUpdatePost(ctx context.Context, post *db.Post) error {
	slug := strings.TrimSpace(post.URLSlug)
	if slug == "" {
		slug = slugify(post.Title)
	}
	post.URLSlug = slug

	taken, err := s.IsPostSlugExisted(ctx, post.ID, slug)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugConflict
	}

	if post.ID > 0 {
		now := time.Now()
		post.ModifiedDate = &now
	} else if post.PostedDate.IsZero() {
		post.PostedDate = time.Now()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Category", "Tags").Save(post).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugConflict
			}
			return err
		}

		if post.Tags != nil {
			if err := tx.Model(post).Association("Tags").Replace(post.Tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindPosts returns all posts matching the query, newest first.
func (s *PostService) FindPosts(ctx context.Context, q PostQuery) ([]db.Post, error) {
	var posts []db.Post
	query := applyPostQuery(s.db.WithContext(ctx).Model(&db.Post{}), q).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order("posts.posted_date desc, posts.id desc")
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts counts the posts matching the query.
func (s *PostService) CountPosts(ctx context.Context, q PostQuery) (int64, error) {
	var total int64
	if err := applyPostQuery(s.db.WithContext(ctx).Model(&db.Post{}), q).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// FindPagedPosts pages the posts matching the query. The count and the page
// rebuild the predicate from the same PostQuery value; writes landing
// between the two statements can skew TotalCount against the page contents,
// which is accepted read-skew rather than a correctness bug.
func (s *PostService) FindPagedPosts(ctx context.Context, q PostQuery, p PagingParams) (*PagedResult[db.Post], error) {
	order, err := p.orderClause(postSortColumns, "posts.posted_date desc, posts.id desc")
	if err != nil {
		return nil, err
	}

	total, err := s.CountPosts(ctx, q)
	if err != nil {
		return nil, err
	}

	var posts []db.Post
	query := applyPostQuery(s.db.WithContext(ctx).Model(&db.Post{}), q).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order(order).
		Limit(p.PageSize).
		Offset(p.offset())
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}

	return newPagedResult(posts, total, p), nil
}

// FindPagedPostsAs pages the posts matching q and scans each row into T.
// The project callback narrows the SELECT before rows are fetched, so
// callers pay only for the columns their projection needs. It is a free
// function because Go methods cannot introduce type parameters.
func FindPagedPostsAs[T any](ctx context.Context, s *PostService, q PostQuery, p PagingParams, project func(*gorm.DB) *gorm.DB) (*PagedResult[T], error) {
	order, err := p.orderClause(postSortColumns, "posts.posted_date desc, posts.id desc")
	if err != nil {
		return nil, err
	}

	total, err := s.CountPosts(ctx, q)
	if err != nil {
		return nil, err
	}

	query := applyPostQuery(s.db.WithContext(ctx).Model(&db.Post{}), q)
	if project != nil {
		query = project(query)
	}

	var items []T
	if err := query.
		Order(order).
		Limit(p.PageSize).
		Offset(p.offset()).
		Scan(&items).Error; err != nil {
		return nil, err
	}

	return newPagedResult(items, total, p), nil
}

// CountPostsByMonth aggregates post totals per posted month, most recent
// month first, limited to the n most recent months that have posts.
func (s *PostService) CountPostsByMonth(ctx context.Context, n int) ([]MonthlyPostCount, error) {
	if n <= 0 {
		return []MonthlyPostCount{}, nil
	}

	var rows []MonthlyPostCount
	if err := s.db.WithContext(ctx).Model(&db.Post{}).
		Select("CAST(strftime('%Y', posted_date) AS INTEGER) AS year, " +
			"CAST(strftime('%m', posted_date) AS INTEGER) AS month, " +
			"COUNT(*) AS post_count").
		Group("year").
		Group("month").
		Order("year desc, month desc").
		Limit(n).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []MonthlyPostCount{}
	}
	return rows, nil
}
