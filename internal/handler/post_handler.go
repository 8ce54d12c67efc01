package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tatblog/internal/service"
)

func (a *API) postQueryFromRequest(c *gin.Context) service.PostQuery {
	return service.PostQuery{
		AuthorID:      parseUintQuery(c, "author_id"),
		CategoryID:    parseUintQuery(c, "category_id"),
		CategorySlug:  strings.TrimSpace(c.Query("category")),
		Year:          parseIntQuery(c, "year"),
		Month:         parseIntQuery(c, "month"),
		Keyword:       strings.TrimSpace(c.Query("keyword")),
		PublishedOnly: c.Query("published") != "false",
	}
}

// GetPosts 按查询条件分页返回文章摘要列表
func (a *API) GetPosts(c *gin.Context) {
	paging, ok := a.pagingFromQuery(c)
	if !ok {
		return
	}

	query := a.postQueryFromRequest(c)
	result, err := service.FindPagedPostsAs[service.PostSummary](
		c.Request.Context(), a.posts, query, paging, service.SelectPostSummary)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSort), errors.Is(err, service.ErrInvalidPaging):
			respondError(c, http.StatusBadRequest, "无效的分页参数")
		default:
			respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       result.Items,
		"total":       result.TotalCount,
		"page":        result.PageNumber,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

// GetPopularPosts 返回浏览量最高的若干篇文章
func (a *API) GetPopularPosts(c *gin.Context) {
	limit := parsePositiveInt(c.DefaultQuery("limit", "5"), 5)

	posts, err := a.posts.GetPopularArticles(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取热门文章失败")
		return
	}

	response := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		response = append(response, gin.H{
			"id":          post.ID,
			"title":       post.Title,
			"slug":        post.URLSlug,
			"view_count":  post.ViewCount,
			"posted_date": post.PostedDate,
			"author":      post.Author.FullName,
			"category":    post.Category.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{"posts": response})
}

// GetPost 按年/月/slug 定位一篇文章，正文渲染为安全的 HTML，
// 同时累加浏览计数
func (a *API) GetPost(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		respondError(c, http.StatusBadRequest, "无效的年份")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		respondError(c, http.StatusBadRequest, "无效的月份")
		return
	}
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, http.StatusBadRequest, "无效的文章标识")
		return
	}

	post, err := a.posts.GetPost(c.Request.Context(), year, month, slug)
	if err != nil {
		if errors.Is(err, service.ErrAmbiguousSlug) {
			respondError(c, http.StatusConflict, "文章标识存在歧义")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, "文章不存在")
		return
	}

	body, err := renderMarkdown(post.Description)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "渲染文章正文失败")
		return
	}

	if err := a.posts.IncreaseViewCount(c.Request.Context(), post.ID); err != nil {
		// 计数失败不影响阅读
		c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                post.ID,
		"title":             post.Title,
		"slug":              post.URLSlug,
		"short_description": post.ShortDescription,
		"body":              body,
		"meta":              post.Meta,
		"image_url":         post.ImageURL,
		"view_count":        post.ViewCount,
		"posted_date":       post.PostedDate,
		"author":            gin.H{"id": post.Author.ID, "full_name": post.Author.FullName},
		"category":          gin.H{"id": post.Category.ID, "name": post.Category.Name, "slug": post.Category.URLSlug},
	})
}

// GetArchives 返回最近若干个月的发文统计
func (a *API) GetArchives(c *gin.Context) {
	months := parsePositiveInt(c.DefaultQuery("months", "12"), 12)

	rows, err := a.posts.CountPostsByMonth(c.Request.Context(), months)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取归档统计失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"archives": rows})
}

// TogglePublished 切换文章的发布状态
func (a *API) TogglePublished(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := a.posts.TogglePublished(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新文章状态失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章状态已更新"})
}
