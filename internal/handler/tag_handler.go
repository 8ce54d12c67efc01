package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tatblog/internal/service"
)

// GetTags 获取所有标签及其文章数
func (a *API) GetTags(c *gin.Context) {
	items, err := a.tags.GetTagItems(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": items})
}

// GetPagedTags 分页获取标签列表
func (a *API) GetPagedTags(c *gin.Context) {
	paging, ok := a.pagingFromQuery(c)
	if !ok {
		return
	}

	result, err := a.tags.GetPagedTags(c.Request.Context(), paging)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSort), errors.Is(err, service.ErrInvalidPaging):
			respondError(c, http.StatusBadRequest, "无效的分页参数")
		default:
			respondError(c, http.StatusInternalServerError, "获取标签列表失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":        result.Items,
		"total":       result.TotalCount,
		"page":        result.PageNumber,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

// GetTagBySlug 按标识查找标签
func (a *API) GetTagBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	tag, err := a.tags.GetTagBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取标签失败")
		return
	}
	if tag == nil {
		respondError(c, http.StatusNotFound, "标签不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag 删除标签并级联清理其与文章的关联
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	if err := a.tags.DeleteTagWithID(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			respondError(c, http.StatusNotFound, "标签不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除标签失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "标签删除成功"})
}
