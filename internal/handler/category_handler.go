package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tatblog/internal/db"
	"github.com/tatblog/internal/service"
)

type categoryRequest struct {
	ID          uint   `json:"id"`
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ShowOnMenu  bool   `json:"show_on_menu"`
}

// GetCategories 获取栏目列表，可按导航菜单过滤
func (a *API) GetCategories(c *gin.Context) {
	showOnMenu := c.Query("show_on_menu") == "true"

	items, err := a.categories.GetCategories(c.Request.Context(), showOnMenu)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取栏目列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": items})
}

// GetPagedCategories 分页获取栏目列表
func (a *API) GetPagedCategories(c *gin.Context) {
	paging, ok := a.pagingFromQuery(c)
	if !ok {
		return
	}

	result, err := a.categories.GetPagedCategories(c.Request.Context(), paging)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSort), errors.Is(err, service.ErrInvalidPaging):
			respondError(c, http.StatusBadRequest, "无效的分页参数")
		default:
			respondError(c, http.StatusInternalServerError, "获取栏目列表失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":  result.Items,
		"total":       result.TotalCount,
		"page":        result.PageNumber,
		"page_size":   result.PageSize,
		"total_pages": result.TotalPages,
	})
}

// GetCategoryBySlug 按标识查找栏目
func (a *API) GetCategoryBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	category, err := a.categories.GetCategoryBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取栏目失败")
		return
	}
	if category == nil {
		respondError(c, http.StatusNotFound, "栏目不存在")
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// SaveCategory 新增或更新栏目
func (a *API) SaveCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req, "栏目名称不能为空") {
		return
	}

	category := db.Category{
		ID:          req.ID,
		Name:        req.Name,
		URLSlug:     req.Slug,
		Description: req.Description,
		ShowOnMenu:  req.ShowOnMenu,
	}

	if err := a.categories.AddOrUpdateCategory(c.Request.Context(), &category); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNameNeeded):
			respondError(c, http.StatusBadRequest, "栏目名称不能为空")
		case errors.Is(err, service.ErrSlugConflict):
			respondError(c, http.StatusConflict, "栏目标识已被占用")
		default:
			respondError(c, http.StatusInternalServerError, "保存栏目失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "栏目保存成功", "category": category})
}

// DeleteCategory 删除栏目，仍被文章引用时拒绝
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的栏目ID")
		return
	}

	if err := a.categories.DeleteCategoryByID(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, http.StatusConflict, "栏目下仍有文章，无法删除")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "栏目不存在")
		default:
			respondError(c, http.StatusInternalServerError, "删除栏目失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "栏目删除成功"})
}
