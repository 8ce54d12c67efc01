package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tatblog/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parsePositiveInt(value string, fallback int) int {
	num, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || num < 1 {
		return fallback
	}
	return num
}

func parseIntQuery(c *gin.Context, key string) int {
	num, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil || num < 0 {
		return 0
	}
	return num
}

func parseUintQuery(c *gin.Context, key string) uint {
	num, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 32)
	if err != nil {
		return 0
	}
	return uint(num)
}

// pagingFromQuery 从查询参数组装分页请求；排序是否合法交由服务层白名单裁决
func (a *API) pagingFromQuery(c *gin.Context) (service.PagingParams, bool) {
	order, err := service.ParseSortOrder(c.Query("order"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的排序方向")
		return service.PagingParams{}, false
	}

	return service.PagingParams{
		PageNumber: parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PageSize:   parsePositiveInt(c.DefaultQuery("page_size", ""), a.defaultPageSize),
		SortColumn: strings.TrimSpace(c.Query("sort")),
		SortOrder:  order,
	}, true
}
