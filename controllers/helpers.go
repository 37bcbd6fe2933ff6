package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/cppla/pixmarket/market"
	"github.com/cppla/pixmarket/middleware"
	"github.com/cppla/pixmarket/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// maxPage keeps (page-1)*pageSize far inside int range.
	maxPage = 1_000_000
)

var (
	lockForUpdate = clause.Locking{Strength: "UPDATE"}
	errNotAuthor  = errors.New("caller is not the author")
)

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := defaultPageSize
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = min(p, maxPage)
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= maxPageSize {
		pageSize = s
	}
	return page, pageSize
}

func paginationBlock(page, pageSize int, total int64) gin.H {
	return gin.H{
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

func getUserID(ctx *gin.Context) (string, bool) {
	uid := middleware.CurrentUserID(ctx)
	return uid, uid != ""
}

// respondDomainError writes a *market.Error with its own status and code.
// Anything else is logged and answered with the given 5xx code.
func respondDomainError(ctx *gin.Context, err error, code int, message string) {
	var de *market.Error
	if errors.As(err, &de) {
		utils.Error(ctx, de.Status, de.Code, err.Error())
		return
	}
	utils.Logger.Error(message, zap.Error(err))
	utils.Error(ctx, http.StatusInternalServerError, code, message)
}

// responseCache wraps an optional utils.Cache; a nil cache turns every call into a no-op.
type responseCache struct {
	cache utils.Cache
	ttl   time.Duration
}

func (c responseCache) serve(ctx *gin.Context, key string) bool {
	if c.cache == nil {
		return false
	}
	if b, ok := c.cache.GetBytes(ctx.Request.Context(), key); ok {
		utils.SuccessRaw(ctx, b)
		return true
	}
	return false
}

// successCached answers with data and stores the full envelope under key.
func (c responseCache) successCached(ctx *gin.Context, key string, data interface{}) {
	if c.cache != nil {
		c.cache.SetJSON(ctx.Request.Context(), key, utils.JSONResponse{Code: 0, Message: "success", Data: data}, c.ttl)
	}
	utils.Success(ctx, data)
}

func (c responseCache) invalidate(ctx context.Context, prefixes ...string) {
	if c.cache == nil {
		return
	}
	for _, p := range prefixes {
		c.cache.InvalidateByPrefix(ctx, p)
	}
}
