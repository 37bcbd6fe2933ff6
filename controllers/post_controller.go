package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/pixmarket/middleware"
	"github.com/cppla/pixmarket/models"
	"github.com/cppla/pixmarket/utils"
)

const (
	postsListCachePrefix  = "cache:posts:list:"
	postDetailCachePrefix = "cache:post:detail:"
	userPostsCachePrefix  = "cache:user:"
)

// PostController manages CRUD operations for posts and comments.
type PostController struct {
	db    *gorm.DB
	cache responseCache
}

// NewPostController creates a new PostController instance. cache may be nil.
func NewPostController(db *gorm.DB, cache utils.Cache, ttl time.Duration) *PostController {
	return &PostController{db: db, cache: responseCache{cache: cache, ttl: ttl}}
}

// CreatePost stores an image post. The media itself lives with the media host;
// the post only keeps its URL and content key.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Caption  string `json:"caption"`
		ImageURL string `json:"image_url" binding:"required,url"`
		MediaKey string `json:"media_key"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post := models.Post{
		UserID:   userID,
		Caption:  utils.Sanitize(strings.TrimSpace(req.Caption)),
		ImageURL: strings.TrimSpace(req.ImageURL),
		MediaKey: utils.PlainText(req.MediaKey),
	}

	if err := p.db.WithContext(ctx.Request.Context()).Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create post")
		return
	}

	p.cache.invalidate(ctx.Request.Context(), postsListCachePrefix, userPostsCachePrefix+userID+":posts:")
	utils.Created(ctx, gin.H{"post": post})
}

// ListPosts returns paginated posts, newest first, including author information.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("%spage=%d:size=%d", postsListCachePrefix, page, pageSize)
	if p.cache.serve(ctx, cacheKey) {
		return
	}

	var posts []models.Post
	var total int64
	query := p.db.WithContext(ctx.Request.Context()).Model(&models.Post{}).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count posts")
		return
	}
	if err := query.Preload("User").Order("created_at DESC").Order("id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to list posts")
		return
	}

	p.cache.successCached(ctx, cacheKey, gin.H{
		"items":      posts,
		"pagination": paginationBlock(page, pageSize, total),
	})
}

// GetPost returns a post with its comments.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID := ctx.Param("id")
	if p.cache.serve(ctx, postDetailCachePrefix+postID) {
		return
	}

	var post models.Post
	err := p.db.WithContext(ctx.Request.Context()).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").
		First(&post, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load post")
		return
	}

	p.cache.successCached(ctx, postDetailCachePrefix+postID, gin.H{"post": post})
}

// ListMyPosts returns posts created by the authenticated user.
func (p *PostController) ListMyPosts(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}
	p.listByAuthor(ctx, userID)
}

// ListUserPosts returns posts created by a specific user (public).
func (p *PostController) ListUserPosts(ctx *gin.Context) {
	userID := strings.TrimSpace(ctx.Param("id"))
	if userID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40060, "missing user id")
		return
	}
	p.listByAuthor(ctx, userID)
}

func (p *PostController) listByAuthor(ctx *gin.Context, userID string) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	cacheKey := fmt.Sprintf("%s%s:posts:page=%d:size=%d", userPostsCachePrefix, userID, page, pageSize)
	if p.cache.serve(ctx, cacheKey) {
		return
	}

	var posts []models.Post
	var total int64
	q := p.db.WithContext(ctx.Request.Context()).Model(&models.Post{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to count user posts")
		return
	}
	if err := q.Preload("User").Order("created_at DESC").Order("id ASC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to list user posts")
		return
	}

	p.cache.successCached(ctx, cacheKey, gin.H{
		"items":      posts,
		"pagination": paginationBlock(page, pageSize, total),
	})
}

// DeletePost removes a post together with its bids and comments. Only the
// author or an admin may delete.
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}
	postID := ctx.Param("id")

	var post models.Post
	err := p.db.WithContext(ctx.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockForUpdate).First(&post, "id = ?", postID).Error; err != nil {
			return err
		}
		if post.UserID != userID && !middleware.IsAdmin(ctx) {
			return errNotAuthor
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Bid{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(ctx, http.StatusNotFound, 40404, "post not found")
		return
	case errors.Is(err, errNotAuthor):
		utils.Error(ctx, http.StatusForbidden, 40302, "you can only delete your own posts")
		return
	case err != nil:
		utils.Logger.Error("delete post failed", zap.String("post_id", postID), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to delete post")
		return
	}

	p.cache.invalidate(ctx.Request.Context(),
		postsListCachePrefix,
		postDetailCachePrefix+postID,
		userPostsCachePrefix+post.UserID+":posts:",
		marketCachePrefix,
	)
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// CreateComment adds a comment to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "content cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	db := p.db.WithContext(ctx.Request.Context())
	postID := ctx.Param("id")
	var post models.Post
	if err := db.Select("id").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load post")
		return
	}

	comment := models.Comment{PostID: post.ID, UserID: userID, Content: content}
	if err := db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to create comment")
		return
	}
	if err := db.Preload("User").First(&comment, "id = ?", comment.ID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load comment")
		return
	}

	p.cache.invalidate(ctx.Request.Context(), postDetailCachePrefix+post.ID)
	utils.Created(ctx, gin.H{"comment": comment})
}

// DeleteComment allows the comment owner or admin to delete a comment.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	cid := strings.TrimSpace(ctx.Param("commentId"))
	if cid == "" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "missing comment id")
		return
	}
	uid, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	db := p.db.WithContext(ctx.Request.Context())
	var cmt models.Comment
	if err := db.First(&cmt, "id = ?", cid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load comment")
		return
	}
	if cmt.UserID != uid && !middleware.IsAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40320, "you can only delete your own comment")
		return
	}
	if err := db.Delete(&cmt).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to delete comment")
		return
	}

	p.cache.invalidate(ctx.Request.Context(), postDetailCachePrefix+cmt.PostID)
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
