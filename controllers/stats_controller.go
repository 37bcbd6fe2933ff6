package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/pixmarket/models"
	"github.com/cppla/pixmarket/utils"
)

// StatsController provides site-wide counters. Auction figures live in MarketController.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate counts for users, posts and comments.
func (s *StatsController) GetStats(ctx *gin.Context) {
	db := s.db.WithContext(ctx.Request.Context())
	var userCount, postCount, commentCount, listedCount int64

	// Counters fall back to 0 instead of failing the whole endpoint.
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		commentCount = 0
	}
	if err := db.Model(&models.Post{}).Where("is_in_market = ?", true).Count(&listedCount).Error; err != nil {
		listedCount = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":    userCount,
		"post_count":    postCount,
		"comment_count": commentCount,
		"listed_count":  listedCount,
	})
}

// GetPostStats returns comment and bid counts for one post.
func (s *StatsController) GetPostStats(ctx *gin.Context) {
	id := ctx.Param("id")
	db := s.db.WithContext(ctx.Request.Context())

	var post models.Post
	if err := db.Select("id").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load post")
		return
	}

	var commentsCount, bidCount int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", id).Count(&commentsCount).Error; err != nil {
		commentsCount = 0
	}
	if err := db.Model(&models.Bid{}).Where("post_id = ?", id).Count(&bidCount).Error; err != nil {
		bidCount = 0
	}

	utils.Success(ctx, gin.H{
		"comments_count": commentsCount,
		"bid_count":      bidCount,
	})
}
