package controllers

//go:generate mockgen -destination=mock_market_service_test.go -package=controllers_test github.com/cppla/pixmarket/controllers MarketService

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cppla/pixmarket/market"
	"github.com/cppla/pixmarket/models"
	"github.com/cppla/pixmarket/utils"
)

const marketCachePrefix = "cache:market:"

// MarketService is the auction engine as seen by the HTTP layer.
type MarketService interface {
	List(ctx context.Context, req market.ListRequest) (*models.Post, error)
	Unlist(ctx context.Context, postID, sellerID string) (*models.Post, error)
	PlaceBid(ctx context.Context, postID, bidderID string, amount decimal.Decimal) (*models.Bid, error)
	MarketListings(ctx context.Context, status market.Status, page market.Page) (*market.ResultPage[market.ListingSummary], error)
	AuctionDetail(ctx context.Context, postID string) (*market.AuctionDetail, error)
	UserBids(ctx context.Context, bidderID string, status market.Status, page market.Page) (*market.ResultPage[market.UserBid], error)
	MarketStats(ctx context.Context) (*market.Stats, error)
}

// MarketController exposes listing, bidding and market read endpoints.
type MarketController struct {
	svc   MarketService
	cache responseCache
}

// NewMarketController creates a MarketController. cache may be nil.
func NewMarketController(svc MarketService, cache utils.Cache, ttl time.Duration) *MarketController {
	return &MarketController{svc: svc, cache: responseCache{cache: cache, ttl: ttl}}
}

// Money fields decode straight into decimal.Decimal and accept JSON strings or numbers.
type listingRequest struct {
	StartingPrice *decimal.Decimal `json:"starting_price"`
	ReservePrice  *decimal.Decimal `json:"reserve_price"`
	DurationHours int              `json:"duration_hours"`
}

type bidRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// CreateListing puts the caller's post up for auction.
func (m *MarketController) CreateListing(ctx *gin.Context) {
	var req listingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}
	if req.StartingPrice == nil {
		respondDomainError(ctx, market.ErrInvalidPrice, 0, "")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	post, err := m.svc.List(ctx.Request.Context(), market.ListRequest{
		PostID:        postID,
		SellerID:      userID,
		StartingPrice: *req.StartingPrice,
		ReservePrice:  req.ReservePrice,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		respondDomainError(ctx, err, 50080, "failed to list post")
		return
	}

	m.invalidate(ctx, postID)
	utils.Success(ctx, gin.H{"post": post})
}

// DeleteListing withdraws a listing that has no bids yet.
func (m *MarketController) DeleteListing(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}
	postID := ctx.Param("id")
	post, err := m.svc.Unlist(ctx.Request.Context(), postID, userID)
	if err != nil {
		respondDomainError(ctx, err, 50081, "failed to unlist post")
		return
	}

	m.invalidate(ctx, postID)
	utils.Success(ctx, gin.H{"post": post})
}

// PlaceBid records or raises the caller's standing bid.
func (m *MarketController) PlaceBid(ctx *gin.Context) {
	var req bidRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40091, "invalid request payload")
		return
	}
	if req.Amount == nil {
		respondDomainError(ctx, market.ErrInvalidAmount, 0, "")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	bid, err := m.svc.PlaceBid(ctx.Request.Context(), postID, userID, *req.Amount)
	if err != nil {
		respondDomainError(ctx, err, 50082, "failed to place bid")
		return
	}

	m.invalidate(ctx, postID)
	utils.Success(ctx, gin.H{"bid": bid})
}

// ListListings returns the market feed, active auctions by default.
func (m *MarketController) ListListings(ctx *gin.Context) {
	status, err := market.ParseStatus(strings.TrimSpace(ctx.Query("status")), market.StatusActive, false)
	if err != nil {
		respondDomainError(ctx, err, 0, "")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("%slistings:status=%s:page=%d:size=%d", marketCachePrefix, status, page, pageSize)
	if m.cache.serve(ctx, cacheKey) {
		return
	}

	res, err := m.svc.MarketListings(ctx.Request.Context(), status, market.Page{Number: page, Size: pageSize})
	if err != nil {
		respondDomainError(ctx, err, 50083, "failed to list market")
		return
	}
	m.cache.successCached(ctx, cacheKey, gin.H{
		"items":      res.Items,
		"pagination": paginationBlock(page, pageSize, res.Total),
	})
}

// GetListing returns one auction with its bids.
func (m *MarketController) GetListing(ctx *gin.Context) {
	postID := ctx.Param("id")
	cacheKey := marketCachePrefix + "detail:" + postID
	if m.cache.serve(ctx, cacheKey) {
		return
	}

	detail, err := m.svc.AuctionDetail(ctx.Request.Context(), postID)
	if err != nil {
		respondDomainError(ctx, err, 50084, "failed to load auction")
		return
	}
	m.cache.successCached(ctx, cacheKey, gin.H{"auction": detail})
}

// Stats returns market-wide counters.
func (m *MarketController) Stats(ctx *gin.Context) {
	cacheKey := marketCachePrefix + "stats"
	if m.cache.serve(ctx, cacheKey) {
		return
	}
	stats, err := m.svc.MarketStats(ctx.Request.Context())
	if err != nil {
		respondDomainError(ctx, err, 50085, "failed to load market stats")
		return
	}
	m.cache.successCached(ctx, cacheKey, gin.H{"stats": stats})
}

// ListMyBids returns the caller's bids.
func (m *MarketController) ListMyBids(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}
	m.listUserBids(ctx, userID)
}

// ListUserBids returns another user's bids (public).
func (m *MarketController) ListUserBids(ctx *gin.Context) {
	userID := strings.TrimSpace(ctx.Param("id"))
	if userID == "" {
		utils.Error(ctx, http.StatusBadRequest, 40092, "missing user id")
		return
	}
	m.listUserBids(ctx, userID)
}

func (m *MarketController) listUserBids(ctx *gin.Context, bidderID string) {
	status, err := market.ParseStatus(strings.TrimSpace(ctx.Query("status")), market.StatusAll, true)
	if err != nil {
		respondDomainError(ctx, err, 0, "")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("%sbids:user=%s:status=%s:page=%d:size=%d", marketCachePrefix, bidderID, status, page, pageSize)
	if m.cache.serve(ctx, cacheKey) {
		return
	}

	res, err := m.svc.UserBids(ctx.Request.Context(), bidderID, status, market.Page{Number: page, Size: pageSize})
	if err != nil {
		respondDomainError(ctx, err, 50086, "failed to list bids")
		return
	}
	m.cache.successCached(ctx, cacheKey, gin.H{
		"items":      res.Items,
		"pagination": paginationBlock(page, pageSize, res.Total),
	})
}

// invalidate drops every cached market read plus the post detail, since the
// derived price and bid counts appear in all of them.
func (m *MarketController) invalidate(ctx *gin.Context, postID string) {
	m.cache.invalidate(ctx.Request.Context(), marketCachePrefix, postDetailCachePrefix+postID, postsListCachePrefix)
}
