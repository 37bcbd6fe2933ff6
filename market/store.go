package market

//go:generate mockgen -destination=mock_store_test.go -package=market_test github.com/cppla/pixmarket/market Store,PostTx

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cppla/pixmarket/models"
)

// Status filters listings and bids by auction phase.
type Status string

const (
	StatusAll    Status = "all"
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// ParseStatus validates a status query value. An empty value yields def.
func ParseStatus(raw string, def Status, allowAll bool) (Status, error) {
	switch Status(raw) {
	case "":
		return def, nil
	case StatusActive, StatusEnded:
		return Status(raw), nil
	case StatusAll:
		if allowAll {
			return StatusAll, nil
		}
	}
	return "", ErrInvalidStatus
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows to skip. It saturates instead of overflowing.
func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// ListingRow is a listed post with its bid aggregates.
type ListingRow struct {
	Post     models.Post
	TopBid   *decimal.Decimal
	BidCount int64
}

// Store is the relational store the engine runs on. Implementations must make
// WithPost hold an exclusive per-post lock for the lifetime of fn and roll back
// every write made through the PostTx when fn returns an error.
type Store interface {
	// WithPost returns ErrPostNotFound when the post does not exist.
	WithPost(ctx context.Context, postID string, fn func(tx PostTx) error) error

	GetPost(ctx context.Context, postID string) (*models.Post, error)
	// ListBids returns the bids on a post, most recently placed first.
	ListBids(ctx context.Context, postID string) ([]models.Bid, error)
	// BidsForPosts returns every bid on the given posts in no particular order.
	BidsForPosts(ctx context.Context, postIDs []string) ([]models.Bid, error)

	ListListings(ctx context.Context, status Status, now time.Time, page Page) ([]ListingRow, int64, error)
	// ListUserBids returns the bidder's standing bids with Post populated.
	ListUserBids(ctx context.Context, bidderID string, status Status, now time.Time, page Page) ([]models.Bid, int64, error)
	// ListEndedBetween returns listings whose end time falls in (from, to].
	ListEndedBetween(ctx context.Context, from, to time.Time) ([]ListingRow, error)

	CountListings(ctx context.Context, status Status, now time.Time) (int64, error)
	CountBids(ctx context.Context) (int64, error)
	// MostBidEnded returns the ended listing with the most bids, or nil when no
	// ended listing has any bid.
	MostBidEnded(ctx context.Context, now time.Time) (*ListingRow, error)
}

// PostTx exposes the locked post and its bids inside WithPost.
type PostTx interface {
	Post() *models.Post
	SaveMarket(post *models.Post) error
	// HighestBid returns nil when the post has no bids.
	HighestBid() (*models.Bid, error)
	// BidByBidder returns nil when the bidder has no bid on the post.
	BidByBidder(bidderID string) (*models.Bid, error)
	CreateBid(bid *models.Bid) error
	UpdateBidAmount(bid *models.Bid) error
	CountBids() (int64, error)
}
