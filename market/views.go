package market

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cppla/pixmarket/models"
)

// ListingSummary is a listed post as shown in the market feed.
type ListingSummary struct {
	Post         models.Post     `json:"post"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	BidCount     int64           `json:"bid_count"`
	TimeLeftMs   int64           `json:"time_left_ms"`
	IsActive     bool            `json:"is_active"`
}

// AuctionDetail is a single listing with its full standing-bid list.
type AuctionDetail struct {
	Post         models.Post     `json:"post"`
	Bids         []models.Bid    `json:"bids"`
	Leader       *models.Bid     `json:"leader"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	BidCount     int             `json:"bid_count"`
	TimeLeftMs   int64           `json:"time_left_ms"`
	IsActive     bool            `json:"is_active"`
}

// UserBid is one of a bidder's standing bids joined with the live auction state.
type UserBid struct {
	Bid          models.Bid      `json:"bid"`
	Post         models.Post     `json:"post"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	IsWinning    bool            `json:"is_winning"`
	HasWon       bool            `json:"has_won"`
	IsActive     bool            `json:"is_active"`
	TimeLeftMs   int64           `json:"time_left_ms"`
}

// HighestSale is the ended listing with the most bids and its top bid.
type HighestSale struct {
	Post       models.Post     `json:"post"`
	FinalPrice decimal.Decimal `json:"final_price"`
	BidCount   int64           `json:"bid_count"`
}

// Stats aggregates market-wide counts.
type Stats struct {
	ActiveAuctions int64        `json:"active_auctions"`
	EndedAuctions  int64        `json:"ended_auctions"`
	TotalBids      int64        `json:"total_bids"`
	HighestSale    *HighestSale `json:"highest_sale"`
}

// Settlement describes an auction that has run out, as computed at read time.
type Settlement struct {
	Post       models.Post      `json:"post"`
	Winner     *models.Bid      `json:"winner"`
	FinalPrice *decimal.Decimal `json:"final_price"`
	BidCount   int64            `json:"bid_count"`
}

// ResultPage is one page of results plus the unpaged total.
type ResultPage[T any] struct {
	Items []T
	Total int64
}

// Leader returns the highest bid, earliest creation winning ties. Nil for no bids.
func Leader(bids []models.Bid) *models.Bid {
	var leader *models.Bid
	for i := range bids {
		b := &bids[i]
		if leader == nil {
			leader = b
			continue
		}
		switch b.Amount.Cmp(leader.Amount) {
		case 1:
			leader = b
		case 0:
			if b.CreatedAt.Before(leader.CreatedAt) {
				leader = b
			}
		}
	}
	return leader
}

// CurrentPrice is the top bid when one exists, else the starting price.
func CurrentPrice(post *models.Post, top *decimal.Decimal) decimal.Decimal {
	if top != nil {
		return *top
	}
	if post.StartingPrice != nil {
		return *post.StartingPrice
	}
	return decimal.Zero
}

// IsActive reports whether the auction still accepts bids at now.
func IsActive(post *models.Post, now time.Time) bool {
	return post.IsInMarket && post.AuctionEndAt != nil && now.Before(*post.AuctionEndAt)
}

// TimeLeftMs is the remaining time in milliseconds, floored at zero.
func TimeLeftMs(post *models.Post, now time.Time) int64 {
	if post.AuctionEndAt == nil {
		return 0
	}
	left := post.AuctionEndAt.Sub(now).Milliseconds()
	if left < 0 {
		return 0
	}
	return left
}

func summarize(row ListingRow, now time.Time) ListingSummary {
	return ListingSummary{
		Post:         row.Post,
		CurrentPrice: CurrentPrice(&row.Post, row.TopBid),
		BidCount:     row.BidCount,
		TimeLeftMs:   TimeLeftMs(&row.Post, now),
		IsActive:     IsActive(&row.Post, now),
	}
}
