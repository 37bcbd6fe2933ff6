package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cppla/pixmarket/models"
)

const defaultMaxDurationHours = 24 * 365

// Engine implements listing, bidding and the read-side auction views on top of a Store.
type Engine struct {
	store            Store
	log              *zap.Logger
	now              func() time.Time
	maxDurationHours int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMaxDurationHours caps the auction length accepted by List.
func WithMaxDurationHours(h int) Option {
	return func(e *Engine) {
		if h > 0 {
			e.maxDurationHours = h
		}
	}
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(store Store, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:            store,
		log:              logger,
		now:              time.Now,
		maxDurationHours: defaultMaxDurationHours,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ListRequest carries the seller's listing terms.
type ListRequest struct {
	PostID        string
	SellerID      string
	StartingPrice decimal.Decimal
	ReservePrice  *decimal.Decimal
	DurationHours int
}

// List puts the seller's post up for auction.
func (e *Engine) List(ctx context.Context, req ListRequest) (*models.Post, error) {
	var listed models.Post
	err := e.store.WithPost(ctx, req.PostID, func(tx PostTx) error {
		post := tx.Post()
		if post.UserID != req.SellerID {
			return ErrNotOwner
		}
		if post.IsInMarket {
			return ErrAlreadyListed
		}
		if err := e.checkTerms(req); err != nil {
			return err
		}

		start := req.StartingPrice
		end := e.clock().Add(time.Duration(req.DurationHours) * time.Hour)
		post.IsInMarket = true
		post.StartingPrice = &start
		post.ReservePrice = nil
		if req.ReservePrice != nil {
			reserve := *req.ReservePrice
			post.ReservePrice = &reserve
		}
		post.AuctionEndAt = &end

		if err := tx.SaveMarket(post); err != nil {
			return fmt.Errorf("save listing: %w", err)
		}
		listed = *post
		return nil
	})
	if err != nil {
		return nil, e.fail("list", req.PostID, req.SellerID, err)
	}

	e.log.Info("post listed",
		zap.String("post_id", listed.ID),
		zap.String("seller_id", req.SellerID),
		zap.String("starting_price", req.StartingPrice.String()),
		zap.Timep("auction_end_at", listed.AuctionEndAt),
	)
	return &listed, nil
}

// Unlist withdraws a listing that has not received any bid.
func (e *Engine) Unlist(ctx context.Context, postID, sellerID string) (*models.Post, error) {
	var unlisted models.Post
	err := e.store.WithPost(ctx, postID, func(tx PostTx) error {
		post := tx.Post()
		if post.UserID != sellerID {
			return ErrNotOwner
		}
		if !post.IsInMarket {
			return ErrNotListed
		}
		n, err := tx.CountBids()
		if err != nil {
			return fmt.Errorf("count bids: %w", err)
		}
		if n > 0 {
			return ErrHasBids
		}

		post.ClearMarket()
		if err := tx.SaveMarket(post); err != nil {
			return fmt.Errorf("clear listing: %w", err)
		}
		unlisted = *post
		return nil
	})
	if err != nil {
		return nil, e.fail("unlist", postID, sellerID, err)
	}

	e.log.Info("post unlisted", zap.String("post_id", postID), zap.String("seller_id", sellerID))
	return &unlisted, nil
}

// PlaceBid records bidderID's standing bid on a listing. The bid must beat the
// highest bid from anyone, the bidder's own included.
func (e *Engine) PlaceBid(ctx context.Context, postID, bidderID string, amount decimal.Decimal) (*models.Bid, error) {
	var placed models.Bid
	err := e.store.WithPost(ctx, postID, func(tx PostTx) error {
		post := tx.Post()
		if !post.IsInMarket || post.AuctionEndAt == nil || post.StartingPrice == nil {
			return ErrNotListed
		}
		if post.UserID == bidderID {
			return ErrSelfBid
		}
		now := e.clock()
		if !now.Before(*post.AuctionEndAt) {
			return ErrAuctionEnded
		}
		if !positiveMoney(amount) {
			return ErrInvalidAmount
		}

		current := *post.StartingPrice
		highest, err := tx.HighestBid()
		if err != nil {
			return fmt.Errorf("load highest bid: %w", err)
		}
		if highest != nil {
			current = highest.Amount
		}
		if amount.Cmp(current) <= 0 {
			return bidTooLow(current)
		}

		existing, err := tx.BidByBidder(bidderID)
		if err != nil {
			return fmt.Errorf("load standing bid: %w", err)
		}
		if existing != nil {
			existing.Amount = amount
			existing.UpdatedAt = now
			if err := tx.UpdateBidAmount(existing); err != nil {
				return fmt.Errorf("update bid: %w", err)
			}
			placed = *existing
			return nil
		}

		bid := models.Bid{
			PostID:    post.ID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.CreateBid(&bid); err != nil {
			return fmt.Errorf("create bid: %w", err)
		}
		placed = bid
		return nil
	})
	if err != nil {
		return nil, e.fail("place bid", postID, bidderID, err)
	}

	e.log.Info("bid accepted",
		zap.String("bid_id", placed.ID),
		zap.String("post_id", postID),
		zap.String("bidder_id", bidderID),
		zap.String("amount", amount.String()),
	)
	return &placed, nil
}

// MarketListings pages through active or ended listings.
func (e *Engine) MarketListings(ctx context.Context, status Status, page Page) (*ResultPage[ListingSummary], error) {
	if status != StatusActive && status != StatusEnded {
		return nil, ErrInvalidStatus
	}
	now := e.clock()
	rows, total, err := e.store.ListListings(ctx, status, now, page)
	if err != nil {
		return nil, fmt.Errorf("market: list listings: %w", err)
	}
	items := make([]ListingSummary, 0, len(rows))
	for _, row := range rows {
		items = append(items, summarize(row, now))
	}
	return &ResultPage[ListingSummary]{Items: items, Total: total}, nil
}

// AuctionDetail returns a listing with every standing bid, newest first.
func (e *Engine) AuctionDetail(ctx context.Context, postID string) (*AuctionDetail, error) {
	post, err := e.store.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("market: load post %s: %w", postID, err)
	}
	if !post.IsInMarket {
		return nil, ErrNotListed
	}

	bids, err := e.store.ListBids(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("market: list bids for %s: %w", postID, err)
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	now := e.clock()
	leader := Leader(bids)
	var top *decimal.Decimal
	if leader != nil {
		top = &leader.Amount
	}
	return &AuctionDetail{
		Post:         *post,
		Bids:         bids,
		Leader:       leader,
		CurrentPrice: CurrentPrice(post, top),
		BidCount:     len(bids),
		TimeLeftMs:   TimeLeftMs(post, now),
		IsActive:     IsActive(post, now),
	}, nil
}

// UserBids pages through a bidder's standing bids and recomputes whether each
// one is leading, and whether it has won, at call time.
func (e *Engine) UserBids(ctx context.Context, bidderID string, status Status, page Page) (*ResultPage[UserBid], error) {
	if status != StatusAll && status != StatusActive && status != StatusEnded {
		return nil, ErrInvalidStatus
	}
	now := e.clock()
	bids, total, err := e.store.ListUserBids(ctx, bidderID, status, now, page)
	if err != nil {
		return nil, fmt.Errorf("market: list bids of %s: %w", bidderID, err)
	}

	leaders, err := e.leadersFor(ctx, postIDsOf(bids))
	if err != nil {
		return nil, err
	}

	items := make([]UserBid, 0, len(bids))
	for _, b := range bids {
		var post models.Post
		if b.Post != nil {
			post = *b.Post
		}
		b.Post = nil

		leader := leaders[b.PostID]
		var top *decimal.Decimal
		if leader != nil {
			top = &leader.Amount
		}
		active := IsActive(&post, now)
		winning := leader != nil && leader.ID == b.ID
		items = append(items, UserBid{
			Bid:          b,
			Post:         post,
			CurrentPrice: CurrentPrice(&post, top),
			IsWinning:    winning,
			HasWon:       winning && !active,
			IsActive:     active,
			TimeLeftMs:   TimeLeftMs(&post, now),
		})
	}
	return &ResultPage[UserBid]{Items: items, Total: total}, nil
}

// MarketStats aggregates counts across the market. HighestSale is ranked by
// number of bids among ended listings, not by amount.
func (e *Engine) MarketStats(ctx context.Context) (*Stats, error) {
	now := e.clock()
	active, err := e.store.CountListings(ctx, StatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("market: count active listings: %w", err)
	}
	ended, err := e.store.CountListings(ctx, StatusEnded, now)
	if err != nil {
		return nil, fmt.Errorf("market: count ended listings: %w", err)
	}
	totalBids, err := e.store.CountBids(ctx)
	if err != nil {
		return nil, fmt.Errorf("market: count bids: %w", err)
	}
	top, err := e.store.MostBidEnded(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("market: load highest sale: %w", err)
	}

	stats := &Stats{ActiveAuctions: active, EndedAuctions: ended, TotalBids: totalBids}
	if top != nil && top.TopBid != nil {
		stats.HighestSale = &HighestSale{Post: top.Post, FinalPrice: *top.TopBid, BidCount: top.BidCount}
	}
	return stats, nil
}

// EndedBetween computes the outcome of every auction whose end time lies in (from, to].
func (e *Engine) EndedBetween(ctx context.Context, from, to time.Time) ([]Settlement, error) {
	rows, err := e.store.ListEndedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("market: list ended auctions: %w", err)
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Post.ID)
	}
	leaders, err := e.leadersFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Settlement, 0, len(rows))
	for _, row := range rows {
		s := Settlement{Post: row.Post, BidCount: row.BidCount}
		if leader := leaders[row.Post.ID]; leader != nil {
			s.Winner = leader
			price := leader.Amount
			s.FinalPrice = &price
		}
		out = append(out, s)
	}
	return out, nil
}

func (e *Engine) leadersFor(ctx context.Context, postIDs []string) (map[string]*models.Bid, error) {
	leaders := make(map[string]*models.Bid, len(postIDs))
	if len(postIDs) == 0 {
		return leaders, nil
	}
	all, err := e.store.BidsForPosts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("market: load bids for leaders: %w", err)
	}
	byPost := make(map[string][]models.Bid, len(postIDs))
	for _, b := range all {
		byPost[b.PostID] = append(byPost[b.PostID], b)
	}
	for id, bids := range byPost {
		leaders[id] = Leader(bids)
	}
	return leaders, nil
}

func (e *Engine) clock() time.Time {
	return e.now().UTC().Truncate(time.Millisecond)
}

// fail logs a failed mutation. Domain errors pass through untouched, anything
// else is wrapped as an internal failure.
func (e *Engine) fail(op, postID, actorID string, err error) error {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		e.log.Debug(op+" rejected",
			zap.String("post_id", postID),
			zap.String("actor_id", actorID),
			zap.String("kind", string(domainErr.Kind)),
			zap.Error(err),
		)
		return err
	}
	e.log.Error(op+" failed",
		zap.String("post_id", postID),
		zap.String("actor_id", actorID),
		zap.Error(err),
	)
	return fmt.Errorf("market: %s on post %s: %w", op, postID, err)
}

// checkTerms validates listing terms once the post is known to be listable.
func (e *Engine) checkTerms(req ListRequest) error {
	if !positiveMoney(req.StartingPrice) {
		return ErrInvalidPrice
	}
	if req.ReservePrice != nil && (req.ReservePrice.IsNegative() || !storableMoney(*req.ReservePrice)) {
		return ErrInvalidReserve
	}
	if req.DurationHours <= 0 || req.DurationHours > e.maxDurationHours {
		return ErrInvalidDuration
	}
	return nil
}

// maxMoney is the first value a decimal(18,2) column cannot hold.
var maxMoney = decimal.New(1, 16)

func positiveMoney(d decimal.Decimal) bool {
	return d.IsPositive() && storableMoney(d)
}

func storableMoney(d decimal.Decimal) bool {
	return d.LessThan(maxMoney) && twoPlaces(d)
}

func twoPlaces(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

func postIDsOf(bids []models.Bid) []string {
	seen := make(map[string]bool, len(bids))
	ids := make([]string, 0, len(bids))
	for _, b := range bids {
		if !seen[b.PostID] {
			seen[b.PostID] = true
			ids = append(ids, b.PostID)
		}
	}
	return ids
}
