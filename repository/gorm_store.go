package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/pixmarket/market"
	"github.com/cppla/pixmarket/models"
)

// GormStore implements market.Store on a relational database through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// WithPost locks the post row (SELECT ... FOR UPDATE) for the whole transaction,
// which serializes bids and listing changes per post without touching other posts.
func (s *GormStore) WithPost(ctx context.Context, postID string, fn func(tx market.PostTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return market.ErrPostNotFound
			}
			return err
		}
		return fn(&gormPostTx{tx: tx, post: &post})
	})
}

func (s *GormStore) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *GormStore) ListBids(ctx context.Context, postID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := s.db.WithContext(ctx).
		Preload("Bidder").
		Where("post_id = ?", postID).
		Order("updated_at DESC").Order("created_at DESC").
		Find(&bids).Error
	return bids, err
}

func (s *GormStore) BidsForPosts(ctx context.Context, postIDs []string) ([]models.Bid, error) {
	var bids []models.Bid
	if len(postIDs) == 0 {
		return bids, nil
	}
	err := s.db.WithContext(ctx).Where("post_id IN ?", postIDs).Find(&bids).Error
	return bids, err
}

func (s *GormStore) ListListings(ctx context.Context, status market.Status, now time.Time, page market.Page) ([]market.ListingRow, int64, error) {
	base := func() *gorm.DB {
		return listingScope(s.db.WithContext(ctx).Model(&models.Post{}), "posts", status, now)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "auction_end_at ASC"
	if status == market.StatusEnded {
		order = "auction_end_at DESC"
	}
	var posts []models.Post
	if err := base().Preload("User").Order(order).Order("id ASC").
		Offset(page.Offset()).Limit(page.Size).Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	rows, err := s.withAggregates(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *GormStore) ListUserBids(ctx context.Context, bidderID string, status market.Status, now time.Time, page market.Page) ([]models.Bid, int64, error) {
	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&models.Bid{}).
			Joins("JOIN posts ON posts.id = bids.post_id").
			Where("bids.bidder_id = ?", bidderID)
		return listingScope(q, "posts", status, now)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bids []models.Bid
	if err := base().Select("bids.*").
		Preload("Post").Preload("Post.User").
		Order("bids.updated_at DESC").Order("bids.id ASC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&bids).Error; err != nil {
		return nil, 0, err
	}
	return bids, total, nil
}

func (s *GormStore) ListEndedBetween(ctx context.Context, from, to time.Time) ([]market.ListingRow, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Where("is_in_market = ? AND auction_end_at > ? AND auction_end_at <= ?", true, from, to).
		Order("auction_end_at ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return s.withAggregates(ctx, posts)
}

func (s *GormStore) CountListings(ctx context.Context, status market.Status, now time.Time) (int64, error) {
	var n int64
	err := listingScope(s.db.WithContext(ctx).Model(&models.Post{}), "posts", status, now).Count(&n).Error
	return n, err
}

func (s *GormStore) CountBids(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Bid{}).Count(&n).Error
	return n, err
}

// MostBidEnded ranks ended listings by number of bids; ties go to the latest end time.
func (s *GormStore) MostBidEnded(ctx context.Context, now time.Time) (*market.ListingRow, error) {
	var top struct {
		PostID   string
		BidCount int64
	}
	err := s.db.WithContext(ctx).Model(&models.Bid{}).
		Select("bids.post_id AS post_id, COUNT(*) AS bid_count").
		Joins("JOIN posts ON posts.id = bids.post_id").
		Where("posts.is_in_market = ? AND posts.auction_end_at < ?", true, now).
		Group("bids.post_id").Group("posts.auction_end_at").
		Order("bid_count DESC").Order("posts.auction_end_at DESC").Order("bids.post_id ASC").
		Limit(1).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	if top.PostID == "" {
		return nil, nil
	}

	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, "id = ?", top.PostID).Error; err != nil {
		return nil, err
	}
	rows, err := s.withAggregates(ctx, []models.Post{post})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

type bidAggregate struct {
	PostID   string
	TopBid   decimal.NullDecimal
	BidCount int64
}

// withAggregates attaches MAX(amount) and COUNT(*) per post with one grouped query.
func (s *GormStore) withAggregates(ctx context.Context, posts []models.Post) ([]market.ListingRow, error) {
	rows := make([]market.ListingRow, 0, len(posts))
	if len(posts) == 0 {
		return rows, nil
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var aggs []bidAggregate
	if err := s.db.WithContext(ctx).Model(&models.Bid{}).
		Select("post_id, MAX(amount) AS top_bid, COUNT(*) AS bid_count").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&aggs).Error; err != nil {
		return nil, err
	}
	byPost := make(map[string]bidAggregate, len(aggs))
	for _, a := range aggs {
		byPost[a.PostID] = a
	}

	for _, p := range posts {
		row := market.ListingRow{Post: p}
		if a, ok := byPost[p.ID]; ok {
			row.BidCount = a.BidCount
			if a.TopBid.Valid {
				top := a.TopBid.Decimal
				row.TopBid = &top
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// listingScope restricts q to listed posts in the requested phase. Active means
// the end is still ahead of now, ended means it is strictly behind.
func listingScope(q *gorm.DB, table string, status market.Status, now time.Time) *gorm.DB {
	q = q.Where(table+".is_in_market = ?", true)
	switch status {
	case market.StatusActive:
		q = q.Where(table+".auction_end_at > ?", now)
	case market.StatusEnded:
		q = q.Where(table+".auction_end_at < ?", now)
	}
	return q
}

// gormPostTx runs inside the WithPost transaction, after the post row is locked.
type gormPostTx struct {
	tx   *gorm.DB
	post *models.Post
}

func (t *gormPostTx) Post() *models.Post {
	return t.post
}

func (t *gormPostTx) SaveMarket(post *models.Post) error {
	return t.tx.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"is_in_market":   post.IsInMarket,
		"starting_price": nullableDecimal(post.StartingPrice),
		"reserve_price":  nullableDecimal(post.ReservePrice),
		"auction_end_at": nullableTime(post.AuctionEndAt),
		"updated_at":     time.Now(),
	}).Error
}

func (t *gormPostTx) HighestBid() (*models.Bid, error) {
	var bid models.Bid
	err := t.tx.Where("post_id = ?", t.post.ID).
		Order("amount DESC").Order("created_at ASC").
		First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (t *gormPostTx) BidByBidder(bidderID string) (*models.Bid, error) {
	var bid models.Bid
	err := t.tx.Where("post_id = ? AND bidder_id = ?", t.post.ID, bidderID).First(&bid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (t *gormPostTx) CreateBid(bid *models.Bid) error {
	return t.tx.Create(bid).Error
}

func (t *gormPostTx) UpdateBidAmount(bid *models.Bid) error {
	return t.tx.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(map[string]interface{}{
		"amount":     bid.Amount,
		"updated_at": bid.UpdatedAt,
	}).Error
}

func (t *gormPostTx) CountBids() (int64, error) {
	var n int64
	err := t.tx.Model(&models.Bid{}).Where("post_id = ?", t.post.ID).Count(&n).Error
	return n, err
}

func nullableDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

var _ market.Store = (*GormStore)(nil)
