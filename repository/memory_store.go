package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cppla/pixmarket/market"
	"github.com/cppla/pixmarket/models"
)

var errDuplicateBid = errors.New("duplicate bid for post and bidder")

// MemoryStore is a concurrency-safe in-memory market.Store. Writes for one
// post are serialized by a per-post mutex and staged until the callback
// returns, so a failed WithPost leaves nothing behind.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]models.Post  // key: postID
	bids  map[string][]models.Bid // key: postID -> standing bids

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex // key: postID
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts: make(map[string]models.Post),
		bids:  make(map[string][]models.Bid),
		locks: make(map[string]*sync.Mutex),
	}
}

// AddPost inserts or replaces a post. An empty ID is filled in.
func (s *MemoryStore) AddPost(post models.Post) models.Post {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = post
	return post
}

// ClearBids drops every bid on a post. Intended for tests.
func (s *MemoryStore) ClearBids(postID string) {
	l := s.postLock(postID)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bids, postID)
}

// BidRows returns a copy of the stored bids on a post. Intended for tests.
func (s *MemoryStore) BidRows(postID string) []models.Bid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Bid(nil), s.bids[postID]...)
}

func (s *MemoryStore) postLock(postID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[postID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[postID] = l
	}
	return l
}

// WithPost runs fn while holding the post's lock and commits staged writes on success.
func (s *MemoryStore) WithPost(ctx context.Context, postID string, fn func(tx market.PostTx) error) error {
	l := s.postLock(postID)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	post, ok := s.posts[postID]
	bids := append([]models.Bid(nil), s.bids[postID]...)
	s.mu.RUnlock()
	if !ok {
		return market.ErrPostNotFound
	}

	tx := &memoryTx{post: post, bids: bids}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.postDirty {
		s.posts[postID] = tx.post
	}
	if tx.bidsDirty {
		s.bids[postID] = tx.bids
	}
	return nil
}

func (s *MemoryStore) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[postID]
	if !ok {
		return nil, market.ErrPostNotFound
	}
	return &post, nil
}

func (s *MemoryStore) ListBids(ctx context.Context, postID string) ([]models.Bid, error) {
	s.mu.RLock()
	bids := append([]models.Bid(nil), s.bids[postID]...)
	s.mu.RUnlock()

	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].UpdatedAt.After(bids[j].UpdatedAt)
	})
	return bids, nil
}

func (s *MemoryStore) BidsForPosts(ctx context.Context, postIDs []string) ([]models.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Bid
	for _, id := range postIDs {
		out = append(out, s.bids[id]...)
	}
	return out, nil
}

func (s *MemoryStore) ListListings(ctx context.Context, status market.Status, now time.Time, page market.Page) ([]market.ListingRow, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []market.ListingRow
	for _, p := range s.posts {
		if matchesStatus(&p, status, now) {
			rows = append(rows, s.rowLocked(p))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Post.AuctionEndAt, rows[j].Post.AuctionEndAt
		if !a.Equal(*b) {
			if status == market.StatusEnded {
				return a.After(*b)
			}
			return a.Before(*b)
		}
		return rows[i].Post.ID < rows[j].Post.ID
	})
	return paginate(rows, page), int64(len(rows)), nil
}

func (s *MemoryStore) ListUserBids(ctx context.Context, bidderID string, status market.Status, now time.Time, page market.Page) ([]models.Bid, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Bid
	for postID, bids := range s.bids {
		post, ok := s.posts[postID]
		if !ok {
			continue
		}
		if status != market.StatusAll && !matchesStatus(&post, status, now) {
			continue
		}
		for _, b := range bids {
			if b.BidderID == bidderID {
				p := post
				b.Post = &p
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, page), int64(len(out)), nil
}

func (s *MemoryStore) ListEndedBetween(ctx context.Context, from, to time.Time) ([]market.ListingRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows []market.ListingRow
	for _, p := range s.posts {
		if !p.IsInMarket || p.AuctionEndAt == nil {
			continue
		}
		if p.AuctionEndAt.After(from) && !p.AuctionEndAt.After(to) {
			rows = append(rows, s.rowLocked(p))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Post.AuctionEndAt.Before(*rows[j].Post.AuctionEndAt)
	})
	return rows, nil
}

func (s *MemoryStore) CountListings(ctx context.Context, status market.Status, now time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, p := range s.posts {
		if matchesStatus(&p, status, now) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountBids(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, bids := range s.bids {
		n += int64(len(bids))
	}
	return n, nil
}

func (s *MemoryStore) MostBidEnded(ctx context.Context, now time.Time) (*market.ListingRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *market.ListingRow
	for _, p := range s.posts {
		if !matchesStatus(&p, market.StatusEnded, now) {
			continue
		}
		row := s.rowLocked(p)
		if row.BidCount == 0 {
			continue
		}
		if best == nil || moreBidsThan(&row, best) {
			r := row
			best = &r
		}
	}
	return best, nil
}

func (s *MemoryStore) rowLocked(p models.Post) market.ListingRow {
	row := market.ListingRow{Post: p}
	for _, b := range s.bids[p.ID] {
		row.BidCount++
		if row.TopBid == nil || b.Amount.GreaterThan(*row.TopBid) {
			amt := b.Amount
			row.TopBid = &amt
		}
	}
	return row
}

// moreBidsThan orders by bid count, then latest end, then id.
func moreBidsThan(a, b *market.ListingRow) bool {
	if a.BidCount != b.BidCount {
		return a.BidCount > b.BidCount
	}
	if !a.Post.AuctionEndAt.Equal(*b.Post.AuctionEndAt) {
		return a.Post.AuctionEndAt.After(*b.Post.AuctionEndAt)
	}
	return a.Post.ID < b.Post.ID
}

func matchesStatus(p *models.Post, status market.Status, now time.Time) bool {
	if !p.IsInMarket || p.AuctionEndAt == nil {
		return false
	}
	switch status {
	case market.StatusActive:
		return p.AuctionEndAt.After(now)
	case market.StatusEnded:
		return p.AuctionEndAt.Before(now)
	default:
		return true
	}
}

func paginate[T any](items []T, page market.Page) []T {
	start := page.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// memoryTx stages writes for a single post.
type memoryTx struct {
	post      models.Post
	bids      []models.Bid
	postDirty bool
	bidsDirty bool
}

func (t *memoryTx) Post() *models.Post {
	return &t.post
}

func (t *memoryTx) SaveMarket(post *models.Post) error {
	t.post.IsInMarket = post.IsInMarket
	t.post.StartingPrice = post.StartingPrice
	t.post.ReservePrice = post.ReservePrice
	t.post.AuctionEndAt = post.AuctionEndAt
	t.postDirty = true
	return nil
}

func (t *memoryTx) HighestBid() (*models.Bid, error) {
	leader := market.Leader(t.bids)
	if leader == nil {
		return nil, nil
	}
	b := *leader
	return &b, nil
}

func (t *memoryTx) BidByBidder(bidderID string) (*models.Bid, error) {
	for _, b := range t.bids {
		if b.BidderID == bidderID {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (t *memoryTx) CreateBid(bid *models.Bid) error {
	for _, b := range t.bids {
		if b.BidderID == bid.BidderID {
			return fmt.Errorf("create bid on %s: %w", bid.PostID, errDuplicateBid)
		}
	}
	if bid.ID == "" {
		bid.ID = uuid.NewString()
	}
	t.bids = append(t.bids, *bid)
	t.bidsDirty = true
	return nil
}

func (t *memoryTx) UpdateBidAmount(bid *models.Bid) error {
	for i := range t.bids {
		if t.bids[i].ID == bid.ID {
			t.bids[i].Amount = bid.Amount
			t.bids[i].UpdatedAt = bid.UpdatedAt
			t.bidsDirty = true
			return nil
		}
	}
	return fmt.Errorf("update bid %s: not found", bid.ID)
}

func (t *memoryTx) CountBids() (int64, error) {
	return int64(len(t.bids)), nil
}

var _ market.Store = (*MemoryStore)(nil)
