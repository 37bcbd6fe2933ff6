package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cppla/pixmarket/market"
	"github.com/cppla/pixmarket/models"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func listedPost(id string, end time.Time) models.Post {
	start := decimal.RequireFromString("10")
	return models.Post{ID: id, UserID: "seller", IsInMarket: true, StartingPrice: &start, AuctionEndAt: &end}
}

func placeBid(t *testing.T, s *MemoryStore, postID, bidder, amount string, at time.Time) {
	t.Helper()
	err := s.WithPost(context.Background(), postID, func(tx market.PostTx) error {
		return tx.CreateBid(&models.Bid{
			PostID:    postID,
			BidderID:  bidder,
			Amount:    decimal.RequireFromString(amount),
			CreatedAt: at,
			UpdatedAt: at,
		})
	})
	require.NoError(t, err)
}

func TestMemoryStore_WithPostRollsBackOnError(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	s.AddPost(listedPost("p1", t0.Add(time.Hour)))

	boom := errors.New("boom")
	err := s.WithPost(context.Background(), "p1", func(tx market.PostTx) error {
		post := tx.Post()
		post.IsInMarket = false
		require.NoError(t, tx.SaveMarket(post))
		require.NoError(t, tx.CreateBid(&models.Bid{PostID: "p1", BidderID: "b1", Amount: decimal.NewFromInt(20)}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	post, err := s.GetPost(context.Background(), "p1")
	require.NoError(t, err)
	require.True(t, post.IsInMarket)
	require.Empty(t, s.BidRows("p1"))
}

func TestMemoryStore_WithPostMissingAndCanceled(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	called := false
	err := s.WithPost(context.Background(), "nope", func(market.PostTx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, market.ErrPostNotFound)
	require.False(t, called)

	s.AddPost(listedPost("p1", t0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.WithPost(ctx, "p1", func(market.PostTx) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_DuplicateBidRejected(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	s.AddPost(listedPost("p1", t0.Add(time.Hour)))
	placeBid(t, s, "p1", "b1", "11", t0)

	err := s.WithPost(context.Background(), "p1", func(tx market.PostTx) error {
		return tx.CreateBid(&models.Bid{PostID: "p1", BidderID: "b1", Amount: decimal.NewFromInt(30)})
	})
	require.ErrorIs(t, err, errDuplicateBid)
	require.Len(t, s.BidRows("p1"), 1)
}

func TestMemoryStore_ListingsOrderAndPaging(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	s.AddPost(listedPost("a", t0.Add(3*time.Hour)))
	s.AddPost(listedPost("b", t0.Add(1*time.Hour)))
	s.AddPost(listedPost("c", t0.Add(2*time.Hour)))
	s.AddPost(listedPost("d", t0.Add(-1*time.Hour)))
	s.AddPost(listedPost("e", t0.Add(-2*time.Hour)))
	s.AddPost(models.Post{ID: "plain", UserID: "seller"})
	placeBid(t, s, "c", "x", "15", t0)
	placeBid(t, s, "c", "y", "12", t0)

	ids := func(rows []market.ListingRow) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Post.ID)
		}
		return out
	}

	rows, total, err := s.ListListings(context.Background(), market.StatusActive, t0, market.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, []string{"b", "c", "a"}, ids(rows))
	require.EqualValues(t, 2, rows[1].BidCount)
	require.True(t, rows[1].TopBid.Equal(decimal.NewFromInt(15)))

	rows, total, err = s.ListListings(context.Background(), market.StatusEnded, t0, market.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, []string{"d", "e"}, ids(rows))

	rows, total, err = s.ListListings(context.Background(), market.StatusActive, t0, market.Page{Number: 2, Size: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Equal(t, []string{"a"}, ids(rows))

	rows, _, err = s.ListListings(context.Background(), market.StatusActive, t0, market.Page{Number: 5, Size: 2})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestMemoryStore_UserBidsAndStats(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	s.AddPost(listedPost("live", t0.Add(time.Hour)))
	s.AddPost(listedPost("done", t0.Add(-time.Hour)))
	s.AddPost(listedPost("busy", t0.Add(-2*time.Hour)))
	placeBid(t, s, "live", "me", "11", t0.Add(-time.Minute))
	placeBid(t, s, "done", "me", "12", t0.Add(-2*time.Hour))
	placeBid(t, s, "busy", "other", "50", t0.Add(-3*time.Hour))
	placeBid(t, s, "busy", "third", "60", t0.Add(-3*time.Hour))

	bids, total, err := s.ListUserBids(context.Background(), "me", market.StatusAll, t0, market.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, "live", bids[0].PostID, "newest bid first")
	require.NotNil(t, bids[0].Post)

	bids, total, err = s.ListUserBids(context.Background(), "me", market.StatusEnded, t0, market.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "done", bids[0].PostID)

	n, err := s.CountListings(context.Background(), market.StatusEnded, t0)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	n, err = s.CountBids(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 4, n)

	top, err := s.MostBidEnded(context.Background(), t0)
	require.NoError(t, err)
	require.Equal(t, "busy", top.Post.ID)
	require.EqualValues(t, 2, top.BidCount)

	rows, err := s.ListEndedBetween(context.Background(), t0.Add(-90*time.Minute), t0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "done", rows[0].Post.ID)
}
