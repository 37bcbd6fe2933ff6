package market_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cppla/pixmarket/market"
	"github.com/cppla/pixmarket/models"
	"github.com/cppla/pixmarket/repository"
)

func TestSweeper_ReportsEachEndedAuctionOnce(t *testing.T) {
	t.Parallel()
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	engine := market.NewEngine(store, nil, market.WithClock(clock.Now))
	ctx := context.Background()

	sold := store.AddPost(models.Post{UserID: seller})
	unsold := store.AddPost(models.Post{UserID: seller})
	_, err := engine.List(ctx, market.ListRequest{PostID: sold.ID, SellerID: seller, StartingPrice: dec("10"), DurationHours: 1})
	require.NoError(t, err)
	_, err = engine.List(ctx, market.ListRequest{PostID: unsold.ID, SellerID: seller, StartingPrice: dec("10"), DurationHours: 2})
	require.NoError(t, err)
	_, err = engine.PlaceBid(ctx, sold.ID, "A", dec("11"))
	require.NoError(t, err)
	_, err = engine.PlaceBid(ctx, sold.ID, "B", dec("12.50"))
	require.NoError(t, err)

	var got []market.Settlement
	sweeper := market.NewSweeper(engine, time.Minute, func(s market.Settlement) { got = append(got, s) })

	n, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	clock.Advance(90 * time.Minute)
	n, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, sold.ID, got[0].Post.ID)
	require.Equal(t, "B", got[0].Winner.BidderID)
	require.True(t, got[0].FinalPrice.Equal(dec("12.5")))
	require.EqualValues(t, 2, got[0].BidCount)

	clock.Advance(time.Hour)
	n, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, unsold.ID, got[1].Post.ID)
	require.Nil(t, got[1].Winner)
	require.Nil(t, got[1].FinalPrice)

	clock.Advance(time.Hour)
	n, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSweeper_DefaultNotifierLogs(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.InfoLevel)
	store := repository.NewMemoryStore()
	clock := newFakeClock()
	engine := market.NewEngine(store, zap.New(core), market.WithClock(clock.Now))
	ctx := context.Background()

	p := store.AddPost(models.Post{UserID: seller})
	_, err := engine.List(ctx, market.ListRequest{PostID: p.ID, SellerID: seller, StartingPrice: dec("1"), DurationHours: 1})
	require.NoError(t, err)

	sweeper := market.NewSweeper(engine, 0, nil)
	clock.Advance(2 * time.Hour)
	_, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("auction ended without bids").Len())
}
