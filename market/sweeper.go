package market

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notifier receives auctions that ran out since the previous sweep.
type Notifier func(Settlement)

// Sweeper periodically reports auctions that have ended. It only reads: the
// ended state and the winner are always derived from the clock at query time.
type Sweeper struct {
	engine   *Engine
	interval time.Duration
	notify   Notifier
	last     time.Time
}

// NewSweeper creates a sweeper whose first window starts now. A nil notifier
// logs each settlement.
func NewSweeper(engine *Engine, interval time.Duration, notify Notifier) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	s := &Sweeper{engine: engine, interval: interval, notify: notify, last: engine.clock()}
	if s.notify == nil {
		s.notify = s.logSettlement
	}
	return s
}

// Start launches the sweep loop and returns immediately. It stops when ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.SweepOnce(ctx); err != nil {
					s.engine.log.Warn("auction sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// SweepOnce reports auctions that ended after the previous sweep and up to now.
// The window only advances on success so a failed sweep is retried next tick.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.engine.clock()
	settled, err := s.engine.EndedBetween(ctx, s.last, now)
	if err != nil {
		return 0, err
	}
	for _, st := range settled {
		s.notify(st)
	}
	s.last = now
	return len(settled), nil
}

func (s *Sweeper) logSettlement(st Settlement) {
	fields := []zap.Field{
		zap.String("post_id", st.Post.ID),
		zap.String("seller_id", st.Post.UserID),
		zap.Int64("bid_count", st.BidCount),
	}
	if st.Winner == nil {
		s.engine.log.Info("auction ended without bids", fields...)
		return
	}
	fields = append(fields,
		zap.String("winner_id", st.Winner.BidderID),
		zap.String("final_price", st.FinalPrice.String()),
	)
	s.engine.log.Info("auction ended", fields...)
}
