package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bid is a bidder's standing bid on a listed post. A second bid from the same
// bidder overwrites Amount in place, so there is one row per (post, bidder).
type Bid struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	PostID    string          `gorm:"size:36;not null;uniqueIndex:idx_bids_post_bidder;index" json:"post_id"`
	BidderID  string          `gorm:"size:36;not null;uniqueIndex:idx_bids_post_bidder;index" json:"bidder_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Bidder    *User           `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
	Post      *Post           `json:"post,omitempty"`
}

// BeforeCreate assigns an opaque id.
func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
