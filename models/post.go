package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Post is an image post. The market fields stay nil until the author lists it.
type Post struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	UserID   string `gorm:"size:36;index;not null" json:"user_id"`
	Caption  string `gorm:"type:text" json:"caption"`
	ImageURL string `gorm:"size:1024;not null" json:"image_url"`
	MediaKey string `gorm:"size:255" json:"media_key"`

	IsInMarket    bool             `gorm:"not null;default:false;index" json:"is_in_market"`
	StartingPrice *decimal.Decimal `gorm:"type:decimal(18,2)" json:"starting_price"`
	ReservePrice  *decimal.Decimal `gorm:"type:decimal(18,2)" json:"reserve_price"`
	AuctionEndAt  *time.Time       `gorm:"index" json:"auction_end_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
	Bids      []Bid     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate assigns an opaque id.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ClearMarket resets the post to its unlisted state.
func (p *Post) ClearMarket() {
	p.IsInMarket = false
	p.StartingPrice = nil
	p.ReservePrice = nil
	p.AuctionEndAt = nil
}
