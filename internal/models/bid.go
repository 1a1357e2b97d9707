package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bid struct {
	ID           int64
	TaskID       int64
	BidderID     string
	Amount       decimal.Decimal
	TimeEstimate string
	CreatedAt    time.Time
}

// BidView is a bid joined with its bidder's email.
type BidView struct {
	Bid
	BidderEmail string
}
