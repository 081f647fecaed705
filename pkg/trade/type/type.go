package tradetype

import (
	"errors"
)

const (
	// Buy type
	Buy TradeType = iota
	// Sell type
	Sell
)

var (
	// ErrInvalidTradeType ...
	ErrInvalidTradeType = errors.New("trade type must be either BUY or SELL")
)

// TradeType is the direction of a trade relative to the market's base asset.
type TradeType int

// Validate makes sure that the current trade type is either BUY or SELL.
func (t TradeType) Validate() error {
	if t != Buy && t != Sell {
		return ErrInvalidTradeType
	}
	return nil
}

// IsBuy returns whether the current trade type is BUY.
func (t TradeType) IsBuy() bool {
	return t == Buy
}

// IsSell returns whether the current trade type is SELL.
func (t TradeType) IsSell() bool {
	return t == Sell
}

// String formats the type to a human-readable form.
func (t TradeType) String() string {
	if t.IsBuy() {
		return "BUY"
	}
	return "SELL"
}
