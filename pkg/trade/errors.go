package trade

import (
	"errors"
)

var (
	// ErrInvalidPair ...
	ErrInvalidPair = errors.New("no tradable market for the given pair")
	// ErrMissingAmount ...
	ErrMissingAmount = errors.New("the amount to trade must be set")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New(
		"wallet funds do not cover the amount to trade",
	)
	// ErrPreviewUnavailable ...
	ErrPreviewUnavailable = errors.New("preview not available")
	// ErrSwapNotAccepted ...
	ErrSwapNotAccepted = errors.New("swap not accepted")
	// ErrSigningFailed ...
	ErrSigningFailed = errors.New("signing failed or rejected")
	// ErrCompletionFailed ...
	ErrCompletionFailed = errors.New("completion failed")
	// ErrNoMarketsFound ...
	ErrNoMarketsFound = errors.New("no market found for the given providers")
	// ErrTradeAborted ...
	ErrTradeAborted = errors.New("trade attempt has been abandoned")
)
