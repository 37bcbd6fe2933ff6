package market

import (
	"fmt"
	"net/http"
)

// Kind classifies caller-correctable failures.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindInvalidState     Kind = "invalid_state"
	KindInvalidInput     Kind = "invalid_input"
)

// Error is a domain error carrying its HTTP status and business code.
// Values are compared by identity, so wrap them with %w and match with errors.Is.
type Error struct {
	Kind    Kind
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, status, code int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Code: code, Message: msg}
}

var (
	ErrPostNotFound = newError(KindNotFound, http.StatusNotFound, 40430, "post not found")
	// Non-owners get the same status as a missing post so listings by others cannot be discovered.
	ErrNotOwner = newError(KindPermissionDenied, http.StatusNotFound, 40431, "post not found or not owned by caller")
	ErrSelfBid  = newError(KindPermissionDenied, http.StatusForbidden, 40330, "cannot bid on your own listing")

	ErrAlreadyListed = newError(KindInvalidState, http.StatusBadRequest, 40080, "post is already listed")
	ErrNotListed     = newError(KindInvalidState, http.StatusBadRequest, 40081, "post is not listed in the market")
	ErrHasBids       = newError(KindInvalidState, http.StatusBadRequest, 40082, "listing has bids and cannot be withdrawn")
	ErrAuctionEnded  = newError(KindInvalidState, http.StatusBadRequest, 40083, "auction has ended")

	ErrInvalidPrice    = newError(KindInvalidInput, http.StatusBadRequest, 40084, "price must be positive, below 10^16, with at most 2 decimal places")
	ErrInvalidReserve  = newError(KindInvalidInput, http.StatusBadRequest, 40085, "reserve price must be non-negative, below 10^16, with at most 2 decimal places")
	ErrInvalidDuration = newError(KindInvalidInput, http.StatusBadRequest, 40086, "duration hours out of range")
	ErrInvalidAmount   = newError(KindInvalidInput, http.StatusBadRequest, 40087, "bid amount must be positive, below 10^16, with at most 2 decimal places")
	ErrBidTooLow       = newError(KindInvalidInput, http.StatusBadRequest, 40088, "bid must be greater than the current highest")
	ErrInvalidStatus   = newError(KindInvalidInput, http.StatusBadRequest, 40089, "invalid status filter")
)

// bidTooLow keeps ErrBidTooLow matchable while telling the caller the price to beat.
func bidTooLow(current fmt.Stringer) error {
	return fmt.Errorf("%w: current highest is %s", ErrBidTooLow, current)
}
