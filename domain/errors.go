package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a route parameter is missing or the backend has no such record
	ErrNotFound = errors.New("not found")
	// ErrRequestFailed is returned when the backend answers success:false or a non-2xx status
	ErrRequestFailed = errors.New("request failed")
	// ErrUnauthenticated is a RequestFailed with status 401
	ErrUnauthenticated = errors.New("authentication failed")
	// ErrForbidden is a RequestFailed with status 403
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidAmount is returned for a bid amount that is missing, unparsable or not above zero
	ErrInvalidAmount = errors.New("invalid bid amount")
	// ErrInvalidRating is returned for a rating outside 1..5
	ErrInvalidRating = errors.New("invalid rating")
	// ErrInvalidInput is returned for local input the backend would refuse
	ErrInvalidInput = errors.New("invalid input")
	// ErrBiddingClosed is returned when the bid form is opened outside the bid window
	ErrBiddingClosed = errors.New("bidding is not open")
	// ErrInsufficientCredit is returned when a seller can't pay the listing fee
	ErrInsufficientCredit = errors.New("insufficient credit")
	// ErrNoCredential is returned when there is no token to store or use
	ErrNoCredential = errors.New("no credential")
)

// RequestError carries what the backend said about a failed call
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// Is makes every RequestError match ErrRequestFailed, plus the status specific sentinels
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrUnauthenticated:
		return e.Status == 401
	case ErrForbidden:
		return e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// MessageOf returns the backend message of err, or fallback when there is none
func MessageOf(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}

// IsRejected tells a business rule rejection (success:false on a 2xx) apart
// from transport failures, which the client already reported to the user
func IsRejected(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status >= 200 && re.Status < 300
}
