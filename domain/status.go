package domain

import "time"

// BidStatus is derived from the bid window and never stored
type BidStatus int

const (
	BidStatusUpcoming BidStatus = iota
	BidStatusActive
	BidStatusEnded
)

// EvaluateBidStatus places now against the half-open window [start, end):
// now == start is Active and now == end is Ended.
func EvaluateBidStatus(now, start, end time.Time) BidStatus {
	switch {
	case now.Before(start):
		return BidStatusUpcoming
	case now.Before(end):
		return BidStatusActive
	default:
		return BidStatusEnded
	}
}

// String is the text of the status tag
func (s BidStatus) String() string {
	switch s {
	case BidStatusActive:
		return "Active"
	case BidStatusEnded:
		return "Ended"
	default:
		return "Upcoming"
	}
}

// Label is the text of the primary bid action
func (s BidStatus) Label() string {
	switch s {
	case BidStatusActive:
		return "Bid Now"
	case BidStatusEnded:
		return "Ended"
	default:
		return "Coming Soon"
	}
}

// Color of the status tag
func (s BidStatus) Color() string {
	switch s {
	case BidStatusActive:
		return "green"
	case BidStatusEnded:
		return "red"
	default:
		return "blue"
	}
}
