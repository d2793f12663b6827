package domain

import "github.com/x-xyz/auction/base/ctx"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is given by a seller to a bidder for one item. The backend upserts
// on (ratee, item).
type Rating struct {
	RaterId     int64 `json:"raterId,omitempty"`
	RateeId     int64 `json:"rateeId" validate:"required"`
	ItemId      int64 `json:"itemId" validate:"required"`
	RatingValue int   `json:"ratingValue" validate:"min=1,max=5"`
}

func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

type RatingRepo interface {
	// FindOne returns ErrNotFound when the bidder has not been rated for the item
	FindOne(c ctx.Ctx, rateeId, itemId int64) (*Rating, error)
	Upsert(c ctx.Ctx, r Rating) error
}
