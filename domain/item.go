package domain

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/auction/base/ctx"
)

type Item struct {
	Id           int64           `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	ImagePath    string          `json:"imagePath"`
	DocumentPath string          `json:"documentPath,omitempty"`
	MinimumBid   decimal.Decimal `json:"minimumBid"`
	BidIncrement decimal.Decimal `json:"bidIncrement"`
	BidStartDate Timestamp       `json:"bidStartDate"`
	BidEndDate   Timestamp       `json:"bidEndDate"`
	SellerId     int64           `json:"sellerId"`
	Seller       *UserSummary    `json:"seller,omitempty"`
	CategoryId   int64           `json:"categoryId"`
	IsDeleted    bool            `json:"isDeleted"` // soft deleted by the backend
	Bids         []Bid           `json:"bids"`
}

// Status evaluates the bid window at now
func (i *Item) Status(now time.Time) BidStatus {
	return EvaluateBidStatus(now, i.BidStartDate.Time, i.BidEndDate.Time)
}

// Floor is the amount a new bid has to exceed: the highest bid so far, or the
// minimum bid when nobody has bid yet
func (i *Item) Floor() decimal.Decimal {
	floor := i.MinimumBid
	for _, b := range i.Bids {
		if b.BidAmount.GreaterThan(floor) {
			floor = b.BidAmount
		}
	}
	return floor
}

type Bid struct {
	Id        int64           `json:"id"`
	ItemId    int64           `json:"itemId"`
	BidderId  int64           `json:"bidderId"`
	Bidder    *UserSummary    `json:"bidder,omitempty"`
	BidAmount decimal.Decimal `json:"bidAmount"`
	BidDate   Timestamp       `json:"bidDate"`
}

// BidderID prefers the nested bidder which is what the history rows link to
func (b *Bid) BidderID() int64 {
	if b.Bidder != nil && b.Bidder.Id != 0 {
		return b.Bidder.Id
	}
	return b.BidderId
}

type BidRequest struct {
	ItemId    int64           `json:"itemId" validate:"required"`
	BidAmount decimal.Decimal `json:"bidAmount" validate:"decimal_gt0"`
}

// ItemForm is what a seller submits to list or update an item
type ItemForm struct {
	Id           int64           `json:"id,omitempty"`
	Title        string          `json:"title" validate:"required"`
	CategoryId   int64           `json:"categoryId" validate:"required"`
	MinimumBid   decimal.Decimal `json:"minimumBid" validate:"decimal_gte0"`
	BidIncrement decimal.Decimal `json:"bidIncrement" validate:"decimal_gte0"`
	Description  string          `json:"description" validate:"required"`
	BidStartDate Timestamp       `json:"bidStartDate"`
	BidEndDate   Timestamp       `json:"bidEndDate"`
	ImagePath    string          `json:"imagePath"`
	DocumentPath string          `json:"documentPath,omitempty"`
}

// FormOf pre-fills the edit form from an existing item
func FormOf(i *Item) ItemForm {
	return ItemForm{
		Id:           i.Id,
		Title:        i.Title,
		CategoryId:   i.CategoryId,
		MinimumBid:   i.MinimumBid,
		BidIncrement: i.BidIncrement,
		Description:  i.Description,
		BidStartDate: i.BidStartDate,
		BidEndDate:   i.BidEndDate,
		ImagePath:    i.ImagePath,
		DocumentPath: i.DocumentPath,
	}
}

// ListOptions of the paged list endpoints
type ListOptions struct {
	Page   int
	Size   int
	Search string
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Query renders the options the way the list endpoints read them
func (o ListOptions) Query() url.Values {
	page, size := o.Page, o.Size
	if page <= 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return url.Values{
		"page":   {strconv.Itoa(page)},
		"size":   {strconv.Itoa(size)},
		"search": {o.Search},
	}
}

type ItemPage struct {
	Queryable []Item `json:"queryable"`
	RowCount  int    `json:"rowCount"`
}

type ItemRepo interface {
	FindOne(c ctx.Ctx, id int64) (*Item, error)
	FindAll(c ctx.Ctx, opts ListOptions) (*ItemPage, error)
	FindHome(c ctx.Ctx) ([]Item, error)
	FindMine(c ctx.Ctx) ([]Item, error)
	Create(c ctx.Ctx, form ItemForm) error
	Update(c ctx.Ctx, form ItemForm) error
	Delete(c ctx.Ctx, id int64) error
}

type BidRepo interface {
	Create(c ctx.Ctx, req BidRequest) error
}

// ParseID reads a numeric route id. Empty, malformed and non positive ids
// are ErrNotFound.
func ParseID(raw string) (int64, error) {
	if raw == "" {
		return 0, ErrNotFound
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound
	}
	return id, nil
}

// Reloader refreshes what a view shows after a write
type Reloader interface {
	Reload(c ctx.Ctx) error
}

// Card is the list summary of an item
type Card struct {
	Id          int64
	Title       string
	Description string
	ImagePath   string
	Window      string
	Status      BidStatus
}

// NewCard summarizes i at now, the bid window rendered in loc
func NewCard(i Item, now time.Time, loc *time.Location) Card {
	return Card{
		Id:          i.Id,
		Title:       i.Title,
		Description: i.Description,
		ImagePath:   i.ImagePath,
		Window:      i.BidStartDate.Display(loc) + " - " + i.BidEndDate.Display(loc),
		Status:      i.Status(now),
	}
}

type ItemUsecase interface {
	List(c ctx.Ctx, opts ListOptions) (*ItemPage, error)
	Home(c ctx.Ctx) ([]Item, error)
	Mine(c ctx.Ctx) ([]Item, error)
	// Create lists a new item, seller needs ListingFeeCredits
	Create(c ctx.Ctx, form ItemForm, seller *User) error
	Update(c ctx.Ctx, form ItemForm) error
	Delete(c ctx.Ctx, id int64) error
}
