package usecase

import (
	"errors"
	"sync"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
)

const (
	msgRatingInvalid = "Invalid Rating"
	msgRatingRange   = "Please enter a rating between 1 and 5."
)

// Page is the item detail the rating is given from
type Page interface {
	Snapshot() (*domain.Item, []domain.Bid)
	domain.Reloader
}

// CanRate tells whether viewer may rate the bidders of item, only its
// seller can
func CanRate(viewerID int64, item *domain.Item) bool {
	return item != nil && viewerID != 0 && viewerID == item.SellerId
}

// Flow is the rating dialog a seller opens from a bid row
type Flow struct {
	ratings  domain.RatingRepo
	page     Page
	notifier domain.Notifier

	mu     sync.Mutex
	open   bool
	bidder int64
	value  int
}

func NewFlow(ratings domain.RatingRepo, page Page, notifier domain.Notifier) *Flow {
	return &Flow{
		ratings:  ratings,
		page:     page,
		notifier: notifier,
	}
}

// Open prefills the dialog with the rating bidder already has for the
// item, 0 when there is none or it could not be read. Only bidders listed
// in the bid history can be rated.
func (f *Flow) Open(c ctx.Ctx, bidderID int64) error {
	item, bids := f.page.Snapshot()
	if item == nil {
		return domain.ErrNotFound
	}
	if !hasBid(bids, bidderID) {
		c.WithFields(log.Fields{"bidderId": bidderID, "itemId": item.Id}).Warn("bidder not in history")
		return domain.ErrInvalidInput
	}

	value := 0
	r, err := f.ratings.FindOne(c, bidderID, item.Id)
	if err == nil && r != nil {
		value = r.RatingValue
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		c.WithFields(log.Fields{"bidderId": bidderID, "err": err}).Warn("ratings.FindOne failed")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.bidder = bidderID
	f.value = value
	return nil
}

func (f *Flow) SetValue(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

func (f *Flow) Value() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *Flow) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Bidder being rated, 0 when the dialog is closed
func (f *Flow) Bidder() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return 0
	}
	return f.bidder
}

func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.close()
}

// Confirm saves the rating. A value outside 1..5 keeps the dialog open and
// sends nothing; otherwise the dialog closes whatever the outcome and an
// accepted rating reloads the page.
func (f *Flow) Confirm(c ctx.Ctx) error {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return domain.ErrInvalidInput
	}
	if !domain.ValidRating(f.value) {
		v := f.value
		f.mu.Unlock()
		c.WithField("value", v).Warn("invalid rating")
		f.notifier.Notify(domain.Notification{Level: domain.LevelError, Title: msgRatingInvalid, Message: msgRatingRange})
		return domain.ErrInvalidRating
	}
	bidder, value := f.bidder, f.value
	f.mu.Unlock()

	item, _ := f.page.Snapshot()
	if item == nil {
		f.Cancel()
		return domain.ErrNotFound
	}

	err := f.ratings.Upsert(c, domain.Rating{RateeId: bidder, ItemId: item.Id, RatingValue: value})

	f.mu.Lock()
	f.close()
	f.mu.Unlock()

	if err != nil {
		c.WithFields(log.Fields{"bidderId": bidder, "itemId": item.Id, "err": err}).Warn("ratings.Upsert failed")
		if domain.IsRejected(err) {
			f.notifier.Notify(domain.Notification{
				Level:   domain.LevelError,
				Title:   domain.MsgFail,
				Message: domain.MessageOf(err, domain.MsgFail),
			})
		}
		return err
	}

	if err := f.page.Reload(c); err != nil {
		c.WithField("err", err).Warn("page.Reload failed")
	}
	return nil
}

func (f *Flow) close() {
	f.open = false
	f.value = 0
}

func hasBid(bids []domain.Bid, bidderID int64) bool {
	for i := range bids {
		if bidderID != 0 && bids[i].BidderID() == bidderID {
			return true
		}
	}
	return false
}
