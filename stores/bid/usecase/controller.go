package usecase

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
)

const (
	msgBidFailed   = "Failed to place bid"
	msgBidFallback = "Please try again later."
	msgBidInvalid  = "Invalid Bid Amount"
	msgBidEnterPls = "Please enter a valid bid amount."
)

// FormState of the bid form
type FormState int

const (
	FormCollapsed FormState = iota
	FormRevealed
)

func (s FormState) String() string {
	if s == FormRevealed {
		return "revealed"
	}
	return "collapsed"
}

// Page is the item detail the form belongs to
type Page interface {
	Snapshot() (*domain.Item, []domain.Bid)
	domain.Reloader
}

// Controller drives the two step bid form: the first Submit reveals the
// amount input, the second one places the bid.
type Controller struct {
	bids     domain.BidRepo
	page     Page
	notifier domain.Notifier
	now      func() time.Time

	mu     sync.Mutex
	state  FormState
	amount string
}

type OptionsFunc func(*Controller)

// WithClock replaces time.Now
func WithClock(now func() time.Time) OptionsFunc {
	return func(c *Controller) {
		c.now = now
	}
}

func NewController(bids domain.BidRepo, page Page, notifier domain.Notifier, opts ...OptionsFunc) *Controller {
	c := &Controller{
		bids:     bids,
		page:     page,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (ct *Controller) State() FormState {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.state
}

// SetAmount keeps the raw input, it is only parsed on Submit
func (ct *Controller) SetAmount(raw string) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.amount = raw
}

func (ct *Controller) Amount() string {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return ct.amount
}

// Collapse hides the form and keeps the amount
func (ct *Controller) Collapse() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.state = FormCollapsed
}

// Submit reveals the form while bidding is open, or places the entered bid
// when it is already revealed. After an accepted bid the form collapses,
// the amount is cleared and the page reloads once.
func (ct *Controller) Submit(c ctx.Ctx) error {
	ct.mu.Lock()
	item, _ := ct.page.Snapshot()

	if ct.state == FormCollapsed {
		defer ct.mu.Unlock()
		if item == nil || item.Status(ct.now()) != domain.BidStatusActive {
			return domain.ErrBiddingClosed
		}
		ct.state = FormRevealed
		return nil
	}

	raw := ct.amount
	ct.mu.Unlock()

	if item == nil {
		c.WithField("amount", raw).Warn("no item to bid on")
		ct.notifier.Notify(domain.Notification{Level: domain.LevelError, Title: msgBidFailed, Message: msgBidFallback})
		return domain.ErrNotFound
	}
	amount, ok := ParseAmount(raw)
	if !ok {
		c.WithField("amount", raw).Warn("invalid bid amount")
		ct.notifier.Notify(domain.Notification{Level: domain.LevelError, Title: msgBidInvalid, Message: msgBidEnterPls})
		return domain.ErrInvalidAmount
	}

	req := domain.BidRequest{ItemId: item.Id, BidAmount: amount}
	if err := ct.bids.Create(c, req); err != nil {
		c.WithFields(log.Fields{"itemId": item.Id, "amount": raw, "err": err}).Warn("bids.Create failed")
		ct.notifier.Notify(domain.Notification{
			Level:   domain.LevelError,
			Title:   msgBidFailed,
			Message: domain.MessageOf(err, msgBidFallback),
		})
		return err
	}

	ct.mu.Lock()
	ct.amount = ""
	ct.state = FormCollapsed
	ct.mu.Unlock()

	if err := ct.page.Reload(c); err != nil {
		c.WithField("err", err).Warn("page.Reload failed")
	}
	return nil
}

// ParseAmount accepts finite amounts above zero
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
