package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
)

// Detail keeps the snapshot of the item page. Loads that finish after
// Unmount, or after a newer load was issued, are dropped.
type Detail struct {
	items domain.ItemRepo
	nav   domain.Navigator

	mu      sync.Mutex
	mounted bool
	itemID  int64
	item    *domain.Item
	bids    []domain.Bid
	life    context.Context
	cancel  context.CancelFunc
	seq     uint64
}

func NewDetail(items domain.ItemRepo, nav domain.Navigator) *Detail {
	return &Detail{
		items: items,
		nav:   nav,
		bids:  []domain.Bid{},
	}
}

// Mount opens the page of rawID. An empty or malformed id leaves for the
// not found page without loading.
func (d *Detail) Mount(c ctx.Ctx, rawID string) error {
	id, err := domain.ParseID(rawID)
	if err != nil {
		c.WithField("id", rawID).Warn("invalid item id")
		if d.nav != nil {
			d.nav.Navigate(domain.RouteNotFound)
		}
		return err
	}

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.life, d.cancel = context.WithCancel(context.Background())
	d.mounted = true
	d.itemID = id
	d.item = nil
	d.bids = []domain.Bid{}
	d.mu.Unlock()

	return d.Load(c)
}

// Load replaces the snapshot with what the backend has now. On failure the
// snapshot is cleared and the error returned for logging only.
func (d *Detail) Load(c ctx.Ctx) error {
	d.mu.Lock()
	if !d.mounted {
		d.mu.Unlock()
		return nil
	}
	d.seq++
	seq, id, life := d.seq, d.itemID, d.life
	d.mu.Unlock()

	lc, cancel := ctx.WithCancel(ctx.WithValue(c, "itemId", id))
	defer cancel()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-life.Done():
			cancel()
		case <-done:
		}
	}()

	item, err := d.items.FindOne(lc, id)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.mounted || seq != d.seq || d.itemID != id {
		lc.WithField("seq", seq).Debug("stale load dropped")
		return nil
	}
	if err != nil {
		lc.WithFields(log.Fields{"err": err}).Warn("items.FindOne failed")
		d.item = nil
		d.bids = []domain.Bid{}
		return err
	}

	d.item = item
	d.bids = item.Bids
	if d.bids == nil {
		d.bids = []domain.Bid{}
	}
	return nil
}

// Reload is a full Load, used after a bid or a rating was accepted
func (d *Detail) Reload(c ctx.Ctx) error {
	return d.Load(c)
}

// Unmount drops every response still in flight
func (d *Detail) Unmount() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mounted = false
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Snapshot returns copies of the current item, nil when absent, and its bids
func (d *Detail) Snapshot() (*domain.Item, []domain.Bid) {
	d.mu.Lock()
	defer d.mu.Unlock()

	bids := make([]domain.Bid, len(d.bids))
	copy(bids, d.bids)
	if d.item == nil {
		return nil, bids
	}
	item := *d.item
	item.Bids = bids
	return &item, bids
}

// ItemID of the mounted page, 0 when nothing is mounted
func (d *Detail) ItemID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.mounted {
		return 0
	}
	return d.itemID
}

// Status evaluates the snapshot at now, false without an item
func (d *Detail) Status(now time.Time) (domain.BidStatus, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.item == nil {
		return domain.BidStatusUpcoming, false
	}
	return d.item.Status(now), true
}
