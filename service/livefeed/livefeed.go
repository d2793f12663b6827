package livefeed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"

	"github.com/x-xyz/auction/base/backoff"
	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/base/metrics"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/api"
)

const (
	EventBidPlaced = "bid_placed"

	defaultRetryStart = 500 * time.Millisecond
	defaultRetryLimit = 30 * time.Second
)

// Event is pushed by the backend for every change on an item
type Event struct {
	Type      string          `json:"type"`
	ItemId    int64           `json:"itemId"`
	BidderId  int64           `json:"bidderId,omitempty"`
	BidAmount decimal.Decimal `json:"bidAmount"`
}

type FeedCfg struct {
	// BaseURL of the backend, http(s) is turned into ws(s)
	BaseURL     string
	Dialer      *websocket.Dialer
	Credentials api.CredentialProvider
	RetryStart  time.Duration
	RetryLimit  time.Duration
	Metrics     metrics.Service
	// OnEvent sees every event before the reload
	OnEvent func(Event)
}

// Feed keeps a subscription to one item open and reloads the page on
// every event of that item
type Feed struct {
	cfg    FeedCfg
	itemId int64
	target domain.Reloader
}

func New(cfg *FeedCfg, itemId int64, target domain.Reloader) *Feed {
	f := &Feed{cfg: *cfg, itemId: itemId, target: target}
	if f.cfg.Dialer == nil {
		f.cfg.Dialer = websocket.DefaultDialer
	}
	if f.cfg.RetryStart == 0 {
		f.cfg.RetryStart = defaultRetryStart
	}
	if f.cfg.RetryLimit == 0 {
		f.cfg.RetryLimit = defaultRetryLimit
	}
	if f.cfg.Metrics == nil {
		f.cfg.Metrics = metrics.NewLog("livefeed")
	}
	return f
}

// FeedURL is where the events of itemId are published
func FeedURL(baseURL string, itemId int64) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", xerrors.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + fmt.Sprintf("%s/%d", api.PathItemFeed, itemId)
	return u.String(), nil
}

// Run blocks until c is done, reconnecting with exponential backoff
// whenever the connection drops. It returns nil once c is done.
func (f *Feed) Run(c ctx.Ctx) error {
	target, err := FeedURL(f.cfg.BaseURL, f.itemId)
	if err != nil {
		c.WithFields(log.Fields{"baseUrl": f.cfg.BaseURL, "err": err}).Error("FeedURL failed")
		return err
	}
	c = ctx.WithValue(c, "itemId", f.itemId)

	bo := backoff.NewExponential(f.cfg.RetryStart, f.cfg.RetryLimit)
	for {
		if c.Err() != nil {
			return nil
		}

		conn, _, err := f.cfg.Dialer.DialContext(c, target, f.header())
		if err != nil {
			f.cfg.Metrics.BumpSum("err", 1, "op", "dial")
			c.WithFields(log.Fields{"attempt": bo.Attempts(), "err": err}).Warn("Dial failed")
			if err := bo.Wait(c); err != nil {
				return nil
			}
			continue
		}

		bo.Reset()
		c.Info("feed connected")
		f.consume(c, conn)

		if c.Err() != nil {
			return nil
		}
		if err := bo.Wait(c); err != nil {
			return nil
		}
	}
}

func (f *Feed) header() http.Header {
	h := http.Header{}
	if f.cfg.Credentials != nil {
		if token, ok := f.cfg.Credentials.Get(); ok {
			h.Set("Authorization", "Bearer "+token)
		}
	}
	return h
}

// consume reads until the connection breaks or c is done
func (f *Feed) consume(c ctx.Ctx, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-c.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if c.Err() == nil {
				f.cfg.Metrics.BumpSum("err", 1, "op", "read")
				c.WithField("err", err).Warn("ReadMessage failed")
			}
			return
		}

		ev := Event{}
		if err := json.Unmarshal(msg, &ev); err != nil {
			c.WithFields(log.Fields{"msg": string(msg), "err": err}).Warn("json.Unmarshal failed")
			continue
		}
		if ev.ItemId != 0 && ev.ItemId != f.itemId {
			continue
		}

		if f.cfg.OnEvent != nil {
			f.cfg.OnEvent(ev)
		}
		if err := f.target.Reload(c); err != nil {
			c.WithField("err", err).Warn("target.Reload failed")
		}
	}
}
