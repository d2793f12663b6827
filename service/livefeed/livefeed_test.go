package livefeed

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/auction/base/ctx"
)

type countingReloader struct {
	n int32
}

func (r *countingReloader) Reload(c ctx.Ctx) error {
	atomic.AddInt32(&r.n, 1)
	return nil
}

func (r *countingReloader) count() int {
	return int(atomic.LoadInt32(&r.n))
}

type staticToken string

func (t staticToken) Get() (string, bool) { return string(t), t != "" }
func (t staticToken) Clear()              {}

func TestFeedURL(t *testing.T) {
	u, err := FeedURL("http://localhost:8080", 7)
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:8080/ws/items/7", u)

	u, err = FeedURL("https://auction.example/base/", 12)
	require.NoError(t, err)
	require.Equal(t, "wss://auction.example/base/ws/items/12", u)

	_, err = FeedURL("ftp://x", 1)
	require.Error(t, err)
}

func TestRunReloadsAndReconnects(t *testing.T) {
	var (
		mu      sync.Mutex
		conns   int
		authHdr string
	)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ws/items/7", r.URL.Path)
		mu.Lock()
		conns++
		authHdr = r.Header.Get("Authorization")
		mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"bid_placed","itemId":8,"bidAmount":"10"}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"bid_placed","itemId":7,"bidAmount":"150"}`))
	}))
	defer srv.Close()

	target := &countingReloader{}
	var events int32
	feed := New(&FeedCfg{
		BaseURL:     srv.URL,
		Credentials: staticToken("abc"),
		RetryStart:  5 * time.Millisecond,
		RetryLimit:  20 * time.Millisecond,
		OnEvent: func(ev Event) {
			require.Equal(t, int64(7), ev.ItemId)
			atomic.AddInt32(&events, 1)
		},
	}, 7, target)

	c, cancel := ctx.WithCancel(ctx.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(c) }()

	require.Eventually(t, func() bool { return target.count() >= 2 }, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, conns, 2)
	require.Equal(t, "Bearer abc", authHdr)
	require.Equal(t, int32(target.count()), atomic.LoadInt32(&events))
}

func TestRunStopsWhileDialing(t *testing.T) {
	feed := New(&FeedCfg{BaseURL: "http://127.0.0.1:1", RetryStart: time.Hour}, 7, &countingReloader{})

	c, cancel := ctx.WithCancel(ctx.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(c) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}
