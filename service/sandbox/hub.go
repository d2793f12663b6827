package sandbox

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/x-xyz/auction/base/ctx"
	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
	"github.com/x-xyz/auction/service/livefeed"
)

const writeWait = 5 * time.Second

// Hub fans item events out to the websocket subscribers of that item
type Hub struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[int64]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: map[int64]map[*websocket.Conn]struct{}{},
	}
}

// Serve upgrades GET /ws/items/:id and holds the connection until the
// client goes away
func (h *Hub) Serve(c echo.Context) error {
	cont := c.Get("ctx").(ctx.Ctx)
	itemId, err := domain.ParseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, domain.MsgNotFound)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		cont.WithField("err", err).Warn("upgrader.Upgrade failed")
		return nil
	}
	h.add(itemId, conn)
	defer h.remove(itemId, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

// Subscribers of itemId
func (h *Hub) Subscribers(itemId int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[itemId])
}

func (h *Hub) add(itemId int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[itemId] == nil {
		h.subs[itemId] = map[*websocket.Conn]struct{}{}
	}
	h.subs[itemId][conn] = struct{}{}
}

func (h *Hub) remove(itemId int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[itemId], conn)
	if len(h.subs[itemId]) == 0 {
		delete(h.subs, itemId)
	}
	conn.Close()
}

func (h *Hub) Publish(c ctx.Ctx, ev livefeed.Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subs[ev.ItemId] {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.WithFields(log.Fields{"itemId": ev.ItemId, "err": err}).Warn("WriteMessage failed")
		}
	}
}
