package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"storefront/controllers"
	"storefront/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Screen names used in pushed envelopes.
const (
	ScreenCatalog = "catalog"
	ScreenCart    = "cart"
)

// incomingMessage is what a connected screen may send.
type incomingMessage struct {
	Type string `json:"type"` // refresh | ping
}

// StateMessage is pushed to every connected client whenever a screen state
// changes.
type StateMessage struct {
	Type      string      `json:"type"`
	Screen    string      `json:"screen"`
	State     interface{} `json:"state"`
	Timestamp string      `json:"timestamp"`
}

// StateHandler streams controller state to websocket clients.
type StateHandler struct {
	mgr     *ws.Manager
	catalog *controllers.CatalogController
	cart    *controllers.CartController
	log     *logrus.Logger

	mu      sync.Mutex
	cancels []func()
}

func NewStateHandler(mgr *ws.Manager, catalog *controllers.CatalogController, cart *controllers.CartController, log *logrus.Logger) *StateHandler {
	h := &StateHandler{mgr: mgr, catalog: catalog, cart: cart, log: log}
	h.cancels = append(h.cancels,
		catalog.State().Subscribe(func(s controllers.CatalogState) { h.broadcast(ScreenCatalog, s) }),
		cart.State().Subscribe(func(s controllers.CartState) { h.broadcast(ScreenCart, s) }),
	)
	return h
}

// Close stops following the controllers and drops every client.
func (h *StateHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cancel := range h.cancels {
		cancel()
	}
	h.cancels = nil
	for _, id := range h.mgr.List() {
		h.mgr.Unregister(id)
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleStateWS upgrades to websocket, sends the current screen states, then
// keeps the connection registered for pushes.
// GET /ws
func (h *StateHandler) HandleStateWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	clientID := uuid.NewString()
	h.mgr.Register(clientID, conn)
	log := h.log.WithField("client", clientID)
	log.Info("screen connected")

	defer func() {
		h.mgr.Unregister(clientID)
		log.Info("screen disconnected")
	}()

	h.sendAll(clientID)

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("read error")
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var in incomingMessage
		if err := json.Unmarshal(message, &in); err != nil {
			log.WithError(err).Debug("invalid json")
			continue
		}
		switch in.Type {
		case "refresh":
			h.sendAll(clientID)
		case "ping":
		default:
			log.WithField("type", in.Type).Debug("unknown message type")
		}
	}
}

// GetConnectedClients GET /api/v1/screens/connected
func (h *StateHandler) GetConnectedClients(c *gin.Context) {
	ids := h.mgr.List()
	c.JSON(http.StatusOK, gin.H{"clients": ids, "count": len(ids)})
}

func (h *StateHandler) sendAll(clientID string) {
	for _, msg := range []StateMessage{
		newStateMessage(ScreenCatalog, h.catalog.State().Value()),
		newStateMessage(ScreenCart, h.cart.State().Value()),
	} {
		b, err := json.Marshal(msg)
		if err != nil {
			h.log.WithError(err).Error("encode state")
			continue
		}
		if err := h.mgr.Send(clientID, b); err != nil {
			h.log.WithError(err).WithField("client", clientID).Debug("send state")
			return
		}
	}
}

func (h *StateHandler) broadcast(screen string, state interface{}) {
	b, err := json.Marshal(newStateMessage(screen, state))
	if err != nil {
		h.log.WithError(err).Error("encode state")
		return
	}
	if failed := h.mgr.Broadcast(b); len(failed) > 0 {
		h.log.WithField("clients", failed).Debug("dropped unreachable screens")
	}
}

func newStateMessage(screen string, state interface{}) StateMessage {
	return StateMessage{
		Type:      "state",
		Screen:    screen,
		State:     state,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
