package alertfeed

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"chem-backend/internal/metrics"
	"chem-backend/internal/models"
	"chem-backend/internal/timeutil"

	"github.com/gorilla/websocket"
)

// Evaluator produces the current alert lists
type Evaluator interface {
	EvaluateAlerts(ctx context.Context) (*models.Alerts, error)
}

// Snapshot is the message pushed to websocket clients
type Snapshot struct {
	LowStock  []*models.Chemical `json:"lowStock"`
	Expiring  []*models.Chemical `json:"expiring"`
	Timestamp time.Time          `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub re-evaluates alerts on an interval and pushes each result to every
// connected websocket client.
type Hub struct {
	evaluator Evaluator
	interval  time.Duration

	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Snapshot
}

func NewHub(evaluator Evaluator, interval time.Duration) *Hub {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Hub{
		evaluator: evaluator,
		interval:  interval,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Snapshot),
	}
}

// Run evaluates alerts every interval until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	go h.handleBroadcast()
	defer close(h.broadcast)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			snap, err := h.snapshot(ctx)
			if err != nil {
				log.Printf("[AlertFeed] Evaluation failed: %v", err)
				continue
			}
			select {
			case h.broadcast <- snap:
			case <-ctx.Done():
			}
		}
	}
}

func (h *Hub) snapshot(ctx context.Context) (Snapshot, error) {
	alerts, err := h.evaluator.EvaluateAlerts(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{LowStock: alerts.LowStock, Expiring: alerts.Expiring, Timestamp: timeutil.Now()}, nil
}

// ServeHTTP upgrades the connection, sends the current alerts and keeps the
// client registered until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[AlertFeed] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	snap, err := h.snapshot(r.Context())
	if err != nil {
		log.Printf("[AlertFeed] Initial evaluation failed: %v", err)
	}

	h.clientsMux.Lock()
	if err == nil {
		if werr := conn.WriteJSON(snap); werr != nil {
			h.clientsMux.Unlock()
			return
		}
	}
	h.clients[conn] = true
	metrics.AlertFeedClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn)
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.clientsMux.Lock()
	delete(h.clients, conn)
	metrics.AlertFeedClients.Set(float64(len(h.clients)))
	h.clientsMux.Unlock()
}

func (h *Hub) handleBroadcast() {
	for snap := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			client.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.WriteJSON(snap); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		metrics.AlertFeedClients.Set(float64(len(h.clients)))
		h.clientsMux.Unlock()
	}
}

func (h *Hub) closeAll() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	for client := range h.clients {
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		client.Close()
		delete(h.clients, client)
	}
	metrics.AlertFeedClients.Set(0)
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}
