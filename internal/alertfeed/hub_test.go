package alertfeed

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"chem-backend/internal/models"

	"github.com/gorilla/websocket"
)

type countingEvaluator struct {
	calls atomic.Int32
}

func (e *countingEvaluator) EvaluateAlerts(context.Context) (*models.Alerts, error) {
	n := e.calls.Add(1)
	return &models.Alerts{
		LowStock: []*models.Chemical{{ID: "low", Quantity: float64(n)}},
		Expiring: []*models.Chemical{},
	}, nil
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHubSendsInitialAndPeriodicSnapshots(t *testing.T) {
	eval := &countingEvaluator{}
	hub := NewHub(eval, 20*time.Millisecond)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dial(t, srv)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first Snapshot
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	if len(first.LowStock) != 1 || first.LowStock[0].ID != "low" {
		t.Errorf("unexpected initial snapshot %+v", first)
	}

	var next Snapshot
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("periodic snapshot: %v", err)
	}
	if next.Timestamp.IsZero() {
		t.Error("snapshots carry a timestamp")
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewHub(&countingEvaluator{}, time.Hour)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	var snap Snapshot
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatal(err)
	}
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Clients() != 0 {
		t.Errorf("want 0 clients after disconnect, got %d", hub.Clients())
	}
}
