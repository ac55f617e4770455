package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/realtime"
	"github.com/gorilla/websocket"
)

func TestServeMatchesClosesOnServerShutdown(t *testing.T) {
	serverCtx, shutdown := context.WithCancel(context.Background())
	defer shutdown()

	hub := realtime.NewHub(discardLogger())
	h := NewWebSocketHandler(serverCtx, newFakeMatchService(), hub, []string{"*"}, discardLogger())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeMatches(w, withRoute(r, &captain, nil))
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &msg); err != nil || msg.Type != MessageMatchesUpdated {
		t.Fatalf("first message = %s, want %s", data, MessageMatchesUpdated)
	}
	if got := hub.Subscribers(models.TableMatches); got != 1 {
		t.Fatalf("Subscribers() = %d, want 1 while connected", got)
	}

	shutdown()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	deadline := time.Now().Add(5 * time.Second)
	for hub.Subscribers(models.TableMatches) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("section still subscribed after server shutdown")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestServeMatchesRequiresSession(t *testing.T) {
	h := NewWebSocketHandler(context.Background(), newFakeMatchService(), realtime.NewHub(discardLogger()), nil, discardLogger())

	rec := httptest.NewRecorder()
	h.ServeMatches(rec, withRoute(httptest.NewRequest(http.MethodGet, "/ws/matches", nil), nil, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
