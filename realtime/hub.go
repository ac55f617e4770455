package realtime

import (
	"log/slog"
	"sync"

	"github.com/gncc/cricket-dashboard/models"
)

// subscriptionBuffer bounds undelivered notifications per subscriber. A notification
// carries no data, so one pending event is as good as many.
const subscriptionBuffer = 8

// Hub fans change notifications out to per-table rooms of subscribers.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Subscription]bool
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Subscription]bool),
		logger: logger,
	}
}

// Subscription is a live handle on one table's change notifications.
// It must be closed when the view that opened it goes away.
type Subscription struct {
	hub       *Hub
	room      string
	events    chan models.ChangeEvent
	closeOnce sync.Once
}

// Events is closed after Close.
func (s *Subscription) Events() <-chan models.ChangeEvent {
	return s.events
}

func (s *Subscription) Table() string {
	return s.room
}

func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Subscribe registers interest in all insert/update/delete notifications of table.
func (h *Hub) Subscribe(table string) *Subscription {
	sub := &Subscription{
		hub:    h,
		room:   table,
		events: make(chan models.ChangeEvent, subscriptionBuffer),
	}

	h.mu.Lock()
	if _, ok := h.rooms[table]; !ok {
		h.rooms[table] = make(map[*Subscription]bool)
	}
	h.rooms[table][sub] = true
	total := len(h.rooms[table])
	h.mu.Unlock()

	h.logger.Debug("change feed subscription opened", slog.String("table", table), slog.Int("subscribers", total))
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[sub.room]
	if !ok || !room[sub] {
		return
	}
	delete(room, sub)
	close(sub.events)
	if len(room) == 0 {
		delete(h.rooms, sub.room)
	}
	h.logger.Debug("change feed subscription closed", slog.String("table", sub.room), slog.Int("subscribers", len(room)))
}

// Publish delivers ev to every subscriber of ev.Table. A resync event with an empty
// table goes to every room. Full subscriber buffers are skipped, never waited on.
func (h *Hub) Publish(ev models.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for table, room := range h.rooms {
		if ev.Table != table && !(ev.Op == models.ChangeResync && ev.Table == "") {
			continue
		}
		delivered := ev
		delivered.Table = table
		for sub := range room {
			select {
			case sub.events <- delivered:
			default:
			}
		}
	}
}

// Subscribers returns the number of open subscriptions on table.
func (h *Hub) Subscribers(table string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[table])
}
