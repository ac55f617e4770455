package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gncc/cricket-dashboard/db"
	"github.com/gncc/cricket-dashboard/models"
	"github.com/lib/pq"
)

const (
	minReconnectInterval = 10 * time.Second
	maxReconnectInterval = time.Minute
	pingInterval         = 90 * time.Second
)

// Listener relays Postgres NOTIFY events from the table triggers into a Hub.
type Listener struct {
	dsn    string
	hub    *Hub
	logger *slog.Logger
}

func NewListener(dsn string, hub *Hub, logger *slog.Logger) *Listener {
	return &Listener{dsn: dsn, hub: hub, logger: logger}
}

// Run blocks until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	pl := pq.NewListener(l.dsn, minReconnectInterval, maxReconnectInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			l.logger.Warn("change listener connection event", slog.Int("event", int(ev)), slog.Any("error", err))
		}
	})
	defer pl.Close()

	if err := pl.Listen(db.ChangeChannel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", db.ChangeChannel, err)
	}
	l.logger.Info("change listener started", slog.String("channel", db.ChangeChannel))

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("change listener stopped")
			return nil
		case n := <-pl.Notify:
			l.dispatch(n)
		case <-ticker.C:
			go func() {
				if err := pl.Ping(); err != nil {
					l.logger.Warn("change listener ping failed", slog.Any("error", err))
				}
			}()
		}
	}
}

// dispatch publishes one notification. A nil notification means the connection was
// re-established and notifications may have been lost, so every table is resynced.
func (l *Listener) dispatch(n *pq.Notification) {
	if n == nil {
		l.hub.Publish(models.ChangeEvent{Op: models.ChangeResync})
		return
	}

	var ev models.ChangeEvent
	if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil || ev.Table == "" {
		l.logger.Warn("malformed change notification", slog.String("payload", n.Extra), slog.Any("error", err))
		return
	}
	l.hub.Publish(ev)
}
