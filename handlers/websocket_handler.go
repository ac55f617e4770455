package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/dashboard"
	"github.com/gncc/cricket-dashboard/middleware"
	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/realtime"
	"github.com/gorilla/websocket"
)

const (
	MessageMatchesUpdated = "MATCHES_UPDATED"
	MessageNotification   = "NOTIFICATION"
)

type WebSocketHandler struct {
	baseCtx      context.Context
	matchService dashboard.MatchStore
	feed         dashboard.ChangeFeed
	upgrader     websocket.Upgrader
	logger       *slog.Logger
}

// NewWebSocketHandler accepts upgrades from the listed origins, from the server's own
// host, and from clients that send no Origin header at all. Open connections are closed
// when baseCtx is done.
func NewWebSocketHandler(baseCtx context.Context, matchService dashboard.MatchStore, feed dashboard.ChangeFeed, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	h := &WebSocketHandler{
		baseCtx:      baseCtx,
		matchService: matchService,
		feed:         feed,
		logger:       logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r, allowedOrigins)
		},
	}
	return h
}

func originAllowed(r *http.Request, allowed []string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// ServeMatches streams the match tabs to a signed-in viewer. The current tabs are sent
// right after the upgrade and again after every change to the matches table.
func (h *WebSocketHandler) ServeMatches(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok || !session.Can(access.ActionViewDashboard) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := realtime.NewClient(conn, h.logger)
	notices := &socketNotifier{client: client}
	section := dashboard.NewMatchesSection(session, h.matchService, h.feed, notices, h.logger)
	section.OnChange = func([]models.Match) {
		client.Send(realtime.Message{
			Type:    MessageMatchesUpdated,
			Payload: jsonResponse{"tabs": section.Tabs()},
		})
	}

	// The section lives as long as the client or the server, not the hijacked request.
	ctx, cancel := context.WithCancel(h.baseCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, client.Close)
	defer stop()

	go client.WritePump()
	if err := section.Mount(ctx); err != nil {
		h.logger.Error("failed to mount matches section", slog.Any("error", err))
		client.Close()
		return
	}
	h.logger.Info("websocket client connected", slog.String("user_id", session.UserID))

	client.ReadPump()

	cancel()
	section.Unmount()
	h.logger.Info("websocket client disconnected", slog.String("user_id", session.UserID))
}

// socketNotifier forwards notices to the connected client.
type socketNotifier struct {
	client *realtime.Client
}

func (n *socketNotifier) Success(message string) {
	n.client.Send(realtime.Message{Type: MessageNotification, Payload: Notice{Kind: NoticeSuccess, Message: message}})
}

func (n *socketNotifier) Error(message string) {
	n.client.Send(realtime.Message{Type: MessageNotification, Payload: Notice{Kind: NoticeError, Message: message}})
}
