package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/middleware"
	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/services"
	"github.com/gncc/cricket-dashboard/storage"
	"github.com/gncc/cricket-dashboard/web"
	"github.com/go-chi/chi/v5"
)

const (
	upcomingMatchID  = "0b6d4b8e-8c1e-4a55-9a3e-1f6f7c0d2a01"
	completedMatchID = "0b6d4b8e-8c1e-4a55-9a3e-1f6f7c0d2a02"
	playerID         = "6a1c2f3e-5d4b-4c3a-8b2a-9e8d7c6b5a41"
)

var errStoreDown = errors.New("store unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	captain = access.Session{UserID: "u-captain", Email: "asha@gncc.test", FullName: "Asha Patel", Role: models.RoleCaptain}
	player  = access.Session{UserID: "u-player", Email: "ravi@gncc.test", FullName: "Ravi Kumar", Role: models.RolePlayer}
)

type fakeMatchService struct {
	mu      sync.Mutex
	matches []models.Match
	created []models.NewMatch
	updates map[string]models.ScoreUpdate
	listErr error
}

func newFakeMatchService() *fakeMatchService {
	return &fakeMatchService{
		matches: []models.Match{
			{ID: upcomingMatchID, MatchDate: "2025-01-02", MatchTime: "18:00:00", OpponentTeam: "Riverside CC", Venue: "Central Park", MatchType: models.MatchTypeT20, Status: models.MatchStatusUpcoming},
			{ID: completedMatchID, MatchDate: "2024-12-01", MatchTime: "10:00:00", OpponentTeam: "Hilltop XI", Venue: "Oval Ground", MatchType: models.MatchTypeODI, Status: models.MatchStatusCompleted, IsSundayMatch: true},
		},
		updates: map[string]models.ScoreUpdate{},
	}
}

func (f *fakeMatchService) List(ctx context.Context) ([]models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Match(nil), f.matches...), nil
}

func (f *fakeMatchService) Create(ctx context.Context, m models.NewMatch, logo *storage.File) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, m)
	match := models.Match{ID: "0b6d4b8e-8c1e-4a55-9a3e-1f6f7c0d2a99", MatchDate: m.MatchDate, MatchTime: m.MatchTime, OpponentTeam: m.OpponentTeam, Venue: m.Venue, MatchType: m.MatchType, Status: models.MatchStatusUpcoming}
	f.matches = append(f.matches, match)
	return &match, nil
}

func (f *fakeMatchService) UpdateScore(ctx context.Context, id string, u models.ScoreUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates[id] = u
	for i := range f.matches {
		if f.matches[i].ID == id {
			f.matches[i].Status = u.Status
		}
	}
	return nil
}

type fakePlayerService struct {
	mu      sync.Mutex
	players []models.Player
	created []models.NewPlayer
	deleted []string
}

func newFakePlayerService() *fakePlayerService {
	jersey := 18
	return &fakePlayerService{
		players: []models.Player{{ID: playerID, Name: "Virat Sharma", Role: models.PlayerRoleBatsman, JerseyNumber: &jersey}},
	}
}

func (f *fakePlayerService) List(ctx context.Context) ([]models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Player(nil), f.players...), nil
}

func (f *fakePlayerService) Create(ctx context.Context, p models.NewPlayer, avatar *storage.File) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	player := models.Player{ID: "6a1c2f3e-5d4b-4c3a-8b2a-9e8d7c6b5a99", Name: p.Name, Role: p.Role}
	f.players = append(f.players, player)
	return &player, nil
}

func (f *fakePlayerService) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for i, p := range f.players {
		if p.ID == id {
			f.players = append(f.players[:i], f.players[i+1:]...)
			return nil
		}
	}
	return services.ErrPlayerNotFound
}

func (f *fakePlayerService) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type fakeAuthService struct {
	loginErr    error
	registerErr error
	registered  []services.RegisterInput
}

func (f *fakeAuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.registered = append(f.registered, input)
	return &models.User{ID: "u-new", FullName: input.FullName, Email: input.Email, Role: input.Role}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, input services.LoginInput) (*models.User, string, error) {
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return &models.User{ID: "u-captain", Email: input.Email, Role: models.RoleCaptain}, "signed-token", nil
}

func (f *fakeAuthService) ParseSession(token string) (access.Session, error) {
	if token != "signed-token" {
		return access.Session{}, services.ErrAuthenticationFailed
	}
	return captain, nil
}

func (f *fakeAuthService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	if token != "good" {
		return "", services.ErrConfirmationTokenInvalid
	}
	return "http://localhost:8080/dashboard", nil
}

// withRoute attaches chi URL params and, when session is non-nil, a session.
func withRoute(r *http.Request, session *access.Session, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if session != nil {
		ctx = middleware.WithSession(ctx, *session)
	}
	return r.WithContext(ctx)
}

type pageFixture struct {
	matches *fakeMatchService
	players *fakePlayerService
	auth    *fakeAuthService
	handler *PageHandler
}

func newPageFixture(t *testing.T) *pageFixture {
	t.Helper()
	tmpl, err := web.LoadTemplates(web.Templates())
	if err != nil {
		t.Fatalf("LoadTemplates() error = %v", err)
	}
	f := &pageFixture{
		matches: newFakeMatchService(),
		players: newFakePlayerService(),
		auth:    &fakeAuthService{},
	}
	authHandler := NewAuthHandler(f.auth, false, discardLogger())
	f.handler = NewPageHandler(tmpl, authHandler, f.matches, f.players, nil, discardLogger())
	return f
}
