// Package dashboard composes the role-specific dashboard from its match and player sections.
package dashboard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/forms"
	"golang.org/x/sync/errgroup"
)

const SignedOutMessage = "Signed out successfully"

var ErrNotAllowed = errors.New("session may not view the dashboard")

// Shell is the dashboard for one session: captain or player header plus both sections.
type Shell struct {
	Session access.Session
	Matches *MatchesSection
	Players *PlayersSection
}

func NewShell(session access.Session, matches MatchStore, players PlayerStore, feed ChangeFeed, notifier forms.Notifier, logger *slog.Logger) (*Shell, error) {
	if !session.Can(access.ActionViewDashboard) {
		return nil, ErrNotAllowed
	}
	return &Shell{
		Session: session,
		Matches: NewMatchesSection(session, matches, feed, notifier, logger),
		Players: NewPlayersSection(session, players, notifier, logger),
	}, nil
}

func (s *Shell) Title() string {
	if s.Session.IsCaptain() {
		return "Captain Dashboard"
	}
	return "Player Dashboard"
}

func (s *Shell) Greeting() string {
	if s.Session.IsCaptain() {
		return "Welcome back, " + s.Session.FullName
	}
	return "Welcome, " + s.Session.FullName
}

// Load fetches both sections concurrently. Each section reports its own failure, so a
// broken match list still leaves the roster visible.
func (s *Shell) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Matches.Refresh(ctx) })
	g.Go(func() error { return s.Players.Load(ctx) })
	return g.Wait()
}
