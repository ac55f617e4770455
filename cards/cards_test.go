package cards

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/models"
)

var (
	captain = access.Session{UserID: "c1", FullName: "Captain", Role: models.RoleCaptain}
	player  = access.Session{UserID: "p1", FullName: "Player", Role: models.RolePlayer}
)

type notices struct {
	success []string
	errors  []string
}

func (n *notices) Success(m string) { n.success = append(n.success, m) }
func (n *notices) Error(m string) { n.errors = append(n.errors, m) }

type scoreStore struct{}

func (scoreStore) UpdateScore(context.Context, string, models.ScoreUpdate) error { return nil }

type deleteStore struct {
	ids []string
	err error
}

func (s *deleteStore) Delete(_ context.Context, id string) error {
	s.ids = append(s.ids, id)
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFormatMatchDate(t *testing.T) {
	tests := map[string]string{
		"2025-01-02": "January 2nd, 2025",
		"2025-03-01": "March 1st, 2025",
		"2025-04-03": "April 3rd, 2025",
		"2025-05-11": "May 11th, 2025",
		"2025-06-12": "June 12th, 2025",
		"2025-07-13": "July 13th, 2025",
		"2025-08-22": "August 22nd, 2025",
		"2025-09-30": "September 30th, 2025",
		"not a date": "not a date",
	}
	for in, want := range tests {
		if got := FormatMatchDate(in); got != want {
			t.Errorf("FormatMatchDate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchCardBadge(t *testing.T) {
	tests := []struct {
		status models.MatchStatus
		want   string
	}{
		{models.MatchStatusLive, "Live"},
		{models.MatchStatusUpcoming, "Upcoming"},
		{models.MatchStatusCompleted, "Completed"},
	}
	for _, tt := range tests {
		card := NewMatchCard(models.Match{Status: tt.status}, player, nil, nil, nil)
		if b := card.Badge(); b == nil || b.Label != tt.want {
			t.Errorf("Badge(%q) = %+v, want %q", tt.status, b, tt.want)
		}
	}
	if b := NewMatchCard(models.Match{Status: "postponed"}, player, nil, nil, nil).Badge(); b != nil {
		t.Errorf("unknown status should have no badge, got %+v", b)
	}
}

func TestMatchCardScoresDefaultToZero(t *testing.T) {
	score, overs := "180", 19.4
	match := models.Match{
		OpponentTeam: "Riverside CC",
		Status:       models.MatchStatusLive,
		GNCCScore:    &score,
		GNCCOvers:    &overs,
	}
	card := NewMatchCard(match, player, nil, nil, nil)

	if !card.ShowScores() {
		t.Fatal("live match should show scores")
	}
	if got := card.HomeScore().String(); got != "180/0 (19.4 ov)" {
		t.Errorf("home score = %q", got)
	}
	if got := card.OpponentScore(); got.Team != "Riverside CC" || got.String() != "0/0 (0 ov)" {
		t.Errorf("opponent score = %+v", got)
	}

	match.Status = models.MatchStatusUpcoming
	if NewMatchCard(match, player, nil, nil, nil).ShowScores() {
		t.Error("upcoming match should not show scores")
	}
}

func TestMatchCardTitleAndSchedule(t *testing.T) {
	card := NewMatchCard(models.Match{OpponentTeam: "Riverside CC", MatchDate: "2025-01-02", MatchTime: "18:00"}, player, nil, nil, nil)
	if card.Title() != "GNCC vs Riverside CC" {
		t.Errorf("Title() = %q", card.Title())
	}
	if card.Schedule() != "January 2nd, 2025 at 18:00" {
		t.Errorf("Schedule() = %q", card.Schedule())
	}
}

func TestMatchCardCanUpdateScore(t *testing.T) {
	live := models.Match{ID: "m1", Status: models.MatchStatusLive}
	done := models.Match{ID: "m2", Status: models.MatchStatusCompleted}

	if c := NewMatchCard(live, captain, scoreStore{}, &notices{}, nil); !c.CanUpdateScore() || c.ScoreForm() == nil {
		t.Error("captain should be able to update a live match")
	}
	if c := NewMatchCard(done, captain, scoreStore{}, &notices{}, nil); c.CanUpdateScore() || c.ScoreForm() != nil {
		t.Error("completed match must not offer a score update")
	}
	if c := NewMatchCard(live, player, scoreStore{}, &notices{}, nil); c.CanUpdateScore() || c.ScoreForm() != nil {
		t.Error("players must not update scores")
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Virat Kohli":         "VK",
		"Shaan":               "S",
		"rahul sharad dravid": "RS",
		"  Anil   Kumble ":    "AK",
		"élodie durand":       "ÉD",
		"":                    "",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlayerCardDisplay(t *testing.T) {
	jersey := 18
	batting := models.BattingRightHanded
	best := "183"
	card := NewPlayerCard(models.Player{
		Name:         "Virat Kohli",
		Role:         models.PlayerRoleBatsman,
		JerseyNumber: &jersey,
		BattingStyle: &batting,
		TotalRuns:    1200,
		BestScore:    &best,
	}, player, nil, nil, nil, discardLogger())

	if card.JerseyBadge() != "#18" || card.BattingLine() != "Bat: Right-handed" || card.BowlingLine() != "" {
		t.Errorf("badge/lines = %q %q %q", card.JerseyBadge(), card.BattingLine(), card.BowlingLine())
	}
	if stats := card.Stats(); len(stats) != 3 || stats[1].Label != "Runs" || stats[1].Value != 1200 {
		t.Errorf("Stats() = %+v", stats)
	}
	if !card.HasBest() || card.BestBowling() != "" {
		t.Error("best block should show the best score only")
	}
	if card.CanDelete() {
		t.Error("players must not see the delete trigger")
	}
}

func TestPlayerCardDeleteRequiresConfirmation(t *testing.T) {
	store := &deleteStore{}
	n := &notices{}
	refreshes := 0
	card := NewPlayerCard(models.Player{ID: "p9", Name: "Shaan"}, captain, store, n, func(context.Context) { refreshes++ }, discardLogger())

	var prompt string
	attempted, err := card.Delete(context.Background(), ConfirmFunc(func(p string) bool { prompt = p; return false }))
	if attempted || err != nil {
		t.Fatalf("declined Delete() = %v, %v", attempted, err)
	}
	if prompt != "Are you sure you want to remove Shaan?" {
		t.Errorf("prompt = %q", prompt)
	}
	if len(store.ids) != 0 || refreshes != 0 || len(n.success)+len(n.errors) != 0 {
		t.Fatal("declined confirmation must not touch the store")
	}

	attempted, err = card.Delete(context.Background(), ConfirmFunc(func(string) bool { return true }))
	if !attempted || err != nil {
		t.Fatalf("confirmed Delete() = %v, %v", attempted, err)
	}
	if len(store.ids) != 1 || store.ids[0] != "p9" || refreshes != 1 {
		t.Errorf("deletes = %v, refreshes = %d; want exactly one of each", store.ids, refreshes)
	}
	if len(n.success) != 1 || n.success[0] != PlayerRemovedMessage {
		t.Errorf("success notices = %v", n.success)
	}
	if card.Deleting() {
		t.Error("deleting flag must be cleared")
	}
}

func TestPlayerCardDeleteFailure(t *testing.T) {
	store := &deleteStore{err: errors.New("row level security")}
	n := &notices{}
	refreshes := 0
	card := NewPlayerCard(models.Player{ID: "p9", Name: "Shaan"}, captain, store, n, func(context.Context) { refreshes++ }, discardLogger())

	attempted, err := card.Delete(context.Background(), ConfirmFunc(func(string) bool { return true }))
	if !attempted || err == nil {
		t.Fatalf("Delete() = %v, %v; want attempted with error", attempted, err)
	}
	if len(n.errors) != 1 || n.errors[0] != PlayerRemoveFailedMessage {
		t.Errorf("error notices = %v", n.errors)
	}
	if refreshes != 0 || card.Deleting() {
		t.Error("failed delete must not refresh and must clear the deleting flag")
	}
}

func TestPlayerCardDeleteForbiddenForPlayers(t *testing.T) {
	store := &deleteStore{}
	card := NewPlayerCard(models.Player{ID: "p9", Name: "Shaan"}, player, store, &notices{}, nil, discardLogger())

	_, err := card.Delete(context.Background(), ConfirmFunc(func(string) bool { return true }))
	if !errors.Is(err, ErrDeleteNotAllowed) || len(store.ids) != 0 {
		t.Errorf("Delete() by player error = %v, deletes = %v", err, store.ids)
	}
}
