// Package cards derives everything a match or player card shows from one row and the viewer's session.
package cards

import (
	"strconv"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/models"
)

// HomeTeamName is the club shown on the home side of every fixture.
var HomeTeamName = "GNCC"

type Badge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

// ScoreRow is one innings line, e.g. "180/6 (20 ov)".
type ScoreRow struct {
	Team    string `json:"team"`
	Score   string `json:"score"`
	Wickets string `json:"wickets"`
	Overs   string `json:"overs"`
}

func (r ScoreRow) String() string {
	return r.Score + "/" + r.Wickets + " (" + r.Overs + " ov)"
}

type MatchCard struct {
	Match models.Match

	session   access.Session
	scoreForm *forms.UpdateScoreForm
}

// NewMatchCard builds a card. The score form exists only for viewers allowed to update scores.
func NewMatchCard(match models.Match, session access.Session, scores forms.ScoreUpdater, notifier forms.Notifier, refresh forms.RefreshFunc) *MatchCard {
	card := &MatchCard{
		Match:   match,
		session: session,
	}
	if session.Can(access.ActionUpdateScore) && scores != nil {
		card.scoreForm = forms.NewUpdateScoreForm(match, scores, notifier, refresh)
	}
	return card
}

func (c *MatchCard) ID() string {
	return c.Match.ID
}

func (c *MatchCard) Title() string {
	return HomeTeamName + " vs " + c.Match.OpponentTeam
}

// Badge returns nil for statuses outside the known set.
func (c *MatchCard) Badge() *Badge {
	switch c.Match.Status {
	case models.MatchStatusLive:
		return &Badge{Label: "Live", Variant: "live"}
	case models.MatchStatusUpcoming:
		return &Badge{Label: "Upcoming", Variant: "upcoming"}
	case models.MatchStatusCompleted:
		return &Badge{Label: "Completed", Variant: "completed"}
	}
	return nil
}

func (c *MatchCard) Schedule() string {
	return FormatMatchDate(c.Match.MatchDate) + " at " + c.Match.MatchTime
}

func (c *MatchCard) Venue() string {
	return c.Match.Venue
}

func (c *MatchCard) MatchType() string {
	return string(c.Match.MatchType)
}

func (c *MatchCard) LogoURL() string {
	if c.Match.OpponentLogoURL == nil {
		return ""
	}
	return *c.Match.OpponentLogoURL
}

func (c *MatchCard) ShowScores() bool {
	return c.Match.Status == models.MatchStatusLive || c.Match.Status == models.MatchStatusCompleted
}

func (c *MatchCard) HomeScore() ScoreRow {
	return ScoreRow{
		Team:    HomeTeamName,
		Score:   scoreOrZero(c.Match.GNCCScore),
		Wickets: wicketsOrZero(c.Match.GNCCWickets),
		Overs:   oversOrZero(c.Match.GNCCOvers),
	}
}

func (c *MatchCard) OpponentScore() ScoreRow {
	return ScoreRow{
		Team:    c.Match.OpponentTeam,
		Score:   scoreOrZero(c.Match.OpponentScore),
		Wickets: wicketsOrZero(c.Match.OpponentWickets),
		Overs:   oversOrZero(c.Match.OpponentOvers),
	}
}

func (c *MatchCard) Result() string {
	if c.Match.Result == nil {
		return ""
	}
	return *c.Match.Result
}

// CanUpdateScore gates the "Update Score" trigger: captains only, and never on a completed match.
func (c *MatchCard) CanUpdateScore() bool {
	return c.scoreForm != nil && c.Match.Status != models.MatchStatusCompleted
}

// ScoreForm is nil unless CanUpdateScore.
func (c *MatchCard) ScoreForm() *forms.UpdateScoreForm {
	if !c.CanUpdateScore() {
		return nil
	}
	return c.scoreForm
}

// Missing and empty values both display as "0".
func scoreOrZero(s *string) string {
	if s == nil || *s == "" {
		return "0"
	}
	return *s
}

func wicketsOrZero(n *int) string {
	if n == nil {
		return "0"
	}
	return strconv.Itoa(*n)
}

func oversOrZero(f *float64) string {
	if f == nil {
		return "0"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
