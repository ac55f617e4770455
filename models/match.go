package models

import "time"

type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
)

// MatchStatuses is the option set offered by the score form selector.
var MatchStatuses = []MatchStatus{MatchStatusUpcoming, MatchStatusLive, MatchStatusCompleted}

func (s MatchStatus) Valid() bool {
	for _, v := range MatchStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type MatchType string

const (
	MatchTypeRegular    MatchType = "Regular"
	MatchTypeT20        MatchType = "T20"
	MatchTypeODI        MatchType = "ODI"
	MatchTypeTest       MatchType = "Test"
	MatchTypeTournament MatchType = "Tournament"
)

var MatchTypes = []MatchType{MatchTypeRegular, MatchTypeT20, MatchTypeODI, MatchTypeTest, MatchTypeTournament}

func (t MatchType) Valid() bool {
	for _, v := range MatchTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Match is one row of the matches table. MatchDate is YYYY-MM-DD, MatchTime is HH:MM.
type Match struct {
	ID              string      `json:"id"`
	MatchDate       string      `json:"match_date"`
	MatchTime       string      `json:"match_time"`
	OpponentTeam    string      `json:"opponent_team"`
	OpponentLogoKey *string     `json:"-"`
	OpponentLogoURL *string     `json:"opponent_logo_url"`
	Venue           string      `json:"venue"`
	MatchType       MatchType   `json:"match_type"`
	IsSundayMatch   bool        `json:"is_sunday_match"`
	Status          MatchStatus `json:"status"`
	GNCCScore       *string     `json:"gncc_score"`
	GNCCWickets     *int        `json:"gncc_wickets"`
	GNCCOvers       *float64    `json:"gncc_overs"`
	OpponentScore   *string     `json:"opponent_score"`
	OpponentWickets *int        `json:"opponent_wickets"`
	OpponentOvers   *float64    `json:"opponent_overs"`
	Result          *string     `json:"result"`
	CreatedAt       time.Time   `json:"created_at"`
}

// NewMatch is the row inserted by the add-match form.
type NewMatch struct {
	MatchDate       string
	MatchTime       string
	OpponentTeam    string
	OpponentLogoKey *string
	Venue           string
	MatchType       MatchType
	IsSundayMatch   bool
	Status          MatchStatus
}

// ScoreUpdate is the full score draft written by the update-score form.
// Every field is written, nil ones overwrite the stored value with NULL.
type ScoreUpdate struct {
	Status          MatchStatus
	GNCCScore       *string
	GNCCWickets     *int
	GNCCOvers       *float64
	OpponentScore   *string
	OpponentWickets *int
	OpponentOvers   *float64
	Result          *string
}
