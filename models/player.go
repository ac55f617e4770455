package models

import "time"

type PlayerRole string

const (
	PlayerRoleBatsman      PlayerRole = "Batsman"
	PlayerRoleBowler       PlayerRole = "Bowler"
	PlayerRoleAllRounder   PlayerRole = "All-rounder"
	PlayerRoleWicketKeeper PlayerRole = "Wicket-keeper"
)

var PlayerRoles = []PlayerRole{PlayerRoleBatsman, PlayerRoleBowler, PlayerRoleAllRounder, PlayerRoleWicketKeeper}

func (r PlayerRole) Valid() bool {
	for _, v := range PlayerRoles {
		if r == v {
			return true
		}
	}
	return false
}

type BattingStyle string

const (
	BattingRightHanded BattingStyle = "Right-handed"
	BattingLeftHanded  BattingStyle = "Left-handed"
)

var BattingStyles = []BattingStyle{BattingRightHanded, BattingLeftHanded}

func (s BattingStyle) Valid() bool {
	for _, v := range BattingStyles {
		if s == v {
			return true
		}
	}
	return false
}

type BowlingStyle string

const (
	BowlingRightArmFast BowlingStyle = "Right-arm Fast"
	BowlingLeftArmFast  BowlingStyle = "Left-arm Fast"
	BowlingRightArmSpin BowlingStyle = "Right-arm Spin"
	BowlingLeftArmSpin  BowlingStyle = "Left-arm Spin"
)

var BowlingStyles = []BowlingStyle{BowlingRightArmFast, BowlingLeftArmFast, BowlingRightArmSpin, BowlingLeftArmSpin}

func (s BowlingStyle) Valid() bool {
	for _, v := range BowlingStyles {
		if s == v {
			return true
		}
	}
	return false
}

// Player is one roster row. TotalMatches, TotalRuns, TotalWickets, BestScore and
// BestBowling are maintained outside this service and are never written here.
type Player struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Role         PlayerRole    `json:"role"`
	JerseyNumber *int          `json:"jersey_number"`
	AvatarKey    *string       `json:"-"`
	AvatarURL    *string       `json:"avatar_url"`
	BattingStyle *BattingStyle `json:"batting_style"`
	BowlingStyle *BowlingStyle `json:"bowling_style"`
	TotalMatches int           `json:"total_matches"`
	TotalRuns    int           `json:"total_runs"`
	TotalWickets int           `json:"total_wickets"`
	BestScore    *string       `json:"best_score"`
	BestBowling  *string       `json:"best_bowling"`
	CreatedAt    time.Time     `json:"created_at"`
}

// NewPlayer is the row inserted by the add-player form.
type NewPlayer struct {
	Name         string
	Role         PlayerRole
	JerseyNumber *int
	AvatarKey    *string
	BattingStyle *BattingStyle
	BowlingStyle *BowlingStyle
}
