package cards

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/models"
)

const (
	PlayerRemovedMessage      = "Player removed successfully"
	PlayerRemoveFailedMessage = "Failed to remove player"
)

var (
	ErrDeleteNotAllowed = errors.New("only captains can remove players")
	ErrDeleteInProgress = errors.New("player removal already in progress")
)

type PlayerDeleter interface {
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the viewer to affirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type Stat struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type PlayerCard struct {
	Player models.Player

	session  access.Session
	store    PlayerDeleter
	notifier forms.Notifier
	refresh  forms.RefreshFunc
	logger   *slog.Logger

	mu       sync.Mutex
	deleting bool
}

func NewPlayerCard(player models.Player, session access.Session, store PlayerDeleter, notifier forms.Notifier, refresh forms.RefreshFunc, logger *slog.Logger) *PlayerCard {
	return &PlayerCard{
		Player:   player,
		session:  session,
		store:    store,
		notifier: notifier,
		refresh:  refresh,
		logger:   logger,
	}
}

func (c *PlayerCard) ID() string {
	return c.Player.ID
}

// Initials takes the first letter of each name token, upper-cased, at most two.
func (c *PlayerCard) Initials() string {
	return Initials(c.Player.Name)
}

func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, token := range strings.Fields(name) {
		for _, r := range token {
			b.WriteRune(unicode.ToUpper(r))
			count++
			break
		}
		if count == 2 {
			break
		}
	}
	return b.String()
}

func (c *PlayerCard) AvatarURL() string {
	if c.Player.AvatarURL == nil {
		return ""
	}
	return *c.Player.AvatarURL
}

// JerseyBadge is "#18", or empty when the player has no number.
func (c *PlayerCard) JerseyBadge() string {
	if c.Player.JerseyNumber == nil || *c.Player.JerseyNumber == 0 {
		return ""
	}
	return "#" + strconv.Itoa(*c.Player.JerseyNumber)
}

func (c *PlayerCard) Role() string {
	return string(c.Player.Role)
}

func (c *PlayerCard) BattingLine() string {
	if c.Player.BattingStyle == nil || *c.Player.BattingStyle == "" {
		return ""
	}
	return "Bat: " + string(*c.Player.BattingStyle)
}

func (c *PlayerCard) BowlingLine() string {
	if c.Player.BowlingStyle == nil || *c.Player.BowlingStyle == "" {
		return ""
	}
	return "Bowl: " + string(*c.Player.BowlingStyle)
}

func (c *PlayerCard) Stats() []Stat {
	return []Stat{
		{Label: "Matches", Value: c.Player.TotalMatches},
		{Label: "Runs", Value: c.Player.TotalRuns},
		{Label: "Wickets", Value: c.Player.TotalWickets},
	}
}

func (c *PlayerCard) BestScore() string {
	if c.Player.BestScore == nil {
		return ""
	}
	return *c.Player.BestScore
}

func (c *PlayerCard) BestBowling() string {
	if c.Player.BestBowling == nil {
		return ""
	}
	return *c.Player.BestBowling
}

func (c *PlayerCard) HasBest() bool {
	return c.BestScore() != "" || c.BestBowling() != ""
}

func (c *PlayerCard) CanDelete() bool {
	return c.session.Can(access.ActionDeletePlayer) && c.store != nil
}

func (c *PlayerCard) Deleting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting
}

func (c *PlayerCard) ConfirmPrompt() string {
	return "Are you sure you want to remove " + c.Player.Name + "?"
}

// Delete removes the player once the viewer confirms. It reports whether a delete was
// attempted; a declined confirmation makes no store call at all.
func (c *PlayerCard) Delete(ctx context.Context, confirmer Confirmer) (bool, error) {
	if !c.CanDelete() {
		return false, ErrDeleteNotAllowed
	}
	if !confirmer.Confirm(c.ConfirmPrompt()) {
		return false, nil
	}

	c.mu.Lock()
	if c.deleting {
		c.mu.Unlock()
		return false, ErrDeleteInProgress
	}
	c.deleting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.deleting = false
		c.mu.Unlock()
	}()

	if err := c.store.Delete(ctx, c.Player.ID); err != nil {
		c.notifier.Error(PlayerRemoveFailedMessage)
		c.logger.ErrorContext(ctx, "failed to remove player", slog.String("player_id", c.Player.ID), slog.Any("error", err))
		return true, err
	}

	c.notifier.Success(PlayerRemovedMessage)
	if c.refresh != nil {
		c.refresh(ctx)
	}
	return true, nil
}
