package forms

import (
	"context"
	"strings"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/storage"
)

const PlayerAddedMessage = "Player added successfully!"

type PlayerCreator interface {
	Create(ctx context.Context, player models.NewPlayer, avatar *storage.File) (*models.Player, error)
}

type PlayerDraft struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	JerseyNumber string `json:"jersey_number"`
	BattingStyle string `json:"batting_style"`
	BowlingStyle string `json:"bowling_style"`
}

func DefaultPlayerDraft() PlayerDraft {
	return PlayerDraft{Role: string(models.PlayerRoleBatsman)}
}

// Validate converts the draft into the row to insert. Empty jersey and styles stay absent.
func (d PlayerDraft) Validate() (models.NewPlayer, error) {
	errs := ValidationErrors{}
	errs.required("name", d.Name)
	if !models.PlayerRole(d.Role).Valid() {
		errs.add("role", "is not a known player role")
	}
	jersey := errs.optionalInt("jersey_number", d.JerseyNumber, 1, 99)

	var batting *models.BattingStyle
	if d.BattingStyle != "" {
		if s := models.BattingStyle(d.BattingStyle); s.Valid() {
			batting = &s
		} else {
			errs.add("batting_style", "is not a known batting style")
		}
	}
	var bowling *models.BowlingStyle
	if d.BowlingStyle != "" {
		if s := models.BowlingStyle(d.BowlingStyle); s.Valid() {
			bowling = &s
		} else {
			errs.add("bowling_style", "is not a known bowling style")
		}
	}

	if err := errs.orNil(); err != nil {
		return models.NewPlayer{}, err
	}

	return models.NewPlayer{
		Name:         strings.TrimSpace(d.Name),
		Role:         models.PlayerRole(d.Role),
		JerseyNumber: jersey,
		BattingStyle: batting,
		BowlingStyle: bowling,
	}, nil
}

type AddPlayerForm struct {
	dialog
	store    PlayerCreator
	notifier Notifier
	refresh  RefreshFunc
	draft    PlayerDraft
	avatar   *storage.File
}

func NewAddPlayerForm(store PlayerCreator, notifier Notifier, refresh RefreshFunc) *AddPlayerForm {
	return &AddPlayerForm{
		store:    store,
		notifier: notifier,
		refresh:  refresh,
		draft:    DefaultPlayerDraft(),
	}
}

func (f *AddPlayerForm) Draft() PlayerDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *AddPlayerForm) SetDraft(d PlayerDraft) {
	f.mu.Lock()
	f.draft = d
	f.mu.Unlock()
}

func (f *AddPlayerForm) AttachAvatar(file *storage.File) {
	f.mu.Lock()
	f.avatar = file
	f.mu.Unlock()
}

func (f *AddPlayerForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft, avatar := f.draft, f.avatar
	f.mu.Unlock()

	player, err := draft.Validate()
	if err != nil {
		return err
	}

	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	if _, err := f.store.Create(ctx, player, avatar); err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	f.notifier.Success(PlayerAddedMessage)
	if f.refresh != nil {
		f.refresh(ctx)
	}
	f.succeeded(func() {
		f.draft = DefaultPlayerDraft()
		f.avatar = nil
	})
	return nil
}
