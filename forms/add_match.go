package forms

import (
	"context"
	"strings"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/storage"
)

const MatchAddedMessage = "Match added successfully!"

// MatchCreator inserts a fixture, uploading the optional logo first.
type MatchCreator interface {
	Create(ctx context.Context, match models.NewMatch, logo *storage.File) (*models.Match, error)
}

type MatchDraft struct {
	MatchDate     string `json:"match_date"`
	MatchTime     string `json:"match_time"`
	OpponentTeam  string `json:"opponent_team"`
	Venue         string `json:"venue"`
	MatchType     string `json:"match_type"`
	IsSundayMatch bool   `json:"is_sunday_match"`
}

func DefaultMatchDraft() MatchDraft {
	return MatchDraft{MatchType: string(models.MatchTypeRegular)}
}

// Validate converts the draft into the row to insert. New matches are always upcoming.
func (d MatchDraft) Validate() (models.NewMatch, error) {
	errs := ValidationErrors{}
	errs.date("match_date", d.MatchDate)
	errs.clock("match_time", d.MatchTime)
	errs.required("opponent_team", d.OpponentTeam)
	errs.required("venue", d.Venue)
	if !models.MatchType(d.MatchType).Valid() {
		errs.add("match_type", "is not a known match type")
	}
	if err := errs.orNil(); err != nil {
		return models.NewMatch{}, err
	}

	return models.NewMatch{
		MatchDate:     d.MatchDate,
		MatchTime:     d.MatchTime,
		OpponentTeam:  strings.TrimSpace(d.OpponentTeam),
		Venue:         strings.TrimSpace(d.Venue),
		MatchType:     models.MatchType(d.MatchType),
		IsSundayMatch: d.IsSundayMatch,
		Status:        models.MatchStatusUpcoming,
	}, nil
}

type AddMatchForm struct {
	dialog
	store    MatchCreator
	notifier Notifier
	refresh  RefreshFunc
	draft    MatchDraft
	logo     *storage.File
}

func NewAddMatchForm(store MatchCreator, notifier Notifier, refresh RefreshFunc) *AddMatchForm {
	return &AddMatchForm{
		store:    store,
		notifier: notifier,
		refresh:  refresh,
		draft:    DefaultMatchDraft(),
	}
}

func (f *AddMatchForm) Draft() MatchDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *AddMatchForm) SetDraft(d MatchDraft) {
	f.mu.Lock()
	f.draft = d
	f.mu.Unlock()
}

// AttachLogo sets the opponent logo uploaded with the next submit. nil clears it.
func (f *AddMatchForm) AttachLogo(file *storage.File) {
	f.mu.Lock()
	f.logo = file
	f.mu.Unlock()
}

// Submit inserts the draft as one new match. It returns ValidationErrors without
// touching the store when the draft is incomplete.
func (f *AddMatchForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft, logo := f.draft, f.logo
	f.mu.Unlock()

	match, err := draft.Validate()
	if err != nil {
		return err
	}

	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	if _, err := f.store.Create(ctx, match, logo); err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	f.notifier.Success(MatchAddedMessage)
	if f.refresh != nil {
		f.refresh(ctx)
	}
	f.succeeded(func() {
		f.draft = DefaultMatchDraft()
		f.logo = nil
	})
	return nil
}
