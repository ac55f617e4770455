package forms

import (
	"context"

	"github.com/gncc/cricket-dashboard/models"
)

const ScoreUpdatedMessage = "Score updated successfully!"

type ScoreUpdater interface {
	UpdateScore(ctx context.Context, id string, update models.ScoreUpdate) error
}

// ScoreDraft is the whole score row of one match as strings.
type ScoreDraft struct {
	Status          string `json:"status"`
	GNCCScore       string `json:"gncc_score"`
	GNCCWickets     string `json:"gncc_wickets"`
	GNCCOvers       string `json:"gncc_overs"`
	OpponentScore   string `json:"opponent_score"`
	OpponentWickets string `json:"opponent_wickets"`
	OpponentOvers   string `json:"opponent_overs"`
	Result          string `json:"result"`
}

// ScoreDraftFromMatch seeds the draft from the stored row.
func ScoreDraftFromMatch(m models.Match) ScoreDraft {
	return ScoreDraft{
		Status:          string(m.Status),
		GNCCScore:       derefString(m.GNCCScore),
		GNCCWickets:     formatOptionalInt(m.GNCCWickets),
		GNCCOvers:       formatOptionalFloat(m.GNCCOvers),
		OpponentScore:   derefString(m.OpponentScore),
		OpponentWickets: formatOptionalInt(m.OpponentWickets),
		OpponentOvers:   formatOptionalFloat(m.OpponentOvers),
		Result:          derefString(m.Result),
	}
}

// Validate converts the draft into a full-row update. Every empty field becomes an
// absent value and overwrites whatever was stored.
func (d ScoreDraft) Validate() (models.ScoreUpdate, error) {
	errs := ValidationErrors{}
	if !models.MatchStatus(d.Status).Valid() {
		errs.add("status", "is not a known match status")
	}
	update := models.ScoreUpdate{
		Status:          models.MatchStatus(d.Status),
		GNCCScore:       optionalString(d.GNCCScore),
		GNCCWickets:     errs.optionalInt("gncc_wickets", d.GNCCWickets, 0, 10),
		GNCCOvers:       errs.optionalFloat("gncc_overs", d.GNCCOvers),
		OpponentScore:   optionalString(d.OpponentScore),
		OpponentWickets: errs.optionalInt("opponent_wickets", d.OpponentWickets, 0, 10),
		OpponentOvers:   errs.optionalFloat("opponent_overs", d.OpponentOvers),
		Result:          optionalString(d.Result),
	}
	if err := errs.orNil(); err != nil {
		return models.ScoreUpdate{}, err
	}
	return update, nil
}

// UpdateScoreForm edits the score of exactly one match.
type UpdateScoreForm struct {
	dialog
	matchID  string
	store    ScoreUpdater
	notifier Notifier
	refresh  RefreshFunc
	draft    ScoreDraft
}

func NewUpdateScoreForm(match models.Match, store ScoreUpdater, notifier Notifier, refresh RefreshFunc) *UpdateScoreForm {
	return &UpdateScoreForm{
		matchID:  match.ID,
		store:    store,
		notifier: notifier,
		refresh:  refresh,
		draft:    ScoreDraftFromMatch(match),
	}
}

func (f *UpdateScoreForm) MatchID() string {
	return f.matchID
}

func (f *UpdateScoreForm) Draft() ScoreDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *UpdateScoreForm) SetDraft(d ScoreDraft) {
	f.mu.Lock()
	f.draft = d
	f.mu.Unlock()
}

// Submit writes the full draft over the match row. The draft is kept after success.
func (f *UpdateScoreForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	draft := f.draft
	f.mu.Unlock()

	update, err := draft.Validate()
	if err != nil {
		return err
	}

	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()

	if err := f.store.UpdateScore(ctx, f.matchID, update); err != nil {
		f.notifier.Error(err.Error())
		return err
	}

	f.notifier.Success(ScoreUpdatedMessage)
	if f.refresh != nil {
		f.refresh(ctx)
	}
	f.succeeded(nil)
	return nil
}
