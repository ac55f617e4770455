// Package forms holds the drafts behind the add-match, add-player and update-score dialogs.
//
// A form validates its draft locally, performs exactly one store mutation per submit and
// reports the outcome through a Notifier. On failure the dialog stays open with the draft
// intact; on success the caller's refresh runs before the dialog closes.
package forms

import (
	"context"
	"errors"
	"sync"
)

var ErrSubmitInProgress = errors.New("a submission is already in progress")

// Notifier shows transient success and error messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// RefreshFunc re-fetches the collection a form has just changed.
type RefreshFunc func(ctx context.Context)

// dialog is the open/submitting state shared by every form.
type dialog struct {
	mu         sync.Mutex
	open       bool
	submitting bool
}

func (d *dialog) Open() {
	d.mu.Lock()
	d.open = true
	d.mu.Unlock()
}

func (d *dialog) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

func (d *dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Submitting reports whether a mutation is in flight; the submit control is disabled meanwhile.
func (d *dialog) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitting
}

func (d *dialog) begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.submitting {
		return ErrSubmitInProgress
	}
	d.submitting = true
	return nil
}

func (d *dialog) end() {
	d.mu.Lock()
	d.submitting = false
	d.mu.Unlock()
}

func (d *dialog) succeeded(reset func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
	if reset != nil {
		reset()
	}
}
