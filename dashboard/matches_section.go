package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/cards"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/realtime"
)

const MatchesLoadFailedMessage = "Failed to load matches"

var ErrAlreadyMounted = errors.New("section is already mounted")

type MatchStore interface {
	List(ctx context.Context) ([]models.Match, error)
	forms.MatchCreator
	forms.ScoreUpdater
}

// ChangeFeed hands out subscriptions to a table's change notifications.
type ChangeFeed interface {
	Subscribe(table string) *realtime.Subscription
}

type State string

const (
	StateIdle       State = "idle"
	StateSubscribed State = "subscribed"
)

const (
	TabUpcoming = "upcoming"
	TabLive     = "live"
	TabHistory  = "history"
	TabSunday   = "sunday"
)

// Tab is one partition of the match list. A match may sit in several tabs at once.
type Tab struct {
	Key       string             `json:"key"`
	Label     string             `json:"label"`
	EmptyText string             `json:"empty_text"`
	Highlight bool               `json:"highlight"`
	Cards     []*cards.MatchCard `json:"-"`
	Matches   []models.Match     `json:"matches"`
}

type matchTab struct {
	key, label, empty string
	highlight         bool
	include           func(models.Match) bool
}

var matchTabs = []matchTab{
	{TabUpcoming, "Upcoming", "No upcoming matches scheduled", false, func(m models.Match) bool { return m.Status == models.MatchStatusUpcoming }},
	{TabLive, "Live", "No live matches at the moment", true, func(m models.Match) bool { return m.Status == models.MatchStatusLive }},
	{TabHistory, "History", "No match history yet", false, func(m models.Match) bool { return m.Status == models.MatchStatusCompleted }},
	{TabSunday, "Sunday", "No Sunday matches scheduled", false, func(m models.Match) bool { return m.IsSundayMatch }},
}

// MatchesSection owns the fetched match list and, while mounted, its change subscription.
type MatchesSection struct {
	// OnChange, when set before Mount, receives every freshly fetched list.
	OnChange func(matches []models.Match)

	session  access.Session
	store    MatchStore
	feed     ChangeFeed
	notifier forms.Notifier
	logger   *slog.Logger
	addForm  *forms.AddMatchForm

	mu      sync.RWMutex
	matches []models.Match
	cards   []*cards.MatchCard
	loading bool
	fetched uint64
	applied uint64

	lifecycle sync.Mutex
	sub       *realtime.Subscription
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewMatchesSection(session access.Session, store MatchStore, feed ChangeFeed, notifier forms.Notifier, logger *slog.Logger) *MatchesSection {
	s := &MatchesSection{
		session:  session,
		store:    store,
		feed:     feed,
		notifier: notifier,
		logger:   logger,
		loading:  true,
	}
	if session.Can(access.ActionAddMatch) {
		s.addForm = forms.NewAddMatchForm(store, notifier, s.refreshCallback)
	}
	return s
}

func (s *MatchesSection) refreshCallback(ctx context.Context) {
	_ = s.Refresh(ctx)
}

// Refresh re-fetches every match. A slower, older fetch never overwrites a newer one.
func (s *MatchesSection) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.fetched++
	seq := s.fetched
	s.mu.Unlock()

	matches, err := s.store.List(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		if ctx.Err() != nil {
			return err
		}
		s.notifier.Error(MatchesLoadFailedMessage)
		s.logger.ErrorContext(ctx, "failed to load matches", slog.Any("error", err))
		return err
	}

	built := make([]*cards.MatchCard, len(matches))
	for i, m := range matches {
		built[i] = cards.NewMatchCard(m, s.session, s.store, s.notifier, s.refreshCallback)
	}

	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		return nil
	}
	s.applied = seq
	s.matches = matches
	s.cards = built
	s.loading = false
	s.mu.Unlock()

	if s.OnChange != nil {
		s.OnChange(matches)
	}
	return nil
}

// Mount subscribes to match changes and loads the list. Every notification triggers a
// full re-fetch until Unmount. The subscription is opened before the first fetch so no
// change can slip between the two.
func (s *MatchesSection) Mount(ctx context.Context) error {
	s.lifecycle.Lock()
	if s.sub != nil {
		s.lifecycle.Unlock()
		return ErrAlreadyMounted
	}
	watchCtx, cancel := context.WithCancel(ctx)
	sub := s.feed.Subscribe(models.TableMatches)
	done := make(chan struct{})
	s.sub, s.cancel, s.done = sub, cancel, done
	s.lifecycle.Unlock()

	go s.watch(watchCtx, sub, done)

	if err := s.Refresh(ctx); err != nil {
		s.logger.WarnContext(ctx, "initial match load failed, waiting for changes", slog.Any("error", err))
	}
	return nil
}

func (s *MatchesSection) watch(ctx context.Context, sub *realtime.Subscription, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			s.logger.DebugContext(ctx, "match change received", slog.String("op", string(ev.Op)))
			_ = s.Refresh(ctx)
		}
	}
}

// Unmount releases the subscription and waits for the refresh goroutine to stop.
// It is safe to call more than once.
func (s *MatchesSection) Unmount() {
	s.lifecycle.Lock()
	sub, cancel, done := s.sub, s.cancel, s.done
	s.sub, s.cancel, s.done = nil, nil, nil
	s.lifecycle.Unlock()

	if sub == nil {
		return
	}
	cancel()
	sub.Close()
	<-done
}

func (s *MatchesSection) State() State {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.sub != nil {
		return StateSubscribed
	}
	return StateIdle
}

func (s *MatchesSection) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *MatchesSection) Matches() []models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Match(nil), s.matches...)
}

// Tabs partitions the current list into upcoming, live, history and Sunday.
func (s *MatchesSection) Tabs() []Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tabs := make([]Tab, 0, len(matchTabs))
	for _, def := range matchTabs {
		tab := Tab{
			Key:       def.key,
			Label:     def.label,
			EmptyText: def.empty,
			Highlight: def.highlight,
			Cards:     []*cards.MatchCard{},
			Matches:   []models.Match{},
		}
		for i, m := range s.matches {
			if def.include(m) {
				tab.Cards = append(tab.Cards, s.cards[i])
				tab.Matches = append(tab.Matches, m)
			}
		}
		tabs = append(tabs, tab)
	}
	return tabs
}

func (s *MatchesSection) Card(id string) *cards.MatchCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// AddMatchForm is nil for viewers who may not add matches.
func (s *MatchesSection) AddMatchForm() *forms.AddMatchForm {
	return s.addForm
}
