package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/cards"
	"github.com/gncc/cricket-dashboard/forms"
	"github.com/gncc/cricket-dashboard/models"
)

const (
	PlayersLoadFailedMessage = "Failed to load players"
	NoPlayersText            = "No players added yet"
)

type PlayerStore interface {
	List(ctx context.Context) ([]models.Player, error)
	forms.PlayerCreator
	cards.PlayerDeleter
}

// PlayersSection owns the fetched roster. It has no change subscription; the list is
// refreshed after this viewer's own adds and deletes.
type PlayersSection struct {
	session  access.Session
	store    PlayerStore
	notifier forms.Notifier
	logger   *slog.Logger
	addForm  *forms.AddPlayerForm

	mu      sync.RWMutex
	players []models.Player
	cards   []*cards.PlayerCard
	loading bool
}

func NewPlayersSection(session access.Session, store PlayerStore, notifier forms.Notifier, logger *slog.Logger) *PlayersSection {
	s := &PlayersSection{
		session:  session,
		store:    store,
		notifier: notifier,
		logger:   logger,
		loading:  true,
	}
	if session.Can(access.ActionAddPlayer) {
		s.addForm = forms.NewAddPlayerForm(store, notifier, s.refreshCallback)
	}
	return s
}

func (s *PlayersSection) refreshCallback(ctx context.Context) {
	_ = s.Load(ctx)
}

// Load fetches the roster ordered by name.
func (s *PlayersSection) Load(ctx context.Context) error {
	players, err := s.store.List(ctx)
	if err != nil {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.notifier.Error(PlayersLoadFailedMessage)
		s.logger.ErrorContext(ctx, "failed to load players", slog.Any("error", err))
		return err
	}

	built := make([]*cards.PlayerCard, len(players))
	for i, p := range players {
		built[i] = cards.NewPlayerCard(p, s.session, s.store, s.notifier, s.refreshCallback, s.logger)
	}

	s.mu.Lock()
	s.players = players
	s.cards = built
	s.loading = false
	s.mu.Unlock()
	return nil
}

func (s *PlayersSection) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *PlayersSection) Players() []models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Player(nil), s.players...)
}

func (s *PlayersSection) Cards() []*cards.PlayerCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*cards.PlayerCard(nil), s.cards...)
}

func (s *PlayersSection) Card(id string) *cards.PlayerCard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.cards {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

func (s *PlayersSection) EmptyText() string {
	return NoPlayersText
}

// AddPlayerForm is nil for viewers who may not add players.
func (s *PlayersSection) AddPlayerForm() *forms.AddPlayerForm {
	return s.addForm
}
