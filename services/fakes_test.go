package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/repositories"
	"github.com/gncc/cricket-dashboard/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByConfirmationToken(_ context.Context, token string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ConfirmationToken != nil && *u.ConfirmationToken == token })
}

func (r *fakeUserRepo) ConfirmEmail(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.EmailConfirmed = true
	u.ConfirmationToken = nil
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches []models.Match
	updates map[string]models.ScoreUpdate
	err     error
}

func (r *fakeMatchRepo) Create(_ context.Context, m models.NewMatch) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	match := models.Match{
		ID:              fmt.Sprintf("match-%d", len(r.matches)+1),
		MatchDate:       m.MatchDate,
		MatchTime:       m.MatchTime,
		OpponentTeam:    m.OpponentTeam,
		OpponentLogoKey: m.OpponentLogoKey,
		Venue:           m.Venue,
		MatchType:       m.MatchType,
		IsSundayMatch:   m.IsSundayMatch,
		Status:          m.Status,
	}
	r.matches = append(r.matches, match)
	return &match, nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.matches {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepo) ListOrderedByDate(_ context.Context) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := append([]models.Match(nil), r.matches...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchDate < out[j].MatchDate })
	return out, nil
}

func (r *fakeMatchRepo) UpdateScore(_ context.Context, id string, u models.ScoreUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i := range r.matches {
		if r.matches[i].ID == id {
			if r.updates == nil {
				r.updates = make(map[string]models.ScoreUpdate)
			}
			r.updates[id] = u
			r.matches[i].Status = u.Status
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players []models.Player
	deleted []string
	err     error
}

func (r *fakePlayerRepo) Create(_ context.Context, p models.NewPlayer) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	player := models.Player{
		ID:           fmt.Sprintf("player-%d", len(r.players)+1),
		Name:         p.Name,
		Role:         p.Role,
		JerseyNumber: p.JerseyNumber,
		AvatarKey:    p.AvatarKey,
		BattingStyle: p.BattingStyle,
		BowlingStyle: p.BowlingStyle,
	}
	r.players = append(r.players, player)
	return &player, nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id string) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

func (r *fakePlayerRepo) ListOrderedByName(_ context.Context) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := append([]models.Player(nil), r.players...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			r.deleted = append(r.deleted, id)
			return nil
		}
	}
	return repositories.ErrPlayerNotFound
}

type fakeUploader struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	deleteErr error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, key)
	if u.deleteErr != nil {
		return u.deleteErr
	}
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func pngFile(name string) *storage.File {
	return &storage.File{Filename: name, ContentType: "image/png", Reader: bytes.NewReader([]byte("\x89PNG"))}
}

var errStoreDown = errors.New("store unavailable")
