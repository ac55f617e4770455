package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/storage"
)

func validNewMatch() models.NewMatch {
	return models.NewMatch{
		MatchDate:    "2025-01-02",
		MatchTime:    "18:00",
		OpponentTeam: "Riverside CC",
		Venue:        "Central Park",
		MatchType:    models.MatchTypeT20,
	}
}

func TestMatchCreateForcesUpcoming(t *testing.T) {
	repo := &fakeMatchRepo{}
	svc := NewMatchService(repo, nil, discardLogger())

	m := validNewMatch()
	m.Status = models.MatchStatusCompleted
	created, err := svc.Create(context.Background(), m, nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Status != models.MatchStatusUpcoming {
		t.Errorf("status = %q, want upcoming", created.Status)
	}
	if created.OpponentLogoURL != nil {
		t.Error("match without logo should have no logo URL")
	}
}

func TestMatchCreateValidation(t *testing.T) {
	repo := &fakeMatchRepo{}
	svc := NewMatchService(repo, nil, discardLogger())

	cases := map[string]func(*models.NewMatch){
		"opponent": func(m *models.NewMatch) { m.OpponentTeam = "   " },
		"venue":    func(m *models.NewMatch) { m.Venue = "" },
		"date":     func(m *models.NewMatch) { m.MatchDate = "" },
		"time":     func(m *models.NewMatch) { m.MatchTime = "" },
		"type":     func(m *models.NewMatch) { m.MatchType = "Hundred" },
	}
	for name, mutate := range cases {
		m := validNewMatch()
		mutate(&m)
		if _, err := svc.Create(context.Background(), m, nil); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("%s: Create() error = %v, want ErrValidationFailed", name, err)
		}
	}
	if len(repo.matches) != 0 {
		t.Errorf("invalid matches reached the store: %d rows", len(repo.matches))
	}
}

func TestMatchCreateWithLogo(t *testing.T) {
	repo := &fakeMatchRepo{}
	uploader := newFakeUploader()
	svc := NewMatchService(repo, uploader, discardLogger())

	created, err := svc.Create(context.Background(), validNewMatch(), pngFile("riverside.png"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.OpponentLogoKey == nil || !strings.HasPrefix(*created.OpponentLogoKey, storage.PrefixMatchLogos+"/") {
		t.Fatalf("logo key = %v", created.OpponentLogoKey)
	}
	if created.OpponentLogoURL == nil || *created.OpponentLogoURL != "https://cdn.example.com/"+*created.OpponentLogoKey {
		t.Errorf("logo URL = %v", created.OpponentLogoURL)
	}
	if len(uploader.objects) != 1 {
		t.Errorf("uploaded objects = %d, want 1", len(uploader.objects))
	}
}

func TestMatchCreateLogoWithoutStorage(t *testing.T) {
	repo := &fakeMatchRepo{}
	svc := NewMatchService(repo, nil, discardLogger())

	if _, err := svc.Create(context.Background(), validNewMatch(), pngFile("logo.png")); !errors.Is(err, ErrMediaStorageDisabled) {
		t.Errorf("Create() error = %v, want ErrMediaStorageDisabled", err)
	}
	if len(repo.matches) != 0 {
		t.Error("match must not be inserted when the logo cannot be stored")
	}
}

func TestMatchCreateRemovesLogoWhenInsertFails(t *testing.T) {
	repo := &fakeMatchRepo{err: errStoreDown}
	uploader := newFakeUploader()
	svc := NewMatchService(repo, uploader, discardLogger())

	if _, err := svc.Create(context.Background(), validNewMatch(), pngFile("logo.png")); !errors.Is(err, errStoreDown) {
		t.Fatalf("Create() error = %v, want store error", err)
	}
	if len(uploader.objects) != 0 || len(uploader.deleted) != 1 {
		t.Errorf("orphaned logo left behind: objects=%d deleted=%d", len(uploader.objects), len(uploader.deleted))
	}
}

func TestMatchUpdateScore(t *testing.T) {
	repo := &fakeMatchRepo{}
	svc := NewMatchService(repo, nil, discardLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, validNewMatch(), nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	wickets, overs := 4, 18.3
	update := models.ScoreUpdate{Status: models.MatchStatusLive, GNCCWickets: &wickets, GNCCOvers: &overs}
	if err := svc.UpdateScore(ctx, created.ID, update); err != nil {
		t.Fatalf("UpdateScore() error = %v", err)
	}
	if got := repo.updates[created.ID]; got.Status != models.MatchStatusLive || *got.GNCCWickets != 4 {
		t.Errorf("stored update = %+v", got)
	}

	if err := svc.UpdateScore(ctx, "missing", update); !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("UpdateScore(missing) error = %v, want ErrMatchNotFound", err)
	}

	tooMany := 11
	if err := svc.UpdateScore(ctx, created.ID, models.ScoreUpdate{Status: models.MatchStatusLive, OpponentWickets: &tooMany}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("UpdateScore(11 wickets) error = %v", err)
	}
	negative := -1.0
	if err := svc.UpdateScore(ctx, created.ID, models.ScoreUpdate{Status: models.MatchStatusLive, OpponentOvers: &negative}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("UpdateScore(negative overs) error = %v", err)
	}
	if err := svc.UpdateScore(ctx, created.ID, models.ScoreUpdate{Status: "abandoned"}); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("UpdateScore(bad status) error = %v", err)
	}
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		overs := bad
		if err := svc.UpdateScore(ctx, created.ID, models.ScoreUpdate{Status: models.MatchStatusLive, GNCCOvers: &overs}); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("UpdateScore(overs %v) error = %v", bad, err)
		}
	}
	if got := repo.updates[created.ID]; got.GNCCOvers == nil || *got.GNCCOvers != 18.3 {
		t.Errorf("rejected updates must not reach the store, stored = %+v", got)
	}
}

func TestMatchListPopulatesLogos(t *testing.T) {
	key := "matches/logos/abc.png"
	repo := &fakeMatchRepo{matches: []models.Match{
		{ID: "2", MatchDate: "2025-03-01"},
		{ID: "1", MatchDate: "2025-01-01", OpponentLogoKey: &key},
	}}
	svc := NewMatchService(repo, newFakeUploader(), discardLogger())

	matches, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(matches) != 2 || matches[0].ID != "1" {
		t.Fatalf("List() order = %+v", matches)
	}
	if matches[0].OpponentLogoURL == nil || *matches[0].OpponentLogoURL != "https://cdn.example.com/"+key {
		t.Errorf("logo URL = %v", matches[0].OpponentLogoURL)
	}

	empty, err := NewMatchService(&fakeMatchRepo{}, nil, discardLogger()).List(context.Background())
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("List() on empty store = %v, %v; want empty non-nil slice", empty, err)
	}
}

func TestGetExtensionFromContentType(t *testing.T) {
	tests := map[string]string{
		"image/jpeg":    ".jpg",
		"image/png":     ".png",
		"image/webp":    ".webp",
		"image/svg+xml": ".svg",
	}
	for in, want := range tests {
		got, err := GetExtensionFromContentType(in)
		if err != nil || got != want {
			t.Errorf("GetExtensionFromContentType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := GetExtensionFromContentType("application/pdf"); err == nil {
		t.Error("non-image content type should be rejected")
	}
}
