package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/repositories"
	"github.com/gncc/cricket-dashboard/storage"
)

const maxWickets = 10

type MatchService interface {
	List(ctx context.Context) ([]models.Match, error)
	Create(ctx context.Context, match models.NewMatch, logo *storage.File) (*models.Match, error)
	UpdateScore(ctx context.Context, id string, update models.ScoreUpdate) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

// NewMatchService accepts a nil uploader; logos are then rejected.
func NewMatchService(matchRepo repositories.MatchRepository, uploader storage.FileUploader, logger *slog.Logger) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

// List returns every match ordered by date, earliest first.
func (s *matchService) List(ctx context.Context) ([]models.Match, error) {
	matches, err := s.matchRepo.ListOrderedByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		return []models.Match{}, nil
	}
	for i := range matches {
		populateMatchLogoURL(&matches[i], s.uploader)
	}
	return matches, nil
}

// Create inserts a new fixture. New matches always start as upcoming.
func (s *matchService) Create(ctx context.Context, match models.NewMatch, logo *storage.File) (*models.Match, error) {
	match.Status = models.MatchStatusUpcoming
	match.OpponentTeam = strings.TrimSpace(match.OpponentTeam)
	match.Venue = strings.TrimSpace(match.Venue)

	if err := validateNewMatch(match); err != nil {
		return nil, err
	}

	if logo != nil {
		key, err := uploadImage(ctx, s.uploader, storage.PrefixMatchLogos, logo)
		if err != nil {
			return nil, err
		}
		match.OpponentLogoKey = &key
	}

	created, err := s.matchRepo.Create(ctx, match)
	if err != nil {
		if match.OpponentLogoKey != nil {
			removeObject(ctx, s.uploader, *match.OpponentLogoKey, s.logger)
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	populateMatchLogoURL(created, s.uploader)
	s.logger.InfoContext(ctx, "match created", slog.String("match_id", created.ID), slog.String("opponent", created.OpponentTeam))
	return created, nil
}

// UpdateScore overwrites the status, both innings and the result of one match.
func (s *matchService) UpdateScore(ctx context.Context, id string, update models.ScoreUpdate) error {
	if err := validateScoreUpdate(update); err != nil {
		return err
	}

	if err := s.matchRepo.UpdateScore(ctx, id, update); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to update score: %w", err)
	}

	s.logger.InfoContext(ctx, "match score updated", slog.String("match_id", id), slog.String("status", string(update.Status)))
	return nil
}

func validateNewMatch(m models.NewMatch) error {
	switch {
	case m.OpponentTeam == "":
		return fmt.Errorf("%w: opponent team is required", ErrValidationFailed)
	case m.Venue == "":
		return fmt.Errorf("%w: venue is required", ErrValidationFailed)
	case m.MatchDate == "":
		return fmt.Errorf("%w: match date is required", ErrValidationFailed)
	case m.MatchTime == "":
		return fmt.Errorf("%w: match time is required", ErrValidationFailed)
	case !m.MatchType.Valid():
		return fmt.Errorf("%w: unknown match type %q", ErrValidationFailed, m.MatchType)
	}
	return nil
}

func validateScoreUpdate(u models.ScoreUpdate) error {
	if !u.Status.Valid() {
		return fmt.Errorf("%w: unknown match status %q", ErrValidationFailed, u.Status)
	}
	for _, w := range []*int{u.GNCCWickets, u.OpponentWickets} {
		if w != nil && (*w < 0 || *w > maxWickets) {
			return fmt.Errorf("%w: wickets must be between 0 and %d", ErrValidationFailed, maxWickets)
		}
	}
	for _, o := range []*float64{u.GNCCOvers, u.OpponentOvers} {
		if o == nil {
			continue
		}
		if math.IsNaN(*o) || math.IsInf(*o, 0) {
			return fmt.Errorf("%w: overs must be a number", ErrValidationFailed)
		}
		if *o < 0 {
			return fmt.Errorf("%w: overs cannot be negative", ErrValidationFailed)
		}
	}
	return nil
}
