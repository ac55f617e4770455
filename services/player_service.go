package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/repositories"
	"github.com/gncc/cricket-dashboard/storage"
)

const (
	minJerseyNumber = 1
	maxJerseyNumber = 99
)

type PlayerService interface {
	List(ctx context.Context) ([]models.Player, error)
	Create(ctx context.Context, player models.NewPlayer, avatar *storage.File) (*models.Player, error)
	Delete(ctx context.Context, id string) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

// List returns the roster ordered by name.
func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.ListOrderedByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []models.Player{}, nil
	}
	for i := range players {
		populatePlayerAvatarURL(&players[i], s.uploader)
	}
	return players, nil
}

func (s *playerService) Create(ctx context.Context, player models.NewPlayer, avatar *storage.File) (*models.Player, error) {
	player.Name = strings.TrimSpace(player.Name)
	if err := validateNewPlayer(player); err != nil {
		return nil, err
	}

	if avatar != nil {
		key, err := uploadImage(ctx, s.uploader, storage.PrefixPlayerAvatars, avatar)
		if err != nil {
			return nil, err
		}
		player.AvatarKey = &key
	}

	created, err := s.playerRepo.Create(ctx, player)
	if err != nil {
		if player.AvatarKey != nil {
			removeObject(ctx, s.uploader, *player.AvatarKey, s.logger)
		}
		if errors.Is(err, repositories.ErrPlayerInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	populatePlayerAvatarURL(created, s.uploader)
	s.logger.InfoContext(ctx, "player created", slog.String("player_id", created.ID), slog.String("name", created.Name))
	return created, nil
}

// Delete removes a player row and then, best effort, its avatar.
func (s *playerService) Delete(ctx context.Context, id string) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to get player: %w", err)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player: %w", err)
	}

	if player.AvatarKey != nil {
		removeObject(ctx, s.uploader, *player.AvatarKey, s.logger)
	}
	s.logger.InfoContext(ctx, "player deleted", slog.String("player_id", id))
	return nil
}

func validateNewPlayer(p models.NewPlayer) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: player name is required", ErrValidationFailed)
	case !p.Role.Valid():
		return fmt.Errorf("%w: unknown player role %q", ErrValidationFailed, p.Role)
	case p.JerseyNumber != nil && (*p.JerseyNumber < minJerseyNumber || *p.JerseyNumber > maxJerseyNumber):
		return fmt.Errorf("%w: jersey number must be between %d and %d", ErrValidationFailed, minJerseyNumber, maxJerseyNumber)
	case p.BattingStyle != nil && !p.BattingStyle.Valid():
		return fmt.Errorf("%w: unknown batting style %q", ErrValidationFailed, *p.BattingStyle)
	case p.BowlingStyle != nil && !p.BowlingStyle.Valid():
		return fmt.Errorf("%w: unknown bowling style %q", ErrValidationFailed, *p.BowlingStyle)
	}
	return nil
}
