package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Dosada05/hackathon-system/live"
	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

type WinnerInput struct {
	HackathonID  int                   `json:"hackathon_id"`
	TeamID       int                   `json:"team_id"`
	EvaluationID int                   `json:"evaluation_id"`
	Position     models.WinnerPosition `json:"position"`
}

type WinnerService interface {
	AnnounceWinner(ctx context.Context, input WinnerInput) (*models.HackathonWinner, error)
	GetWinnerByID(ctx context.Context, id int) (*models.HackathonWinner, error)
	ListWinners(ctx context.Context) ([]models.HackathonWinner, error)
	UpdateWinner(ctx context.Context, id int, input WinnerInput) (*models.HackathonWinner, error)
	DeleteWinner(ctx context.Context, id int) error
}

type winnerService struct {
	winnerRepo    repositories.WinnerRepository
	hackathonRepo repositories.HackathonRepository
	hub           *live.Hub
}

func NewWinnerService(
	winnerRepo repositories.WinnerRepository,
	hackathonRepo repositories.HackathonRepository,
	hub *live.Hub,
) WinnerService {
	return &winnerService{
		winnerRepo:    winnerRepo,
		hackathonRepo: hackathonRepo,
		hub:           hub,
	}
}

func (s *winnerService) AnnounceWinner(ctx context.Context, input WinnerInput) (*models.HackathonWinner, error) {
	if !input.Position.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, input.Position)
	}

	winner := &models.HackathonWinner{
		HackathonID:  input.HackathonID,
		TeamID:       input.TeamID,
		EvaluationID: input.EvaluationID,
		Position:     input.Position,
	}

	if err := s.winnerRepo.Create(ctx, winner); err != nil {
		switch {
		case errors.Is(err, repositories.ErrWinnerPositionConflict):
			return nil, ErrWinnerPositionConflict
		case errors.Is(err, repositories.ErrWinnerRefInvalid):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create winner record: %w", err)
	}

	// Keep the hackathon's embedded podium references in sync.
	if err := s.syncPodium(ctx, winner); err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(strconv.Itoa(winner.HackathonID), live.Message{
			Type: live.EventWinnersAnnounced,
			Payload: map[string]interface{}{
				"team_id":  winner.TeamID,
				"position": winner.Position,
			},
		})
	}

	return winner, nil
}

func (s *winnerService) syncPodium(ctx context.Context, winner *models.HackathonWinner) error {
	hackathon, err := s.hackathonRepo.GetByID(ctx, winner.HackathonID)
	if err != nil {
		if errors.Is(err, repositories.ErrHackathonNotFound) {
			return ErrHackathonNotFound
		}
		return fmt.Errorf("failed to get hackathon %d: %w", winner.HackathonID, err)
	}

	first := hackathon.FirstPlaceTeamID
	second := hackathon.SecondPlaceTeamID
	third := hackathon.ThirdPlaceTeamID
	teamID := winner.TeamID
	switch winner.Position {
	case models.PositionWinner:
		first = &teamID
	case models.Position1stRunnerUp:
		second = &teamID
	case models.Position2ndRunnerUp:
		third = &teamID
	}

	if err := s.hackathonRepo.SetWinners(ctx, winner.HackathonID, first, second, third); err != nil {
		return fmt.Errorf("failed to update podium of hackathon %d: %w", winner.HackathonID, err)
	}
	return nil
}

func (s *winnerService) GetWinnerByID(ctx context.Context, id int) (*models.HackathonWinner, error) {
	winner, err := s.winnerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWinnerNotFound) {
			return nil, ErrWinnerNotFound
		}
		return nil, fmt.Errorf("failed to get winner %d: %w", id, err)
	}
	return winner, nil
}

func (s *winnerService) ListWinners(ctx context.Context) ([]models.HackathonWinner, error) {
	winners, err := s.winnerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list winners: %w", err)
	}
	return winners, nil
}

func (s *winnerService) UpdateWinner(ctx context.Context, id int, input WinnerInput) (*models.HackathonWinner, error) {
	if !input.Position.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, input.Position)
	}

	winner := &models.HackathonWinner{
		ID:           id,
		HackathonID:  input.HackathonID,
		TeamID:       input.TeamID,
		EvaluationID: input.EvaluationID,
		Position:     input.Position,
	}

	if err := s.winnerRepo.Update(ctx, winner); err != nil {
		switch {
		case errors.Is(err, repositories.ErrWinnerNotFound):
			return nil, ErrWinnerNotFound
		case errors.Is(err, repositories.ErrWinnerPositionConflict):
			return nil, ErrWinnerPositionConflict
		case errors.Is(err, repositories.ErrWinnerRefInvalid):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update winner %d: %w", id, err)
	}

	if err := s.syncPodium(ctx, winner); err != nil {
		return nil, err
	}

	return winner, nil
}

func (s *winnerService) DeleteWinner(ctx context.Context, id int) error {
	if err := s.winnerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrWinnerNotFound) {
			return ErrWinnerNotFound
		}
		return fmt.Errorf("failed to delete winner %d: %w", id, err)
	}
	return nil
}
