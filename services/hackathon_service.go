package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/hackathon-system/live"
	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
	"github.com/Dosada05/hackathon-system/storage"
)

type CreateHackathonInput struct {
	Title                string                 `json:"title"`
	StartDate            time.Time              `json:"start_date"`
	EndDate              time.Time              `json:"end_date"`
	RegistrationDeadline time.Time              `json:"registration_deadline"`
	Venue                string                 `json:"venue"`
	Status               models.HackathonStatus `json:"status"`
}

// OpenHackathonConflictError carries the hackathon that blocked creation,
// so the client can show which event already exists.
type OpenHackathonConflictError struct {
	Existing *models.Hackathon
}

func (e *OpenHackathonConflictError) Error() string {
	return ErrOpenHackathonExists.Error()
}

func (e *OpenHackathonConflictError) Unwrap() error {
	return ErrOpenHackathonExists
}

type HackathonService interface {
	// HasOpenHackathon reports whether any event still counts as open:
	// upcoming or active, or not completed with its end date in the future.
	HasOpenHackathon(ctx context.Context, now time.Time) (bool, *models.Hackathon, error)
	CreateHackathon(ctx context.Context, input CreateHackathonInput) (*models.Hackathon, error)
	ListHackathons(ctx context.Context) ([]models.Hackathon, error)
	GetWinnerBoards(ctx context.Context) ([]models.WinnerBoard, error)
	UploadBanner(ctx context.Context, hackathonID int, contentType string, file io.Reader) (*models.Hackathon, error)
	// AutoUpdateStatusesByDates advances upcoming events past their start
	// date to active, and active events past their end date to completed.
	AutoUpdateStatusesByDates(ctx context.Context) error
}

type hackathonService struct {
	hackathonRepo repositories.HackathonRepository
	teamRepo      repositories.TeamRepository
	uploader      storage.FileUploader
	hub           *live.Hub
	logger        *slog.Logger
	now           func() time.Time
}

func NewHackathonService(
	hackathonRepo repositories.HackathonRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
	logger *slog.Logger,
) HackathonService {
	return &hackathonService{
		hackathonRepo: hackathonRepo,
		teamRepo:      teamRepo,
		uploader:      uploader,
		hub:           hub,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *hackathonService) HasOpenHackathon(ctx context.Context, now time.Time) (bool, *models.Hackathon, error) {
	existing, err := s.hackathonRepo.FindOpen(ctx, now)
	if err != nil {
		if errors.Is(err, repositories.ErrHackathonNotFound) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("failed to check open hackathons: %w", err)
	}
	return true, existing, nil
}

func (s *hackathonService) CreateHackathon(ctx context.Context, input CreateHackathonInput) (*models.Hackathon, error) {
	if input.Title == "" || input.Venue == "" {
		return nil, fmt.Errorf("%w: title and venue are required", ErrValidationFailed)
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrHackathonInvalidDates
	}

	status := input.Status
	if status == "" {
		status = models.HackathonStatusUpcoming
	}
	switch status {
	case models.HackathonStatusUpcoming, models.HackathonStatusActive, models.HackathonStatusCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, status)
	}

	hackathon := &models.Hackathon{
		Title:                input.Title,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		RegistrationDeadline: input.RegistrationDeadline,
		Venue:                input.Venue,
		Status:               status,
	}

	existing, err := s.hackathonRepo.CreateExclusive(ctx, hackathon, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrOpenHackathonExists) {
			return nil, &OpenHackathonConflictError{Existing: existing}
		}
		return nil, fmt.Errorf("failed to create hackathon: %w", err)
	}

	return hackathon, nil
}

func (s *hackathonService) ListHackathons(ctx context.Context) ([]models.Hackathon, error) {
	hackathons, err := s.hackathonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hackathons: %w", err)
	}

	for i := range hackathons {
		teams, err := s.teamRepo.ListByHackathonID(ctx, hackathons[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list teams of hackathon %d: %w", hackathons[i].ID, err)
		}
		hackathons[i].Teams = teams

		if s.uploader != nil && hackathons[i].BannerKey != nil {
			url := s.uploader.GetPublicURL(*hackathons[i].BannerKey)
			hackathons[i].BannerURL = &url
		}
	}

	return hackathons, nil
}

func (s *hackathonService) GetWinnerBoards(ctx context.Context) ([]models.WinnerBoard, error) {
	boards, err := s.hackathonRepo.ListWinnerBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list winner boards: %w", err)
	}
	return boards, nil
}

func (s *hackathonService) UploadBanner(ctx context.Context, hackathonID int, contentType string, file io.Reader) (*models.Hackathon, error) {
	if s.uploader == nil {
		return nil, ErrUploadsNotConfigured
	}

	hackathon, err := s.hackathonRepo.GetByID(ctx, hackathonID)
	if err != nil {
		if errors.Is(err, repositories.ErrHackathonNotFound) {
			return nil, ErrHackathonNotFound
		}
		return nil, fmt.Errorf("failed to get hackathon %d: %w", hackathonID, err)
	}

	key := fmt.Sprintf("hackathons/%d/banner", hackathonID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload hackathon banner: %w", err)
	}

	if err := s.hackathonRepo.UpdateBannerKey(ctx, hackathonID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store banner key for hackathon %d: %w", hackathonID, err)
	}

	hackathon.BannerKey = &result.Key
	hackathon.BannerURL = &result.Location
	return hackathon, nil
}

func (s *hackathonService) AutoUpdateStatusesByDates(ctx context.Context) error {
	now := s.now()

	due, err := s.hackathonRepo.ListDueForStatusUpdate(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list hackathons due for status update: %w", err)
	}

	for _, hackathon := range due {
		var next models.HackathonStatus
		switch {
		case hackathon.Status == models.HackathonStatusActive && hackathon.EndDate.Before(now):
			next = models.HackathonStatusCompleted
		case hackathon.Status == models.HackathonStatusUpcoming && !hackathon.StartDate.After(now):
			next = models.HackathonStatusActive
		default:
			continue
		}

		if err := s.hackathonRepo.UpdateStatus(ctx, nil, hackathon.ID, next); err != nil {
			s.logger.Error("failed to auto-update hackathon status",
				slog.Int("hackathon_id", hackathon.ID),
				slog.String("to", string(next)),
				slog.Any("error", err))
			continue
		}

		s.logger.Info("hackathon status advanced",
			slog.Int("hackathon_id", hackathon.ID),
			slog.String("from", string(hackathon.Status)),
			slog.String("to", string(next)))

		if s.hub != nil {
			s.hub.BroadcastToRoom(strconv.Itoa(hackathon.ID), live.Message{
				Type:    live.EventStatusChanged,
				Payload: map[string]interface{}{"hackathon_id": hackathon.ID, "status": next},
			})
		}
	}

	return nil
}
