package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
	"golang.org/x/sync/errgroup"
)

type UserService interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// SetRole overwrites the user's role. Idempotent: assigning the role a
	// user already has changes nothing and still succeeds.
	SetRole(ctx context.Context, userID int, role models.Role) (*models.User, error)
	// Suspend removes the user record entirely.
	Suspend(ctx context.Context, userID int) error
	// ListAvailableParticipants computes participants minus the union of
	// all teams' member sets, recomputed on every call.
	ListAvailableParticipants(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *userService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) SetRole(ctx context.Context, userID int, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	if user.Role != role {
		if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to update role of user %d: %w", userID, err)
		}
		// Membership is left untouched on purpose: a participant promoted
		// to coordinator keeps their team reference. Log it so the
		// dangling membership is at least visible.
		if user.TeamID != nil {
			s.logger.Warn("role changed for a user still assigned to a team",
				slog.Int("user_id", userID),
				slog.Int("team_id", *user.TeamID),
				slog.String("new_role", string(role)))
		}
		user.Role = role
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) Suspend(ctx context.Context, userID int) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	return nil
}

func (s *userService) ListAvailableParticipants(ctx context.Context) ([]models.User, error) {
	var participants []models.User
	var assignedIDs []int

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		participants, err = s.userRepo.ListByRole(gCtx, models.RoleParticipant)
		if err != nil {
			return fmt.Errorf("failed to list participants: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		assignedIDs, err = s.userRepo.ListAssignedIDs(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list assigned member ids: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	assigned := make(map[int]struct{}, len(assignedIDs))
	for _, id := range assignedIDs {
		assigned[id] = struct{}{}
	}

	available := make([]models.User, 0, len(participants))
	for _, p := range participants {
		if _, taken := assigned[p.ID]; taken {
			continue
		}
		p.PasswordHash = ""
		available = append(available, p)
	}
	return available, nil
}
