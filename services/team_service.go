package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Dosada05/hackathon-system/live"
	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
	"github.com/Dosada05/hackathon-system/storage"
)

type CreateTeamInput struct {
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	QuestionID *int   `json:"question_id"`
	RepoURL    string `json:"repo_url"`
	MemberIDs  []int  `json:"member_ids"`

	// Set from the authenticated request, never from the body.
	CoordinatorID int `json:"-"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.TeamSummary, error)
	// GetTeamForUser returns the team whose member set contains the user.
	// ErrTeamNotAssigned is an expected outcome, not a system failure.
	GetTeamForUser(ctx context.Context, userID int) (*models.Team, error)
	SuspendTeam(ctx context.Context, teamID int) error
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo     repositories.TeamRepository
	userRepo     repositories.UserRepository
	questionRepo repositories.QuestionRepository
	uploader     storage.FileUploader
	hub          *live.Hub
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	questionRepo repositories.QuestionRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
) TeamService {
	return &teamService{
		teamRepo:     teamRepo,
		userRepo:     userRepo,
		questionRepo: questionRepo,
		uploader:     uploader,
		hub:          hub,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if input.Capacity < 1 {
		return nil, ErrTeamInvalidCapacity
	}
	if len(input.MemberIDs) > input.Capacity {
		return nil, fmt.Errorf("%w: %d members for capacity %d",
			ErrTeamTooManyMembers, len(input.MemberIDs), input.Capacity)
	}

	if input.QuestionID != nil {
		if _, err := s.questionRepo.GetByID(ctx, *input.QuestionID); err != nil {
			if errors.Is(err, repositories.ErrQuestionNotFound) {
				return nil, ErrQuestionNotFound
			}
			return nil, fmt.Errorf("failed to resolve question %d: %w", *input.QuestionID, err)
		}
	}

	team := &models.Team{
		Name:          input.Name,
		Capacity:      input.Capacity,
		CoordinatorID: input.CoordinatorID,
		QuestionID:    input.QuestionID,
		RepoURL:       input.RepoURL,
		Status:        models.TeamStatusPending,
	}

	// Duplicate-name, member-freedom and capacity invariants are enforced
	// inside one store transaction with member rows locked.
	if err := s.teamRepo.CreateWithMembers(ctx, team, input.MemberIDs); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamQuestionInvalid):
			return nil, ErrQuestionNotFound
		case errors.Is(err, repositories.ErrTeamMemberNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrTeamMemberAlreadyInTeam):
			return nil, fmt.Errorf("%w: %v", ErrMemberAlreadyAssigned, err)
		case errors.Is(err, repositories.ErrTeamMemberNotParticipant):
			return nil, fmt.Errorf("%w: %v", ErrMemberNotParticipant, err)
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	members, err := s.userRepo.ListByTeamID(ctx, team.ID)
	if err == nil {
		for i := range members {
			members[i].PasswordHash = ""
		}
		team.Members = members
	}

	s.announceTeam(team)

	return team, nil
}

func (s *teamService) announceTeam(team *models.Team) {
	if s.hub == nil || team.HackathonID == nil {
		return
	}
	s.hub.BroadcastToRoom(strconv.Itoa(*team.HackathonID), live.Message{
		Type:    live.EventTeamCreated,
		Payload: map[string]interface{}{"team_id": team.ID, "team_name": team.Name},
	})
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.TeamSummary, error) {
	summaries, err := s.teamRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return summaries, nil
}

func (s *teamService) GetTeamForUser(ctx context.Context, userID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByMemberID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotAssigned
		}
		return nil, fmt.Errorf("failed to get team for user %d: %w", userID, err)
	}

	members, err := s.userRepo.ListByTeamID(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %d: %w", team.ID, err)
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	team.Members = members

	if team.QuestionID != nil {
		question, err := s.questionRepo.GetByID(ctx, *team.QuestionID)
		if err != nil && !errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, fmt.Errorf("failed to resolve question %d: %w", *team.QuestionID, err)
		}
		team.Question = question
	}

	if s.uploader != nil && team.LogoKey != nil {
		url := s.uploader.GetPublicURL(*team.LogoKey)
		team.LogoURL = &url
	}

	return team, nil
}

func (s *teamService) SuspendTeam(ctx context.Context, teamID int) error {
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", teamID, err)
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrUploadsNotConfigured
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	key := fmt.Sprintf("teams/%d/logo", teamID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store logo key for team %d: %w", teamID, err)
	}

	team.LogoKey = &result.Key
	team.LogoURL = &result.Location
	return team, nil
}
