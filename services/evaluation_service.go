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

type EvaluationInput struct {
	TeamID      int `json:"team_id"`
	HackathonID int `json:"hackathon_id"`
	QuestionID  int `json:"question_id"`

	ProblemUnderstanding  int `json:"problem_understanding"`
	DesignApproach        int `json:"design_approach"`
	ImplementationClarity int `json:"implementation_clarity"`
	CodeOrganizing        int `json:"code_organizing"`
	CodeReadability       int `json:"code_readability"`
	Completion            int `json:"completion"`
	Presentation          int `json:"presentation"`
	Usability             int `json:"usability"`
}

type EvaluationService interface {
	SubmitEvaluation(ctx context.Context, input EvaluationInput) (*models.Evaluation, error)
	GetEvaluationByID(ctx context.Context, id int) (*models.Evaluation, error)
	ListEvaluations(ctx context.Context) ([]models.Evaluation, error)
	UpdateEvaluation(ctx context.Context, id int, input EvaluationInput) (*models.Evaluation, error)
	DeleteEvaluation(ctx context.Context, id int) error
}

type evaluationService struct {
	evaluationRepo repositories.EvaluationRepository
	hub            *live.Hub
}

func NewEvaluationService(evaluationRepo repositories.EvaluationRepository, hub *live.Hub) EvaluationService {
	return &evaluationService{
		evaluationRepo: evaluationRepo,
		hub:            hub,
	}
}

func (s *evaluationService) SubmitEvaluation(ctx context.Context, input EvaluationInput) (*models.Evaluation, error) {
	evaluation, err := buildEvaluation(input)
	if err != nil {
		return nil, err
	}

	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEvaluationAlreadyRecorded):
			return nil, ErrEvaluationConflict
		case errors.Is(err, repositories.ErrEvaluationTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrEvaluationRefInvalid):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create evaluation: %w", err)
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(strconv.Itoa(evaluation.HackathonID), live.Message{
			Type: live.EventEvaluationSubmitted,
			Payload: map[string]interface{}{
				"team_id":     evaluation.TeamID,
				"total_score": evaluation.TotalScore,
			},
		})
	}

	return evaluation, nil
}

func (s *evaluationService) GetEvaluationByID(ctx context.Context, id int) (*models.Evaluation, error) {
	evaluation, err := s.evaluationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEvaluationNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation %d: %w", id, err)
	}
	return evaluation, nil
}

func (s *evaluationService) ListEvaluations(ctx context.Context) ([]models.Evaluation, error) {
	evaluations, err := s.evaluationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evaluations, nil
}

func (s *evaluationService) UpdateEvaluation(ctx context.Context, id int, input EvaluationInput) (*models.Evaluation, error) {
	evaluation, err := buildEvaluation(input)
	if err != nil {
		return nil, err
	}
	evaluation.ID = id

	if err := s.evaluationRepo.Update(ctx, evaluation); err != nil {
		if errors.Is(err, repositories.ErrEvaluationNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to update evaluation %d: %w", id, err)
	}
	return evaluation, nil
}

func (s *evaluationService) DeleteEvaluation(ctx context.Context, id int) error {
	if err := s.evaluationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEvaluationNotFound) {
			return ErrEvaluationNotFound
		}
		return fmt.Errorf("failed to delete evaluation %d: %w", id, err)
	}
	return nil
}

func buildEvaluation(input EvaluationInput) (*models.Evaluation, error) {
	if input.TeamID <= 0 || input.HackathonID <= 0 || input.QuestionID <= 0 {
		return nil, fmt.Errorf("%w: team, hackathon and question references are required", ErrValidationFailed)
	}

	evaluation := &models.Evaluation{
		TeamID:                input.TeamID,
		HackathonID:           input.HackathonID,
		QuestionID:            input.QuestionID,
		ProblemUnderstanding:  input.ProblemUnderstanding,
		DesignApproach:        input.DesignApproach,
		ImplementationClarity: input.ImplementationClarity,
		CodeOrganizing:        input.CodeOrganizing,
		CodeReadability:       input.CodeReadability,
		Completion:            input.Completion,
		Presentation:          input.Presentation,
		Usability:             input.Usability,
	}

	for _, score := range []int{
		input.ProblemUnderstanding, input.DesignApproach, input.ImplementationClarity,
		input.CodeOrganizing, input.CodeReadability, input.Completion,
		input.Presentation, input.Usability,
	} {
		if score < 0 {
			return nil, fmt.Errorf("%w: scores must not be negative", ErrValidationFailed)
		}
	}

	// The total is always derived server-side, never taken from the client.
	evaluation.TotalScore = evaluation.Sum()
	return evaluation, nil
}
