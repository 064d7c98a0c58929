package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

type CollegeService interface {
	ListStates(ctx context.Context) ([]string, error)
	ListCollegesByState(ctx context.Context, state string) ([]models.College, error)
	AddCollege(ctx context.Context, college *models.College) error
}

type collegeService struct {
	collegeRepo repositories.CollegeRepository
}

func NewCollegeService(collegeRepo repositories.CollegeRepository) CollegeService {
	return &collegeService{collegeRepo: collegeRepo}
}

func (s *collegeService) ListStates(ctx context.Context) ([]string, error) {
	states, err := s.collegeRepo.ListStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return states, nil
}

func (s *collegeService) ListCollegesByState(ctx context.Context, state string) ([]models.College, error) {
	colleges, err := s.collegeRepo.ListByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list colleges for state %q: %w", state, err)
	}
	return colleges, nil
}

func (s *collegeService) AddCollege(ctx context.Context, college *models.College) error {
	if college.Name == "" || college.State == "" {
		return fmt.Errorf("%w: college name and state are required", ErrValidationFailed)
	}
	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return fmt.Errorf("failed to add college: %w", err)
	}
	return nil
}
