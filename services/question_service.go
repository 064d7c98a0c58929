package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

type QuestionInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Domain      string             `json:"domain"`
	Criteria    []models.Criterion `json:"criteria"`
}

type QuestionService interface {
	CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error)
	GetQuestionByID(ctx context.Context, id int) (*models.Question, error)
	ListQuestions(ctx context.Context) ([]models.Question, error)
	UpdateQuestion(ctx context.Context, id int, input QuestionInput) (*models.Question, error)
	// DeleteQuestion blocks with ErrQuestionInUse while any team still
	// references the question.
	DeleteQuestion(ctx context.Context, id int) error
	// DomainsAndQuestions groups questions by their domain label,
	// case-sensitive, ordered by first appearance of each domain.
	DomainsAndQuestions(ctx context.Context) ([]models.DomainGroup, error)
}

type questionService struct {
	questionRepo repositories.QuestionRepository
}

func NewQuestionService(questionRepo repositories.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) CreateQuestion(ctx context.Context, input QuestionInput) (*models.Question, error) {
	if input.Title == "" || input.Domain == "" {
		return nil, fmt.Errorf("%w: title and domain are required", ErrValidationFailed)
	}
	if err := validateCriteria(input.Criteria); err != nil {
		return nil, err
	}

	question := &models.Question{
		Title:       input.Title,
		Description: input.Description,
		Domain:      input.Domain,
		Criteria:    input.Criteria,
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

func (s *questionService) GetQuestionByID(ctx context.Context, id int) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}
	return question, nil
}

func (s *questionService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, id int, input QuestionInput) (*models.Question, error) {
	if input.Title == "" || input.Domain == "" {
		return nil, fmt.Errorf("%w: title and domain are required", ErrValidationFailed)
	}
	if err := validateCriteria(input.Criteria); err != nil {
		return nil, err
	}

	question := &models.Question{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Domain:      input.Domain,
		Criteria:    input.Criteria,
	}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to update question %d: %w", id, err)
	}
	return question, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrQuestionNotFound):
			return ErrQuestionNotFound
		case errors.Is(err, repositories.ErrQuestionInUse):
			return ErrQuestionInUse
		}
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return nil
}

func (s *questionService) DomainsAndQuestions(ctx context.Context) ([]models.DomainGroup, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	// Domain is a free-text key: grouping is by exact string equality, so
	// differently cased labels form distinct groups.
	index := make(map[string]int)
	groups := make([]models.DomainGroup, 0)
	for _, q := range questions {
		i, ok := index[q.Domain]
		if !ok {
			i = len(groups)
			index[q.Domain] = i
			groups = append(groups, models.DomainGroup{Domain: q.Domain, Questions: []models.Question{}})
		}
		groups[i].Questions = append(groups[i].Questions, q)
	}
	return groups, nil
}

func validateCriteria(criteria []models.Criterion) error {
	for _, c := range criteria {
		if c.Name == "" {
			return fmt.Errorf("%w: criterion name is required", ErrValidationFailed)
		}
		if c.MaxScore < 1 {
			return fmt.Errorf("%w: criterion %q max score must be positive", ErrValidationFailed, c.Name)
		}
	}
	return nil
}
