package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvaluationRepo struct {
	nextID      int
	evaluations map[int]*models.Evaluation
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{nextID: 1, evaluations: make(map[int]*models.Evaluation)}
}

func (f *fakeEvaluationRepo) Create(_ context.Context, evaluation *models.Evaluation) error {
	for _, e := range f.evaluations {
		if e.TeamID == evaluation.TeamID && e.HackathonID == evaluation.HackathonID {
			return repositories.ErrEvaluationAlreadyRecorded
		}
	}
	evaluation.ID = f.nextID
	f.nextID++
	evaluation.CreatedAt = time.Now()
	stored := *evaluation
	f.evaluations[stored.ID] = &stored
	return nil
}

func (f *fakeEvaluationRepo) GetByID(_ context.Context, id int) (*models.Evaluation, error) {
	e, ok := f.evaluations[id]
	if !ok {
		return nil, repositories.ErrEvaluationNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEvaluationRepo) List(_ context.Context) ([]models.Evaluation, error) {
	evaluations := make([]models.Evaluation, 0, len(f.evaluations))
	for _, e := range f.evaluations {
		evaluations = append(evaluations, *e)
	}
	return evaluations, nil
}

func (f *fakeEvaluationRepo) Update(_ context.Context, evaluation *models.Evaluation) error {
	if _, ok := f.evaluations[evaluation.ID]; !ok {
		return repositories.ErrEvaluationNotFound
	}
	stored := *evaluation
	f.evaluations[stored.ID] = &stored
	return nil
}

func (f *fakeEvaluationRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.evaluations[id]; !ok {
		return repositories.ErrEvaluationNotFound
	}
	delete(f.evaluations, id)
	return nil
}

func validEvaluationInput() EvaluationInput {
	return EvaluationInput{
		TeamID:      1,
		HackathonID: 1,
		QuestionID:  1,

		ProblemUnderstanding:  8,
		DesignApproach:        7,
		ImplementationClarity: 9,
		CodeOrganizing:        6,
		CodeReadability:       7,
		Completion:            8,
		Presentation:          5,
		Usability:             6,
	}
}

func TestEvaluationServiceSubmitEvaluation(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the total server-side", func(t *testing.T) {
		svc := NewEvaluationService(newFakeEvaluationRepo(), nil)

		evaluation, err := svc.SubmitEvaluation(ctx, validEvaluationInput())
		require.NoError(t, err)
		assert.Equal(t, 56, evaluation.TotalScore)
		assert.Equal(t, evaluation.Sum(), evaluation.TotalScore)
	})

	t.Run("rejects missing references", func(t *testing.T) {
		svc := NewEvaluationService(newFakeEvaluationRepo(), nil)

		input := validEvaluationInput()
		input.TeamID = 0
		_, err := svc.SubmitEvaluation(ctx, input)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects negative scores", func(t *testing.T) {
		svc := NewEvaluationService(newFakeEvaluationRepo(), nil)

		input := validEvaluationInput()
		input.Usability = -1
		_, err := svc.SubmitEvaluation(ctx, input)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("one evaluation per team and hackathon", func(t *testing.T) {
		svc := NewEvaluationService(newFakeEvaluationRepo(), nil)

		_, err := svc.SubmitEvaluation(ctx, validEvaluationInput())
		require.NoError(t, err)

		_, err = svc.SubmitEvaluation(ctx, validEvaluationInput())
		assert.ErrorIs(t, err, ErrEvaluationConflict)
	})
}

func TestEvaluationServiceUpdateEvaluation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEvaluationRepo()
	svc := NewEvaluationService(repo, nil)

	created, err := svc.SubmitEvaluation(ctx, validEvaluationInput())
	require.NoError(t, err)

	input := validEvaluationInput()
	input.Completion = 10
	updated, err := svc.UpdateEvaluation(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 58, updated.TotalScore)

	_, err = svc.UpdateEvaluation(ctx, 999, validEvaluationInput())
	assert.ErrorIs(t, err, ErrEvaluationNotFound)
}

func TestEvaluationServiceDeleteEvaluation(t *testing.T) {
	ctx := context.Background()
	svc := NewEvaluationService(newFakeEvaluationRepo(), nil)

	created, err := svc.SubmitEvaluation(ctx, validEvaluationInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvaluation(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteEvaluation(ctx, created.ID), ErrEvaluationNotFound)
}
