package services

import (
	"context"
	"testing"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionServiceCreateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("requires title and domain", func(t *testing.T) {
		svc := NewQuestionService(newFakeQuestionRepo())

		_, err := svc.CreateQuestion(ctx, QuestionInput{Title: "Traffic flow"})
		assert.ErrorIs(t, err, ErrValidationFailed)

		_, err = svc.CreateQuestion(ctx, QuestionInput{Domain: "Transport"})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects invalid criteria", func(t *testing.T) {
		svc := NewQuestionService(newFakeQuestionRepo())

		_, err := svc.CreateQuestion(ctx, QuestionInput{
			Title:    "Traffic flow",
			Domain:   "Transport",
			Criteria: []models.Criterion{{Name: "", MaxScore: 10}},
		})
		assert.ErrorIs(t, err, ErrValidationFailed)

		_, err = svc.CreateQuestion(ctx, QuestionInput{
			Title:    "Traffic flow",
			Domain:   "Transport",
			Criteria: []models.Criterion{{Name: "Novelty", MaxScore: 0}},
		})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("stores question with criteria", func(t *testing.T) {
		repo := newFakeQuestionRepo()
		svc := NewQuestionService(repo)

		question, err := svc.CreateQuestion(ctx, QuestionInput{
			Title:  "Traffic flow",
			Domain: "Transport",
			Criteria: []models.Criterion{
				{Name: "Novelty", MaxScore: 10},
				{Name: "Feasibility", MaxScore: 20},
			},
		})
		require.NoError(t, err)
		assert.NotZero(t, question.ID)
		assert.Len(t, question.Criteria, 2)
	})
}

func TestQuestionServiceDeleteQuestion(t *testing.T) {
	ctx := context.Background()
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)

	question, err := svc.CreateQuestion(ctx, QuestionInput{Title: "Traffic flow", Domain: "Transport"})
	require.NoError(t, err)

	t.Run("blocked while a team references it", func(t *testing.T) {
		repo.inUse[question.ID] = true
		assert.ErrorIs(t, svc.DeleteQuestion(ctx, question.ID), ErrQuestionInUse)
	})

	t.Run("allowed once unreferenced", func(t *testing.T) {
		repo.inUse[question.ID] = false
		require.NoError(t, svc.DeleteQuestion(ctx, question.ID))
		assert.ErrorIs(t, svc.DeleteQuestion(ctx, question.ID), ErrQuestionNotFound)
	})
}

func TestQuestionServiceDomainsAndQuestions(t *testing.T) {
	ctx := context.Background()
	repo := newFakeQuestionRepo()
	svc := NewQuestionService(repo)

	seed := []QuestionInput{
		{Title: "Traffic flow", Domain: "Transport"},
		{Title: "Crop yield", Domain: "Agriculture"},
		{Title: "Smart parking", Domain: "Transport"},
		{Title: "Soil sensing", Domain: "agriculture"}, // distinct from "Agriculture"
	}
	for _, input := range seed {
		_, err := svc.CreateQuestion(ctx, input)
		require.NoError(t, err)
	}

	groups, err := svc.DomainsAndQuestions(ctx)
	require.NoError(t, err)

	// Groups appear in first-appearance order and grouping is
	// case-sensitive.
	require.Len(t, groups, 3)
	assert.Equal(t, "Transport", groups[0].Domain)
	assert.Equal(t, "Agriculture", groups[1].Domain)
	assert.Equal(t, "agriculture", groups[2].Domain)

	assert.Len(t, groups[0].Questions, 2)
	assert.Equal(t, "Traffic flow", groups[0].Questions[0].Title)
	assert.Equal(t, "Smart parking", groups[0].Questions[1].Title)
	assert.Len(t, groups[1].Questions, 1)
	assert.Len(t, groups[2].Questions, 1)
}
