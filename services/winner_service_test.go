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

type fakeWinnerRepo struct {
	nextID  int
	winners map[int]*models.HackathonWinner
}

func newFakeWinnerRepo() *fakeWinnerRepo {
	return &fakeWinnerRepo{nextID: 1, winners: make(map[int]*models.HackathonWinner)}
}

func (f *fakeWinnerRepo) Create(_ context.Context, winner *models.HackathonWinner) error {
	for _, w := range f.winners {
		if w.HackathonID == winner.HackathonID && w.Position == winner.Position {
			return repositories.ErrWinnerPositionConflict
		}
	}
	winner.ID = f.nextID
	f.nextID++
	winner.CreatedAt = time.Now()
	stored := *winner
	f.winners[stored.ID] = &stored
	return nil
}

func (f *fakeWinnerRepo) GetByID(_ context.Context, id int) (*models.HackathonWinner, error) {
	w, ok := f.winners[id]
	if !ok {
		return nil, repositories.ErrWinnerNotFound
	}
	copied := *w
	return &copied, nil
}

func (f *fakeWinnerRepo) List(_ context.Context) ([]models.HackathonWinner, error) {
	winners := make([]models.HackathonWinner, 0, len(f.winners))
	for _, w := range f.winners {
		winners = append(winners, *w)
	}
	return winners, nil
}

func (f *fakeWinnerRepo) Update(_ context.Context, winner *models.HackathonWinner) error {
	if _, ok := f.winners[winner.ID]; !ok {
		return repositories.ErrWinnerNotFound
	}
	stored := *winner
	f.winners[stored.ID] = &stored
	return nil
}

func (f *fakeWinnerRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.winners[id]; !ok {
		return repositories.ErrWinnerNotFound
	}
	delete(f.winners, id)
	return nil
}

func seedCompletedHackathon(t *testing.T, repo *fakeHackathonRepo) *models.Hackathon {
	t.Helper()
	now := time.Now()
	hackathon := &models.Hackathon{
		Title:     "Past Event",
		StartDate: now.Add(-72 * time.Hour),
		EndDate:   now.Add(-24 * time.Hour),
		Status:    models.HackathonStatusCompleted,
	}
	existing, err := repo.CreateExclusive(context.Background(), hackathon, now)
	require.NoError(t, err)
	require.Nil(t, existing)
	return hackathon
}

func TestWinnerServiceAnnounceWinner(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown position", func(t *testing.T) {
		svc := NewWinnerService(newFakeWinnerRepo(), newFakeHackathonRepo(), nil)

		_, err := svc.AnnounceWinner(ctx, WinnerInput{HackathonID: 1, TeamID: 1, EvaluationID: 1, Position: "4th"})
		assert.ErrorIs(t, err, ErrInvalidPosition)
	})

	t.Run("records winner and syncs the podium", func(t *testing.T) {
		winnerRepo := newFakeWinnerRepo()
		hackathonRepo := newFakeHackathonRepo()
		hackathon := seedCompletedHackathon(t, hackathonRepo)
		svc := NewWinnerService(winnerRepo, hackathonRepo, nil)

		winner, err := svc.AnnounceWinner(ctx, WinnerInput{
			HackathonID:  hackathon.ID,
			TeamID:       5,
			EvaluationID: 9,
			Position:     models.PositionWinner,
		})
		require.NoError(t, err)
		assert.NotZero(t, winner.ID)

		stored, err := hackathonRepo.GetByID(ctx, hackathon.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.FirstPlaceTeamID)
		assert.Equal(t, 5, *stored.FirstPlaceTeamID)
		assert.Nil(t, stored.SecondPlaceTeamID)
	})

	t.Run("position can only be awarded once per hackathon", func(t *testing.T) {
		winnerRepo := newFakeWinnerRepo()
		hackathonRepo := newFakeHackathonRepo()
		hackathon := seedCompletedHackathon(t, hackathonRepo)
		svc := NewWinnerService(winnerRepo, hackathonRepo, nil)

		_, err := svc.AnnounceWinner(ctx, WinnerInput{
			HackathonID: hackathon.ID, TeamID: 5, EvaluationID: 9, Position: models.Position1stRunnerUp,
		})
		require.NoError(t, err)

		_, err = svc.AnnounceWinner(ctx, WinnerInput{
			HackathonID: hackathon.ID, TeamID: 6, EvaluationID: 10, Position: models.Position1stRunnerUp,
		})
		assert.ErrorIs(t, err, ErrWinnerPositionConflict)
	})
}

func TestWinnerServiceUpdateWinner(t *testing.T) {
	ctx := context.Background()
	winnerRepo := newFakeWinnerRepo()
	hackathonRepo := newFakeHackathonRepo()
	hackathon := seedCompletedHackathon(t, hackathonRepo)
	svc := NewWinnerService(winnerRepo, hackathonRepo, nil)

	created, err := svc.AnnounceWinner(ctx, WinnerInput{
		HackathonID: hackathon.ID, TeamID: 5, EvaluationID: 9, Position: models.Position2ndRunnerUp,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateWinner(ctx, created.ID, WinnerInput{
		HackathonID: hackathon.ID, TeamID: 8, EvaluationID: 9, Position: models.Position2ndRunnerUp,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.TeamID)

	stored, err := hackathonRepo.GetByID(ctx, hackathon.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ThirdPlaceTeamID)
	assert.Equal(t, 8, *stored.ThirdPlaceTeamID)
}

func TestWinnerServiceDeleteWinner(t *testing.T) {
	ctx := context.Background()
	winnerRepo := newFakeWinnerRepo()
	hackathonRepo := newFakeHackathonRepo()
	hackathon := seedCompletedHackathon(t, hackathonRepo)
	svc := NewWinnerService(winnerRepo, hackathonRepo, nil)

	created, err := svc.AnnounceWinner(ctx, WinnerInput{
		HackathonID: hackathon.ID, TeamID: 5, EvaluationID: 9, Position: models.PositionWinner,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWinner(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteWinner(ctx, created.ID), ErrWinnerNotFound)
}
