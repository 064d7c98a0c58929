package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHackathonService(repo *fakeHackathonRepo, now time.Time) *hackathonService {
	userRepo := newFakeUserRepo()
	svc := NewHackathonService(repo, newFakeTeamRepo(userRepo), nil, nil, testLogger()).(*hackathonService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestHackathonServiceCreateHackathon(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	validInput := func() CreateHackathonInput {
		return CreateHackathonInput{
			Title:                "Smart India Hackathon",
			StartDate:            now.Add(24 * time.Hour),
			EndDate:              now.Add(72 * time.Hour),
			RegistrationDeadline: now.Add(12 * time.Hour),
			Venue:                "Main Auditorium",
		}
	}

	t.Run("creates with default upcoming status", func(t *testing.T) {
		svc := newTestHackathonService(newFakeHackathonRepo(), now)

		hackathon, err := svc.CreateHackathon(ctx, validInput())
		require.NoError(t, err)
		assert.NotZero(t, hackathon.ID)
		assert.Equal(t, models.HackathonStatusUpcoming, hackathon.Status)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		svc := newTestHackathonService(newFakeHackathonRepo(), now)

		input := validInput()
		input.Title = ""
		_, err := svc.CreateHackathon(ctx, input)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		svc := newTestHackathonService(newFakeHackathonRepo(), now)

		input := validInput()
		input.EndDate = input.StartDate.Add(-time.Hour)
		_, err := svc.CreateHackathon(ctx, input)
		assert.ErrorIs(t, err, ErrHackathonInvalidDates)
	})

	t.Run("second open hackathon is refused with the existing one attached", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTestHackathonService(repo, now)

		first, err := svc.CreateHackathon(ctx, validInput())
		require.NoError(t, err)

		input := validInput()
		input.Title = "Another Event"
		_, err = svc.CreateHackathon(ctx, input)
		require.ErrorIs(t, err, ErrOpenHackathonExists)

		var conflict *OpenHackathonConflictError
		require.ErrorAs(t, err, &conflict)
		require.NotNil(t, conflict.Existing)
		assert.Equal(t, first.ID, conflict.Existing.ID)
	})

	t.Run("creation allowed again once the previous event completed", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTestHackathonService(repo, now)

		first, err := svc.CreateHackathon(ctx, validInput())
		require.NoError(t, err)

		require.NoError(t, repo.UpdateStatus(ctx, nil, first.ID, models.HackathonStatusCompleted))
		// Closed out and past its end date: no longer blocks creation.
		repo.hackathons[first.ID].EndDate = now.Add(-time.Hour)

		input := validInput()
		input.Title = "Next Season"
		next, err := svc.CreateHackathon(ctx, input)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, next.ID)
	})
}

func TestHackathonServiceHasOpenHackathon(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no events", func(t *testing.T) {
		svc := newTestHackathonService(newFakeHackathonRepo(), now)

		exists, hackathon, err := svc.HasOpenHackathon(ctx, now)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Nil(t, hackathon)
	})

	t.Run("open event found", func(t *testing.T) {
		repo := newFakeHackathonRepo()
		svc := newTestHackathonService(repo, now)

		created, err := svc.CreateHackathon(ctx, CreateHackathonInput{
			Title:     "Smart India Hackathon",
			StartDate: now.Add(24 * time.Hour),
			EndDate:   now.Add(72 * time.Hour),
			Venue:     "Main Auditorium",
		})
		require.NoError(t, err)

		exists, hackathon, err := svc.HasOpenHackathon(ctx, now)
		require.NoError(t, err)
		assert.True(t, exists)
		require.NotNil(t, hackathon)
		assert.Equal(t, created.ID, hackathon.ID)
	})
}

func TestHackathonServiceAutoUpdateStatusesByDates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	repo := newFakeHackathonRepo()
	svc := newTestHackathonService(repo, now)

	started, err := svc.CreateHackathon(ctx, CreateHackathonInput{
		Title:     "Started",
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   now.Add(24 * time.Hour),
		Venue:     "Hall A",
	})
	require.NoError(t, err)

	require.NoError(t, svc.AutoUpdateStatusesByDates(ctx))

	updated, err := repo.GetByID(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HackathonStatusActive, updated.Status)

	// Move time past the end date: active advances to completed.
	svc.now = func() time.Time { return now.Add(48 * time.Hour) }
	require.NoError(t, svc.AutoUpdateStatusesByDates(ctx))

	updated, err = repo.GetByID(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HackathonStatusCompleted, updated.Status)
}

func TestHackathonServiceUploadBannerWithoutStorage(t *testing.T) {
	svc := newTestHackathonService(newFakeHackathonRepo(), time.Now())

	_, err := svc.UploadBanner(context.Background(), 1, "image/png", nil)
	assert.ErrorIs(t, err, ErrUploadsNotConfigured)
}
