package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserServiceSetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown role", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := repo.add(models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleParticipant})

		svc := NewUserService(repo, testLogger())

		_, err := svc.SetRole(ctx, user.ID, "superuser")
		assert.ErrorIs(t, err, ErrInvalidRole)

		// Nothing must change after the rejection.
		stored, getErr := repo.GetByID(ctx, user.ID)
		require.NoError(t, getErr)
		assert.Equal(t, models.RoleParticipant, stored.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), testLogger())

		_, err := svc.SetRole(ctx, 42, models.RoleEvaluator)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("changes role", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := repo.add(models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleParticipant})

		svc := NewUserService(repo, testLogger())

		updated, err := svc.SetRole(ctx, user.ID, models.RoleEvaluator)
		require.NoError(t, err)
		assert.Equal(t, models.RoleEvaluator, updated.Role)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleEvaluator, stored.Role)
	})

	t.Run("assigning the current role is a no-op", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := repo.add(models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleCoordinator})

		svc := NewUserService(repo, testLogger())

		updated, err := svc.SetRole(ctx, user.ID, models.RoleCoordinator)
		require.NoError(t, err)
		assert.Equal(t, models.RoleCoordinator, updated.Role)
	})

	t.Run("role change keeps team membership", func(t *testing.T) {
		repo := newFakeUserRepo()
		teamID := 7
		user := repo.add(models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleParticipant, TeamID: &teamID})

		svc := NewUserService(repo, testLogger())

		_, err := svc.SetRole(ctx, user.ID, models.RoleCoordinator)
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.TeamID)
		assert.Equal(t, teamID, *stored.TeamID)
	})
}

func TestUserServiceListAvailableParticipants(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()

	teamID := 3
	free := repo.add(models.User{Name: "Free", Email: "free@example.com", Role: models.RoleParticipant})
	repo.add(models.User{Name: "Taken", Email: "taken@example.com", Role: models.RoleParticipant, TeamID: &teamID})
	repo.add(models.User{Name: "Judge", Email: "judge@example.com", Role: models.RoleEvaluator})

	svc := NewUserService(repo, testLogger())

	available, err := svc.ListAvailableParticipants(ctx)
	require.NoError(t, err)

	// Only unassigned participants remain: no other roles, no team members.
	require.Len(t, available, 1)
	assert.Equal(t, free.ID, available[0].ID)
	assert.Empty(t, available[0].PasswordHash)
}

func TestUserServiceSuspend(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := repo.add(models.User{Name: "Asha", Email: "asha@example.com", Role: models.RoleParticipant})

	svc := NewUserService(repo, testLogger())

	require.NoError(t, svc.Suspend(ctx, user.ID))
	assert.ErrorIs(t, svc.Suspend(ctx, user.ID), ErrUserNotFound)
}
