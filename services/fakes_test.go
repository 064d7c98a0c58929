package services

import (
	"context"
	"time"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/Dosada05/hackathon-system/repositories"
)

// In-memory repository fakes. They mirror the constraint behavior of the
// postgres implementations closely enough for service-level tests:
// uniqueness and membership checks return the same sentinel errors.

type fakeUserRepo struct {
	nextID int
	users  map[int]*models.User

	listErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*models.User)}
}

func (f *fakeUserRepo) add(user models.User) *models.User {
	user.ID = f.nextID
	f.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	stored := user
	f.users[stored.ID] = &stored
	return &stored
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	stored := f.add(*user)
	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int, role models.Role) error {
	u, ok := f.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	users := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role models.Role) ([]models.User, error) {
	users := make([]models.User, 0)
	for _, u := range f.users {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) ListByTeamID(_ context.Context, teamID int) ([]models.User, error) {
	users := make([]models.User, 0)
	for _, u := range f.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) ListAssignedIDs(_ context.Context) ([]int, error) {
	ids := make([]int, 0)
	for _, u := range f.users {
		if u.TeamID != nil {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) LockByIDs(_ context.Context, _ repositories.SQLExecutor, ids []int) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) AssignTeam(_ context.Context, _ repositories.SQLExecutor, teamID int, userIDs []int) error {
	for _, id := range userIDs {
		u, ok := f.users[id]
		if !ok {
			return repositories.ErrUserNotFound
		}
		tid := teamID
		u.TeamID = &tid
	}
	return nil
}

func (f *fakeUserRepo) ClearTeamAssignment(_ context.Context, _ repositories.SQLExecutor, teamID int) error {
	for _, u := range f.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			u.TeamID = nil
		}
	}
	return nil
}

type fakeTeamRepo struct {
	nextID int
	teams  map[int]*models.Team
	users  *fakeUserRepo
}

func newFakeTeamRepo(users *fakeUserRepo) *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, teams: make(map[int]*models.Team), users: users}
}

func (f *fakeTeamRepo) CreateWithMembers(ctx context.Context, team *models.Team, memberIDs []int) error {
	for _, t := range f.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	for _, id := range memberIDs {
		u, ok := f.users.users[id]
		if !ok {
			return repositories.ErrTeamMemberNotFound
		}
		if u.TeamID != nil {
			return repositories.ErrTeamMemberAlreadyInTeam
		}
		if u.Role != models.RoleParticipant {
			return repositories.ErrTeamMemberNotParticipant
		}
	}

	team.ID = f.nextID
	f.nextID++
	team.CreatedAt = time.Now()
	stored := *team
	f.teams[stored.ID] = &stored

	return f.users.AssignTeam(ctx, nil, team.ID, memberIDs)
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeamRepo) GetByMemberID(_ context.Context, userID int) (*models.Team, error) {
	u, ok := f.users.users[userID]
	if !ok || u.TeamID == nil {
		return nil, repositories.ErrTeamNotFound
	}
	t, ok := f.teams[*u.TeamID]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeamRepo) ListSummaries(ctx context.Context) ([]models.TeamSummary, error) {
	summaries := make([]models.TeamSummary, 0, len(f.teams))
	for _, t := range f.teams {
		members, _ := f.users.ListByTeamID(ctx, t.ID)
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, m.Name)
		}
		summaries = append(summaries, models.TeamSummary{
			ID:          t.ID,
			Name:        t.Name,
			Capacity:    t.Capacity,
			Status:      t.Status,
			RepoURL:     t.RepoURL,
			MemberNames: names,
		})
	}
	return summaries, nil
}

func (f *fakeTeamRepo) ListByHackathonID(_ context.Context, hackathonID int) ([]models.Team, error) {
	teams := make([]models.Team, 0)
	for _, t := range f.teams {
		if t.HackathonID != nil && *t.HackathonID == hackathonID {
			teams = append(teams, *t)
		}
	}
	return teams, nil
}

func (f *fakeTeamRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.TeamStatus) error {
	t, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeTeamRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	t, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.teams, id)
	return f.users.ClearTeamAssignment(ctx, nil, id)
}

type fakeQuestionRepo struct {
	nextID int
	// order preserved, the service's grouping depends on it
	questions []*models.Question
	inUse     map[int]bool
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{nextID: 1, inUse: make(map[int]bool)}
}

func (f *fakeQuestionRepo) Create(_ context.Context, question *models.Question) error {
	question.ID = f.nextID
	f.nextID++
	question.CreatedAt = time.Now()
	stored := *question
	f.questions = append(f.questions, &stored)
	return nil
}

func (f *fakeQuestionRepo) GetByID(_ context.Context, id int) (*models.Question, error) {
	for _, q := range f.questions {
		if q.ID == id {
			copied := *q
			return &copied, nil
		}
	}
	return nil, repositories.ErrQuestionNotFound
}

func (f *fakeQuestionRepo) List(_ context.Context) ([]models.Question, error) {
	questions := make([]models.Question, 0, len(f.questions))
	for _, q := range f.questions {
		questions = append(questions, *q)
	}
	return questions, nil
}

func (f *fakeQuestionRepo) Update(_ context.Context, question *models.Question) error {
	for i, q := range f.questions {
		if q.ID == question.ID {
			stored := *question
			f.questions[i] = &stored
			return nil
		}
	}
	return repositories.ErrQuestionNotFound
}

func (f *fakeQuestionRepo) Delete(_ context.Context, id int) error {
	for i, q := range f.questions {
		if q.ID == id {
			if f.inUse[id] {
				return repositories.ErrQuestionInUse
			}
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return repositories.ErrQuestionNotFound
}

type fakeHackathonRepo struct {
	nextID     int
	hackathons map[int]*models.Hackathon
}

func newFakeHackathonRepo() *fakeHackathonRepo {
	return &fakeHackathonRepo{nextID: 1, hackathons: make(map[int]*models.Hackathon)}
}

func (f *fakeHackathonRepo) CreateExclusive(_ context.Context, hackathon *models.Hackathon, now time.Time) (*models.Hackathon, error) {
	for _, h := range f.hackathons {
		if h.IsOpen(now) {
			copied := *h
			return &copied, repositories.ErrOpenHackathonExists
		}
	}
	hackathon.ID = f.nextID
	f.nextID++
	hackathon.CreatedAt = now
	stored := *hackathon
	f.hackathons[stored.ID] = &stored
	return nil, nil
}

func (f *fakeHackathonRepo) FindOpen(_ context.Context, now time.Time) (*models.Hackathon, error) {
	for _, h := range f.hackathons {
		if h.IsOpen(now) {
			copied := *h
			return &copied, nil
		}
	}
	return nil, repositories.ErrHackathonNotFound
}

func (f *fakeHackathonRepo) GetByID(_ context.Context, id int) (*models.Hackathon, error) {
	h, ok := f.hackathons[id]
	if !ok {
		return nil, repositories.ErrHackathonNotFound
	}
	copied := *h
	return &copied, nil
}

func (f *fakeHackathonRepo) List(_ context.Context) ([]models.Hackathon, error) {
	hackathons := make([]models.Hackathon, 0, len(f.hackathons))
	for _, h := range f.hackathons {
		hackathons = append(hackathons, *h)
	}
	return hackathons, nil
}

func (f *fakeHackathonRepo) UpdateStatus(_ context.Context, _ repositories.SQLExecutor, id int, status models.HackathonStatus) error {
	h, ok := f.hackathons[id]
	if !ok {
		return repositories.ErrHackathonNotFound
	}
	h.Status = status
	return nil
}

func (f *fakeHackathonRepo) ListDueForStatusUpdate(_ context.Context, now time.Time) ([]models.Hackathon, error) {
	due := make([]models.Hackathon, 0)
	for _, h := range f.hackathons {
		switch {
		case h.Status == models.HackathonStatusUpcoming && !h.StartDate.After(now):
			due = append(due, *h)
		case h.Status == models.HackathonStatusActive && h.EndDate.Before(now):
			due = append(due, *h)
		}
	}
	return due, nil
}

func (f *fakeHackathonRepo) ListWinnerBoards(_ context.Context) ([]models.WinnerBoard, error) {
	boards := make([]models.WinnerBoard, 0)
	for _, h := range f.hackathons {
		if h.Status == models.HackathonStatusCompleted {
			boards = append(boards, models.WinnerBoard{HackathonID: h.ID, HackathonTitle: h.Title})
		}
	}
	return boards, nil
}

func (f *fakeHackathonRepo) SetWinners(_ context.Context, id int, first, second, third *int) error {
	h, ok := f.hackathons[id]
	if !ok {
		return repositories.ErrHackathonNotFound
	}
	h.FirstPlaceTeamID = first
	h.SecondPlaceTeamID = second
	h.ThirdPlaceTeamID = third
	return nil
}

func (f *fakeHackathonRepo) UpdateBannerKey(_ context.Context, id int, bannerKey *string) error {
	h, ok := f.hackathons[id]
	if !ok {
		return repositories.ErrHackathonNotFound
	}
	h.BannerKey = bannerKey
	return nil
}
