package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameConflict    = errors.New("team name conflict")
	ErrTeamQuestionInvalid = errors.New("team question reference invalid")

	// Returned by CreateWithMembers when a requested member cannot join.
	ErrTeamMemberNotFound       = errors.New("team member not found")
	ErrTeamMemberAlreadyInTeam  = errors.New("team member is already in a team")
	ErrTeamMemberNotParticipant = errors.New("team member does not have the participant role")
)

type TeamRepository interface {
	// CreateWithMembers persists the team and assigns every member inside a
	// single transaction. Candidate member rows are locked first, so two
	// concurrent creations cannot claim the same participant.
	CreateWithMembers(ctx context.Context, team *models.Team, memberIDs []int) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// GetByMemberID returns the team whose member set contains the user.
	GetByMemberID(ctx context.Context, userID int) (*models.Team, error)
	ListSummaries(ctx context.Context) ([]models.TeamSummary, error)
	ListByHackathonID(ctx context.Context, hackathonID int) ([]models.Team, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TeamStatus) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	// Delete removes the team and clears every member's back-reference in
	// the same transaction.
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const teamColumns = `id, name, capacity, coordinator_id, question_id, repo_url, status, hackathon_id, logo_key, created_at`

func (r *postgresTeamRepository) CreateWithMembers(ctx context.Context, team *models.Team, memberIDs []int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock candidate members before any check, so a concurrent creation
	// blocks here instead of double-claiming a participant.
	if len(memberIDs) > 0 {
		locked, err := r.lockUsers(ctx, tx, memberIDs)
		if err != nil {
			return err
		}
		if len(locked) != len(memberIDs) {
			return ErrTeamMemberNotFound
		}
		for _, member := range locked {
			if member.TeamID != nil {
				return fmt.Errorf("%w: user %d", ErrTeamMemberAlreadyInTeam, member.ID)
			}
			if member.Role != models.RoleParticipant {
				return fmt.Errorf("%w: user %d", ErrTeamMemberNotParticipant, member.ID)
			}
		}
	}

	query := `
		INSERT INTO teams (name, capacity, coordinator_id, question_id, repo_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, query,
		team.Name,
		team.Capacity,
		team.CoordinatorID,
		team.QuestionID,
		team.RepoURL,
		team.Status,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "teams_name_key" {
					return ErrTeamNameConflict
				}
			case "23503":
				if pqErr.Constraint == "teams_question_id_fkey" {
					return ErrTeamQuestionInvalid
				}
			}
		}
		return err
	}

	if len(memberIDs) > 0 {
		result, err := tx.ExecContext(ctx,
			`UPDATE users SET team_id = $1 WHERE id = ANY($2)`,
			team.ID, pq.Array(memberIDs))
		if err != nil {
			return err
		}
		rowsAffected, checkErr := checkRowsAffected(result)
		if checkErr != nil {
			return checkErr
		}
		if int(rowsAffected) != len(memberIDs) {
			return ErrTeamMemberNotFound
		}
	}

	return tx.Commit()
}

func (r *postgresTeamRepository) lockUsers(ctx context.Context, tx *sql.Tx, ids []int) ([]models.User, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, role, team_id FROM users WHERE id = ANY($1) FOR UPDATE`,
		pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0, len(ids))
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Role, &user.TeamID); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByMemberID(ctx context.Context, userID int) (*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.capacity, t.coordinator_id, t.question_id, t.repo_url, t.status, t.hackathon_id, t.logo_key, t.created_at
		FROM teams t
		JOIN users u ON u.team_id = t.id
		WHERE u.id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresTeamRepository) ListSummaries(ctx context.Context) ([]models.TeamSummary, error) {
	query := `
		SELECT
			t.id, t.name, t.capacity, t.status, t.repo_url,
			c.name AS coordinator_name,
			COALESCE(q.title, ''),
			COALESCE(ARRAY_AGG(m.name ORDER BY m.name) FILTER (WHERE m.id IS NOT NULL), '{}')
		FROM teams t
		JOIN users c ON t.coordinator_id = c.id
		LEFT JOIN questions q ON t.question_id = q.id
		LEFT JOIN users m ON m.team_id = t.id
		GROUP BY t.id, c.name, q.title
		ORDER BY t.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.TeamSummary, 0)
	for rows.Next() {
		var s models.TeamSummary
		var memberNames pq.StringArray
		scanErr := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Capacity,
			&s.Status,
			&s.RepoURL,
			&s.CoordinatorName,
			&s.QuestionTitle,
			&memberNames,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		s.MemberNames = memberNames
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *postgresTeamRepository) ListByHackathonID(ctx context.Context, hackathonID int) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE hackathon_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, hackathonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, err := r.scanTeamFromRows(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TeamStatus) error {
	result, err := r.getExecutor(exec).ExecContext(ctx,
		`UPDATE teams SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE users SET team_id = NULL WHERE team_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *postgresTeamRepository) scanTeam(row rowScanner) (*models.Team, error) {
	team, err := r.scanTeamFromRows(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) scanTeamFromRows(row rowScanner) (*models.Team, error) {
	var team models.Team
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Capacity,
		&team.CoordinatorID,
		&team.QuestionID,
		&team.RepoURL,
		&team.Status,
		&team.HackathonID,
		&team.LogoKey,
		&team.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &team, nil
}
