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
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailConflict  = errors.New("user email conflict")
	ErrUserCollegeInvalid = errors.New("user college reference invalid")
	ErrUserTeamInvalid    = errors.New("user team reference invalid")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateRole(ctx context.Context, id int, role models.Role) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	ListByTeamID(ctx context.Context, teamID int) ([]models.User, error)
	// ListAssignedIDs returns the ids of every user currently on a team,
	// i.e. the union of all teams' member sets.
	ListAssignedIDs(ctx context.Context) ([]int, error)

	// LockByIDs loads the given users with their rows locked, so team
	// assignment can run check-then-act inside one transaction.
	LockByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.User, error)
	AssignTeam(ctx context.Context, exec SQLExecutor, teamID int, userIDs []int) error
	ClearTeamAssignment(ctx context.Context, exec SQLExecutor, teamID int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, phone, college_id, role, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.CollegeID,
		user.Role,
		user.TeamID,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "users_email_key" {
					return ErrUserEmailConflict
				}
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "users_college_id_fkey" {
					return ErrUserCollegeInvalid
				}
				if pqErr.Constraint == "users_team_id_fkey" {
					return ErrUserTeamInvalid
				}
			}
		}
		return err
	}
	return nil
}

const userColumns = `id, name, email, password_hash, phone, college_id, role, team_id, created_at`

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT
			u.id, u.name, u.email, u.password_hash, u.phone, u.college_id, u.role, u.team_id, u.created_at,
			c.id, c.name, c.district, c.state
		FROM users u
		LEFT JOIN colleges c ON u.college_id = c.id
		WHERE u.id = $1`

	var user models.User
	var clgID sql.NullInt64
	var clgName, clgDistrict, clgState sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.CollegeID,
		&user.Role,
		&user.TeamID,
		&user.CreatedAt,
		&clgID,
		&clgName,
		&clgDistrict,
		&clgState,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user with college: %w", err)
	}

	if clgID.Valid {
		user.College = &models.College{
			ID:       int(clgID.Int64),
			Name:     clgName.String,
			District: clgDistrict.String,
			State:    clgState.String,
		}
	}

	return &user, nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(ctx, query, email)
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id int, role models.Role) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC`
	return r.scanUsers(ctx, r.db, query)
}

func (r *postgresUserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY name ASC`
	return r.scanUsers(ctx, r.db, query, role)
}

func (r *postgresUserRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE team_id = $1 ORDER BY name ASC`
	return r.scanUsers(ctx, r.db, query, teamID)
}

func (r *postgresUserRepository) ListAssignedIDs(ctx context.Context) ([]int, error) {
	query := `SELECT id FROM users WHERE team_id IS NOT NULL`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresUserRepository) LockByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) FOR UPDATE`
	return r.scanUsers(ctx, r.getExecutor(exec), query, pq.Array(ids))
}

func (r *postgresUserRepository) AssignTeam(ctx context.Context, exec SQLExecutor, teamID int, userIDs []int) error {
	query := `UPDATE users SET team_id = $1 WHERE id = ANY($2)`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, teamID, pq.Array(userIDs))
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrUserTeamInvalid
		}
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if int(rowsAffected) != len(userIDs) {
		return ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) ClearTeamAssignment(ctx context.Context, exec SQLExecutor, teamID int) error {
	query := `UPDATE users SET team_id = NULL WHERE team_id = $1`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, teamID)
	return err
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.CollegeID,
		&user.Role,
		&user.TeamID,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *postgresUserRepository) scanUsers(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.User, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		scanErr := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Phone,
			&user.CollegeID,
			&user.Role,
			&user.TeamID,
			&user.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
