package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hackathon-system/models"
)

var (
	ErrHackathonNotFound = errors.New("hackathon not found")
	// ErrOpenHackathonExists signals that another hackathon is still
	// upcoming or active; the conflicting record accompanies the error.
	ErrOpenHackathonExists = errors.New("an active or upcoming hackathon already exists")
)

// hackathonExclusivityLockKey is the advisory lock key serializing
// check-then-create across concurrent hackathon creators.
const hackathonExclusivityLockKey = 421337

type HackathonRepository interface {
	// CreateExclusive persists the hackathon only if no open one exists.
	// The check and the insert run in one transaction under an advisory
	// lock, so two concurrent creators cannot both pass the check. On
	// conflict the existing open hackathon is returned together with
	// ErrOpenHackathonExists.
	CreateExclusive(ctx context.Context, hackathon *models.Hackathon, now time.Time) (*models.Hackathon, error)
	FindOpen(ctx context.Context, now time.Time) (*models.Hackathon, error)
	GetByID(ctx context.Context, id int) (*models.Hackathon, error)
	List(ctx context.Context) ([]models.Hackathon, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.HackathonStatus) error
	// ListDueForStatusUpdate returns hackathons whose status lags behind
	// their dates: upcoming past start, or active past end.
	ListDueForStatusUpdate(ctx context.Context, now time.Time) ([]models.Hackathon, error)
	ListWinnerBoards(ctx context.Context) ([]models.WinnerBoard, error)
	SetWinners(ctx context.Context, id int, first, second, third *int) error
	UpdateBannerKey(ctx context.Context, id int, bannerKey *string) error
}

type postgresHackathonRepository struct {
	db *sql.DB
}

func NewPostgresHackathonRepository(db *sql.DB) HackathonRepository {
	return &postgresHackathonRepository{db: db}
}

func (r *postgresHackathonRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const hackathonColumns = `id, title, start_date, end_date, registration_deadline, venue, status,
	first_place_team_id, second_place_team_id, third_place_team_id, banner_key, created_at`

func (r *postgresHackathonRepository) CreateExclusive(ctx context.Context, hackathon *models.Hackathon, now time.Time) (*models.Hackathon, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, hackathonExclusivityLockKey); err != nil {
		return nil, fmt.Errorf("failed to take exclusivity lock: %w", err)
	}

	existing, err := r.findOpen(ctx, tx, now)
	if err != nil && !errors.Is(err, ErrHackathonNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, ErrOpenHackathonExists
	}

	query := `
		INSERT INTO hackathons (title, start_date, end_date, registration_deadline, venue, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, query,
		hackathon.Title,
		hackathon.StartDate,
		hackathon.EndDate,
		hackathon.RegistrationDeadline,
		hackathon.Venue,
		hackathon.Status,
	).Scan(&hackathon.ID, &hackathon.CreatedAt)
	if err != nil {
		return nil, err
	}

	return nil, tx.Commit()
}

func (r *postgresHackathonRepository) FindOpen(ctx context.Context, now time.Time) (*models.Hackathon, error) {
	return r.findOpen(ctx, r.db, now)
}

func (r *postgresHackathonRepository) findOpen(ctx context.Context, exec SQLExecutor, now time.Time) (*models.Hackathon, error) {
	query := `
		SELECT ` + hackathonColumns + `
		FROM hackathons
		WHERE status IN ('upcoming', 'active')
		   OR (status <> 'completed' AND end_date >= $1)
		ORDER BY id ASC
		LIMIT 1`

	return r.scanHackathon(exec.QueryRowContext(ctx, query, now))
}

func (r *postgresHackathonRepository) GetByID(ctx context.Context, id int) (*models.Hackathon, error) {
	query := `SELECT ` + hackathonColumns + ` FROM hackathons WHERE id = $1`
	return r.scanHackathon(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresHackathonRepository) List(ctx context.Context) ([]models.Hackathon, error) {
	query := `SELECT ` + hackathonColumns + ` FROM hackathons ORDER BY start_date DESC`
	return r.scanHackathons(ctx, query)
}

func (r *postgresHackathonRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.HackathonStatus) error {
	result, err := r.getExecutor(exec).ExecContext(ctx,
		`UPDATE hackathons SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrHackathonNotFound
	}
	return nil
}

func (r *postgresHackathonRepository) ListDueForStatusUpdate(ctx context.Context, now time.Time) ([]models.Hackathon, error) {
	query := `
		SELECT ` + hackathonColumns + `
		FROM hackathons
		WHERE (status = 'upcoming' AND start_date <= $1)
		   OR (status = 'active' AND end_date < $1)
		ORDER BY id ASC`
	return r.scanHackathons(ctx, query, now)
}

func (r *postgresHackathonRepository) ListWinnerBoards(ctx context.Context) ([]models.WinnerBoard, error) {
	query := `
		SELECT
			h.id, h.title,
			COALESCE(t1.name, ''), COALESCE(t2.name, ''), COALESCE(t3.name, '')
		FROM hackathons h
		LEFT JOIN teams t1 ON h.first_place_team_id = t1.id
		LEFT JOIN teams t2 ON h.second_place_team_id = t2.id
		LEFT JOIN teams t3 ON h.third_place_team_id = t3.id
		WHERE h.status = 'completed'
		ORDER BY h.end_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := make([]models.WinnerBoard, 0)
	for rows.Next() {
		var b models.WinnerBoard
		if err := rows.Scan(&b.HackathonID, &b.HackathonTitle, &b.FirstPlace, &b.SecondPlace, &b.ThirdPlace); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (r *postgresHackathonRepository) SetWinners(ctx context.Context, id int, first, second, third *int) error {
	query := `
		UPDATE hackathons
		SET first_place_team_id = $1, second_place_team_id = $2, third_place_team_id = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, first, second, third, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrHackathonNotFound
	}
	return nil
}

func (r *postgresHackathonRepository) UpdateBannerKey(ctx context.Context, id int, bannerKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE hackathons SET banner_key = $1 WHERE id = $2`, bannerKey, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrHackathonNotFound
	}
	return nil
}

func (r *postgresHackathonRepository) scanHackathon(row *sql.Row) (*models.Hackathon, error) {
	var h models.Hackathon
	err := row.Scan(
		&h.ID,
		&h.Title,
		&h.StartDate,
		&h.EndDate,
		&h.RegistrationDeadline,
		&h.Venue,
		&h.Status,
		&h.FirstPlaceTeamID,
		&h.SecondPlaceTeamID,
		&h.ThirdPlaceTeamID,
		&h.BannerKey,
		&h.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHackathonNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *postgresHackathonRepository) scanHackathons(ctx context.Context, query string, args ...interface{}) ([]models.Hackathon, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hackathons := make([]models.Hackathon, 0)
	for rows.Next() {
		var h models.Hackathon
		scanErr := rows.Scan(
			&h.ID,
			&h.Title,
			&h.StartDate,
			&h.EndDate,
			&h.RegistrationDeadline,
			&h.Venue,
			&h.Status,
			&h.FirstPlaceTeamID,
			&h.SecondPlaceTeamID,
			&h.ThirdPlaceTeamID,
			&h.BannerKey,
			&h.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		hackathons = append(hackathons, h)
	}
	return hackathons, rows.Err()
}
