package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/lib/pq"
)

var (
	ErrCollegeNotFound = errors.New("college not found")
	ErrCollegeConflict = errors.New("college already exists")
)

type CollegeRepository interface {
	Create(ctx context.Context, college *models.College) error
	GetByID(ctx context.Context, id int) (*models.College, error)
	ListStates(ctx context.Context) ([]string, error)
	ListByState(ctx context.Context, state string) ([]models.College, error)
}

type postgresCollegeRepository struct {
	db *sql.DB
}

func NewPostgresCollegeRepository(db *sql.DB) CollegeRepository {
	return &postgresCollegeRepository{db: db}
}

func (r *postgresCollegeRepository) Create(ctx context.Context, college *models.College) error {
	query := `
		INSERT INTO colleges (name, district, state)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, college.Name, college.District, college.State).Scan(&college.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrCollegeConflict
		}
		return err
	}
	return nil
}

func (r *postgresCollegeRepository) GetByID(ctx context.Context, id int) (*models.College, error) {
	query := `SELECT id, name, district, state FROM colleges WHERE id = $1`

	var college models.College
	err := r.db.QueryRowContext(ctx, query, id).Scan(&college.ID, &college.Name, &college.District, &college.State)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCollegeNotFound
		}
		return nil, err
	}
	return &college, nil
}

func (r *postgresCollegeRepository) ListStates(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT state FROM colleges ORDER BY state ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make([]string, 0)
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, rows.Err()
}

func (r *postgresCollegeRepository) ListByState(ctx context.Context, state string) ([]models.College, error) {
	query := `SELECT id, name, district, state FROM colleges WHERE state = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colleges := make([]models.College, 0)
	for rows.Next() {
		var college models.College
		if err := rows.Scan(&college.ID, &college.Name, &college.District, &college.State); err != nil {
			return nil, err
		}
		colleges = append(colleges, college)
	}
	return colleges, rows.Err()
}
