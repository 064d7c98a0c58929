package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/lib/pq"
)

var (
	ErrWinnerNotFound         = errors.New("winner record not found")
	ErrWinnerRefInvalid       = errors.New("winner hackathon, team or evaluation reference invalid")
	ErrWinnerPositionConflict = errors.New("position already awarded for this hackathon")
)

type WinnerRepository interface {
	Create(ctx context.Context, winner *models.HackathonWinner) error
	GetByID(ctx context.Context, id int) (*models.HackathonWinner, error)
	List(ctx context.Context) ([]models.HackathonWinner, error)
	Update(ctx context.Context, winner *models.HackathonWinner) error
	Delete(ctx context.Context, id int) error
}

type postgresWinnerRepository struct {
	db *sql.DB
}

func NewPostgresWinnerRepository(db *sql.DB) WinnerRepository {
	return &postgresWinnerRepository{db: db}
}

func (r *postgresWinnerRepository) Create(ctx context.Context, winner *models.HackathonWinner) error {
	query := `
		INSERT INTO hackathon_winners (hackathon_id, team_id, evaluation_id, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		winner.HackathonID,
		winner.TeamID,
		winner.EvaluationID,
		winner.Position,
	).Scan(&winner.ID, &winner.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrWinnerPositionConflict
			case "23503":
				return ErrWinnerRefInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresWinnerRepository) GetByID(ctx context.Context, id int) (*models.HackathonWinner, error) {
	query := `
		SELECT w.id, w.hackathon_id, w.team_id, w.evaluation_id, w.position, w.created_at,
		       h.title, t.name
		FROM hackathon_winners w
		JOIN hackathons h ON w.hackathon_id = h.id
		JOIN teams t ON w.team_id = t.id
		WHERE w.id = $1`

	winner, err := r.scanWinner(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWinnerNotFound
		}
		return nil, err
	}
	return winner, nil
}

func (r *postgresWinnerRepository) List(ctx context.Context) ([]models.HackathonWinner, error) {
	query := `
		SELECT w.id, w.hackathon_id, w.team_id, w.evaluation_id, w.position, w.created_at,
		       h.title, t.name
		FROM hackathon_winners w
		JOIN hackathons h ON w.hackathon_id = h.id
		JOIN teams t ON w.team_id = t.id
		ORDER BY w.hackathon_id DESC, w.position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	winners := make([]models.HackathonWinner, 0)
	for rows.Next() {
		winner, err := r.scanWinner(rows)
		if err != nil {
			return nil, err
		}
		winners = append(winners, *winner)
	}
	return winners, rows.Err()
}

func (r *postgresWinnerRepository) Update(ctx context.Context, winner *models.HackathonWinner) error {
	query := `
		UPDATE hackathon_winners
		SET team_id = $1, evaluation_id = $2, position = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, winner.TeamID, winner.EvaluationID, winner.Position, winner.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrWinnerPositionConflict
			case "23503":
				return ErrWinnerRefInvalid
			}
		}
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrWinnerNotFound
	}
	return nil
}

func (r *postgresWinnerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hackathon_winners WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrWinnerNotFound
	}
	return nil
}

func (r *postgresWinnerRepository) scanWinner(row rowScanner) (*models.HackathonWinner, error) {
	var w models.HackathonWinner
	var hackathonTitle, teamName string
	err := row.Scan(
		&w.ID,
		&w.HackathonID,
		&w.TeamID,
		&w.EvaluationID,
		&w.Position,
		&w.CreatedAt,
		&hackathonTitle,
		&teamName,
	)
	if err != nil {
		return nil, err
	}
	w.Hackathon = &models.Hackathon{ID: w.HackathonID, Title: hackathonTitle}
	w.Team = &models.Team{ID: w.TeamID, Name: teamName}
	return &w, nil
}
