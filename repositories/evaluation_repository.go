package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/hackathon-system/models"
	"github.com/lib/pq"
)

var (
	ErrEvaluationNotFound        = errors.New("evaluation not found")
	ErrEvaluationTeamInvalid     = errors.New("evaluation team reference invalid")
	ErrEvaluationRefInvalid      = errors.New("evaluation hackathon or question reference invalid")
	ErrEvaluationAlreadyRecorded = errors.New("evaluation already recorded for this team and hackathon")
)

type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id int) (*models.Evaluation, error)
	List(ctx context.Context) ([]models.Evaluation, error)
	Update(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id int) error
}

type postgresEvaluationRepository struct {
	db *sql.DB
}

func NewPostgresEvaluationRepository(db *sql.DB) EvaluationRepository {
	return &postgresEvaluationRepository{db: db}
}

const evaluationColumns = `id, team_id, hackathon_id, question_id,
	problem_understanding, design_approach, implementation_clarity, code_organizing,
	code_readability, completion, presentation, usability, total_score, created_at`

func (r *postgresEvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	query := `
		INSERT INTO evaluations
			(team_id, hackathon_id, question_id,
			 problem_understanding, design_approach, implementation_clarity, code_organizing,
			 code_readability, completion, presentation, usability, total_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		evaluation.TeamID,
		evaluation.HackathonID,
		evaluation.QuestionID,
		evaluation.ProblemUnderstanding,
		evaluation.DesignApproach,
		evaluation.ImplementationClarity,
		evaluation.CodeOrganizing,
		evaluation.CodeReadability,
		evaluation.Completion,
		evaluation.Presentation,
		evaluation.Usability,
		evaluation.TotalScore,
	).Scan(&evaluation.ID, &evaluation.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrEvaluationAlreadyRecorded
			case "23503":
				if pqErr.Constraint == "evaluations_team_id_fkey" {
					return ErrEvaluationTeamInvalid
				}
				return ErrEvaluationRefInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresEvaluationRepository) GetByID(ctx context.Context, id int) (*models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations WHERE id = $1`

	evaluation, err := scanEvaluation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEvaluationNotFound
		}
		return nil, err
	}
	return evaluation, nil
}

func (r *postgresEvaluationRepository) List(ctx context.Context) ([]models.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluations ORDER BY total_score DESC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evaluations := make([]models.Evaluation, 0)
	for rows.Next() {
		evaluation, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, *evaluation)
	}
	return evaluations, rows.Err()
}

func (r *postgresEvaluationRepository) Update(ctx context.Context, evaluation *models.Evaluation) error {
	query := `
		UPDATE evaluations SET
			problem_understanding = $1, design_approach = $2, implementation_clarity = $3,
			code_organizing = $4, code_readability = $5, completion = $6,
			presentation = $7, usability = $8, total_score = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		evaluation.ProblemUnderstanding,
		evaluation.DesignApproach,
		evaluation.ImplementationClarity,
		evaluation.CodeOrganizing,
		evaluation.CodeReadability,
		evaluation.Completion,
		evaluation.Presentation,
		evaluation.Usability,
		evaluation.TotalScore,
		evaluation.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

func (r *postgresEvaluationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrEvaluationNotFound
	}
	return nil
}

func scanEvaluation(row rowScanner) (*models.Evaluation, error) {
	var e models.Evaluation
	err := row.Scan(
		&e.ID,
		&e.TeamID,
		&e.HackathonID,
		&e.QuestionID,
		&e.ProblemUnderstanding,
		&e.DesignApproach,
		&e.ImplementationClarity,
		&e.CodeOrganizing,
		&e.CodeReadability,
		&e.Completion,
		&e.Presentation,
		&e.Usability,
		&e.TotalScore,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
