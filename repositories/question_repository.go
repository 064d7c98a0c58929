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
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionInUse is returned when deletion is blocked because a team
	// still references the question.
	ErrQuestionInUse = errors.New("question is referenced by a team")
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id int) (*models.Question, error)
	List(ctx context.Context) ([]models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id int) error
}

type postgresQuestionRepository struct {
	db *sql.DB
}

func NewPostgresQuestionRepository(db *sql.DB) QuestionRepository {
	return &postgresQuestionRepository{db: db}
}

func (r *postgresQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO questions (title, description, domain)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, query, question.Title, question.Description, question.Domain).
		Scan(&question.ID, &question.CreatedAt)
	if err != nil {
		return err
	}

	if err := r.insertCriteria(ctx, tx, question.ID, question.Criteria); err != nil {
		return err
	}
	for i := range question.Criteria {
		question.Criteria[i].QuestionID = question.ID
	}

	return tx.Commit()
}

func (r *postgresQuestionRepository) GetByID(ctx context.Context, id int) (*models.Question, error) {
	query := `SELECT id, title, description, domain, created_at FROM questions WHERE id = $1`

	var question models.Question
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&question.ID,
		&question.Title,
		&question.Description,
		&question.Domain,
		&question.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	criteria, err := r.loadCriteria(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	question.Criteria = criteria[id]

	return &question, nil
}

func (r *postgresQuestionRepository) List(ctx context.Context) ([]models.Question, error) {
	query := `SELECT id, title, description, domain, created_at FROM questions ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	ids := make([]int, 0)
	for rows.Next() {
		var question models.Question
		scanErr := rows.Scan(
			&question.ID,
			&question.Title,
			&question.Description,
			&question.Domain,
			&question.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		questions = append(questions, question)
		ids = append(ids, question.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		criteria, err := r.loadCriteria(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range questions {
			questions[i].Criteria = criteria[questions[i].ID]
		}
	}

	return questions, nil
}

func (r *postgresQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE questions SET title = $1, description = $2, domain = $3 WHERE id = $4`

	result, err := tx.ExecContext(ctx, query, question.Title, question.Description, question.Domain, question.ID)
	if err != nil {
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrQuestionNotFound
	}

	// Criteria are replaced wholesale on update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM question_criteria WHERE question_id = $1`, question.ID); err != nil {
		return err
	}
	if err := r.insertCriteria(ctx, tx, question.ID, question.Criteria); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresQuestionRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM questions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "teams_question_id_fkey" {
				return ErrQuestionInUse
			}
		}
		return err
	}

	rowsAffected, checkErr := checkRowsAffected(result)
	if checkErr != nil {
		return checkErr
	}
	if rowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (r *postgresQuestionRepository) insertCriteria(ctx context.Context, exec SQLExecutor, questionID int, criteria []models.Criterion) error {
	query := `
		INSERT INTO question_criteria (question_id, name, max_score)
		VALUES ($1, $2, $3)
		RETURNING id`

	for i := range criteria {
		err := exec.QueryRowContext(ctx, query, questionID, criteria[i].Name, criteria[i].MaxScore).
			Scan(&criteria[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert criterion %q: %w", criteria[i].Name, err)
		}
	}
	return nil
}

func (r *postgresQuestionRepository) loadCriteria(ctx context.Context, questionIDs []int) (map[int][]models.Criterion, error) {
	query := `
		SELECT id, question_id, name, max_score
		FROM question_criteria
		WHERE question_id = ANY($1)
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(questionIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byQuestion := make(map[int][]models.Criterion)
	for rows.Next() {
		var c models.Criterion
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Name, &c.MaxScore); err != nil {
			return nil, err
		}
		byQuestion[c.QuestionID] = append(byQuestion[c.QuestionID], c)
	}
	return byQuestion, rows.Err()
}
