package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

type ProblemRepository interface {
	CreateProblem(ctx context.Context, problem *model.Problem) error
	FindProblemByID(ctx context.Context, id string) (*model.Problem, error)
	ListProblemsByContest(ctx context.Context, contestID string) ([]model.Problem, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) CreateProblem(ctx context.Context, p *model.Problem) error {
	query := `INSERT INTO problems (id, contest_id, title, slug, description, sample_input, expected_output, points)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ContestID, p.Title, p.Slug, p.Description, p.SampleInput, p.ExpectedOutput, p.Points)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.CreateProblem: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	query := `SELECT id, contest_id, title, slug, description, sample_input, expected_output, points
	          FROM problems WHERE id = $1`
	problem := &model.Problem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&problem.ID, &problem.ContestID, &problem.Title, &problem.Slug,
		&problem.Description, &problem.SampleInput, &problem.ExpectedOutput, &problem.Points,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.FindProblemByID: %w", err)
	}
	return problem, nil
}

func (r *pgProblemRepository) ListProblemsByContest(ctx context.Context, contestID string) ([]model.Problem, error) {
	query := `SELECT id, contest_id, title, slug, description, sample_input, expected_output, points
	          FROM problems WHERE contest_id = $1 ORDER BY title ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListProblemsByContest query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(&p.ID, &p.ContestID, &p.Title, &p.Slug,
			&p.Description, &p.SampleInput, &p.ExpectedOutput, &p.Points); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListProblemsByContest scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListProblemsByContest rows.Err: %w", err)
	}
	return problems, nil
}
