package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

type ContestRepository interface {
	CreateContest(ctx context.Context, contest *model.Contest) error
	// FindContestByID returns the contest without its problems loaded;
	// callers that need them go through ProblemRepository.
	FindContestByID(ctx context.Context, id string) (*model.Contest, error)
}

type pgContestRepository struct {
	db *sql.DB
}

func NewPgContestRepository(db *sql.DB) ContestRepository {
	return &pgContestRepository{db: db}
}

func (r *pgContestRepository) CreateContest(ctx context.Context, c *model.Contest) error {
	query := `INSERT INTO contests (id, name, description) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Description); err != nil {
		return fmt.Errorf("pgContestRepository.CreateContest: %w", err)
	}
	return nil
}

func (r *pgContestRepository) FindContestByID(ctx context.Context, id string) (*model.Contest, error) {
	query := `SELECT id, name, description FROM contests WHERE id = $1`
	contest := &model.Contest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&contest.ID, &contest.Name, &contest.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgContestRepository.FindContestByID: %w", err)
	}
	return contest, nil
}
