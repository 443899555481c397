package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codearena/internal/common"
	"codearena/internal/domain/model"
)

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, sub *model.Submission) error
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	// UpdateSubmission saves status/result/score and bumps the record
	// version. It fails with common.ErrConflict when the caller's copy
	// is stale.
	UpdateSubmission(ctx context.Context, sub *model.Submission) error
	// ListSubmissionsByContest returns every submission whose owner
	// belongs to the contest.
	ListSubmissionsByContest(ctx context.Context, contestID string) ([]model.Submission, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, problem_id, code, language, status, result, score, version, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.ProblemID, sub.Code, sub.Language,
		sub.Status, sub.Result, sub.Score, sub.Version, sub.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateSubmission: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT id, user_id, problem_id, code, language, status, result, score, version, submitted_at, updated_at
	          FROM submissions WHERE id = $1`
	sub := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.UserID, &sub.ProblemID, &sub.Code, &sub.Language,
		&sub.Status, &sub.Result, &sub.Score, &sub.Version, &sub.SubmittedAt, &sub.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.GetSubmissionByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) UpdateSubmission(ctx context.Context, sub *model.Submission) error {
	query := `UPDATE submissions
	          SET status = $1, result = $2, score = $3, version = version + 1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4 AND version = $5`
	res, err := r.db.ExecContext(ctx, query, sub.Status, sub.Result, sub.Score, sub.ID, sub.Version)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.UpdateSubmission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.UpdateSubmission rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM submissions WHERE id = $1)`, sub.ID).Scan(&exists); err != nil {
			return fmt.Errorf("pgSubmissionRepository.UpdateSubmission existence check: %w", err)
		}
		if exists {
			return fmt.Errorf("submission %s was modified concurrently: %w", sub.ID, common.ErrConflict)
		}
		return common.ErrNotFound
	}
	sub.Version++
	return nil
}

func (r *pgSubmissionRepository) ListSubmissionsByContest(ctx context.Context, contestID string) ([]model.Submission, error) {
	query := `SELECT s.id, s.user_id, s.problem_id, s.code, s.language, s.status, s.result, s.score, s.version, s.submitted_at, s.updated_at
	          FROM submissions s
	          WHERE s.user_id IN (SELECT u.id FROM users u WHERE u.contest_id = $1)
	          ORDER BY s.submitted_at ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissionsByContest query: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProblemID, &s.Code, &s.Language,
			&s.Status, &s.Result, &s.Score, &s.Version, &s.SubmittedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissionsByContest scan: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissionsByContest rows.Err: %w", err)
	}
	return submissions, nil
}
