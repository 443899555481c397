package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codearena/internal/common"
	"codearena/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	FindUserByUsernameAndContest(ctx context.Context, username, contestID string) (*model.User, error)
	ListUsersByContest(ctx context.Context, contestID string) ([]model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, contest_id) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.ContestID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique constraint violation
			return fmt.Errorf("user %q already joined contest %s: %w", user.Username, user.ContestID, common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.CreateUser: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, username, contest_id, created_at FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.ContestID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindUserByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindUserByUsernameAndContest(ctx context.Context, username, contestID string) (*model.User, error) {
	query := `SELECT id, username, contest_id, created_at FROM users WHERE username = $1 AND contest_id = $2`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username, contestID).Scan(&user.ID, &user.Username, &user.ContestID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindUserByUsernameAndContest: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) ListUsersByContest(ctx context.Context, contestID string) ([]model.User, error) {
	query := `SELECT id, username, contest_id, created_at FROM users WHERE contest_id = $1 ORDER BY username ASC`
	rows, err := r.db.QueryContext(ctx, query, contestID)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListUsersByContest query: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.ContestID, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListUsersByContest scan: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListUsersByContest rows.Err: %w", err)
	}
	return users, nil
}
