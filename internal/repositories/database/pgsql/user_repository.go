package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, login_id, password_hash, name, name_en, date_of_birth, created_at, last_updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID, &u.LoginID, &u.PasswordHash, &u.Name, &u.NameEn,
		&u.DateOfBirth, &u.CreatedAt, &u.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_id = $1;`
	user, err := scanUser(r.pool.QueryRow(ctx, query, loginID))
	if err != nil {
		return nil, fmt.Errorf("failed to find user by login id: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	query := `
		INSERT INTO users (login_id, password_hash, name, name_en, date_of_birth, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id;
	`
	var userID int64
	err := r.pool.QueryRow(ctx, query,
		user.LoginID, user.PasswordHash, user.Name, user.NameEn,
		user.DateOfBirth, user.CreatedAt, user.LastUpdatedAt,
	).Scan(&userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, fmt.Errorf("%w: login id %q already exists", apperrors.ErrValidation, user.LoginID)
		}
		return 0, fmt.Errorf("failed to save user: %w", err)
	}
	return userID, nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
	}
	return nil
}
