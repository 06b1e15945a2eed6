package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yash-jivani/DevNetworks/internal/domain/user"
)

const uniqueViolationCode = "23505"

type postgresUserRepo struct {
	db           *pgxpool.Pool
	queryTimeout time.Duration
}

func NewPostgresUserRepo(db *pgxpool.Pool, queryTimeout time.Duration) user.Repository {
	return &postgresUserRepo{db: db, queryTimeout: queryTimeout}
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		INSERT INTO users (id, name, email, password_hash, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.AvatarURL, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: %s", user.ErrEmailConflict, u.Email)
		}
		return queryError("failed to insert user", err)
	}
	return nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	query := `
		SELECT id, name, email, password_hash, avatar_url, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *postgresUserRepo) scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.AvatarURL,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, queryError("failed to query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return queryError("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
