// Package repository provides PostgreSQL persistence for user records and
// component configuration.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/nstepanova/onboard/internal/models"
)

const userColumns = `id, email, password_hash, step, about_me, birthdate, street, city, state, zip`

// PostgresUserRepository implements user persistence using a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Step,
		&u.AboutMe, &u.Birthdate, &u.Street, &u.City, &u.State, &u.Zip)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail returns the user with the given email, or nil when no such
// user exists.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// Create inserts a new user at step 1 and returns the stored record.
// A unique-constraint violation on email is reported as models.ErrDuplicate.
func (r *PostgresUserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, step) VALUES ($1, $2, 1)
		RETURNING `+userColumns, email, passwordHash)
	user, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("create user: %w", models.ErrDuplicate)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update applies the non-nil fields of the patch to the user with the
// given id and returns the updated record. models.ErrNotFound is returned
// when the id does not exist. An empty patch reads the row unchanged.
func (r *PostgresUserRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	sets := make([]string, 0, 9)
	args := make([]any, 0, 10)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		add("password_hash", *patch.PasswordHash)
	}
	if patch.AboutMe != nil {
		add("about_me", *patch.AboutMe)
	}
	if patch.Birthdate != nil {
		add("birthdate", *patch.Birthdate)
	}
	if patch.Street != nil {
		add("street", *patch.Street)
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.State != nil {
		add("state", *patch.State)
	}
	if patch.Zip != nil {
		add("zip", *patch.Zip)
	}
	if patch.Step != nil {
		add("step", *patch.Step)
	}

	var row *sql.Row
	if len(sets) == 0 {
		row = r.DB.QueryRowContext(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	} else {
		args = append(args, id)
		query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), userColumns)
		row = r.DB.QueryRowContext(ctx, query, args...)
	}

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// All returns every user as the id/email projection, ordered by id.
func (r *PostgresUserRepository) All(ctx context.Context) ([]models.UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, email FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Email); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
