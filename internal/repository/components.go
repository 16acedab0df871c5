package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nstepanova/onboard/internal/models"
)

// PostgresComponentRepository implements component-configuration
// persistence using a PostgreSQL database.
type PostgresComponentRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresComponentRepository creates a new PostgresComponentRepository
// with the given database connection.
func NewPostgresComponentRepository(db *sql.DB) *PostgresComponentRepository {
	return &PostgresComponentRepository{DB: db}
}

// All returns every component configuration entry ordered by page ascending.
func (r *PostgresComponentRepository) All(ctx context.Context) ([]models.ComponentConfig, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT name, page FROM component_configs ORDER BY page ASC`)
	if err != nil {
		return nil, fmt.Errorf("list component configs: %w", err)
	}
	defer rows.Close()

	var configs []models.ComponentConfig
	for rows.Next() {
		var c models.ComponentConfig
		if err := rows.Scan(&c.Name, &c.Page); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list component configs: %w", err)
	}
	return configs, nil
}

// Upsert inserts the entry or, when the name already exists, overwrites
// its page. The resulting entry is returned.
func (r *PostgresComponentRepository) Upsert(ctx context.Context, name string, page int) (*models.ComponentConfig, error) {
	var c models.ComponentConfig
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO component_configs (name, page) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET page = EXCLUDED.page
		RETURNING name, page`, name, page).Scan(&c.Name, &c.Page)
	if err != nil {
		return nil, fmt.Errorf("upsert component config: %w", err)
	}
	return &c, nil
}
