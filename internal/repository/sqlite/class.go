package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/wolber/school-portal/internal/apperror"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// ClassDB implements repository.ClassRepository.
type ClassDB struct {
	conn *sql.DB
}

var _ repository.ClassRepository = (*ClassDB)(nil)

// Create inserts a new class label. A duplicate name maps to
// apperror.ErrConflict.
func (c *ClassDB) Create(ctx context.Context, class *model.Class) error {
	if class.ID == "" {
		class.ID = xid.New().String()
	}

	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO classes (id, name) VALUES (?, ?)`,
		class.ID,
		class.Name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("class %q already exists", class.Name))
		}
		return fmt.Errorf("sqlite: inserting class %q: %w", class.Name, err)
	}

	return nil
}

// ListNames returns every class name, alphabetically.
func (c *ClassDB) ListNames(ctx context.Context) ([]string, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT name FROM classes ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing classes: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning class row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating class rows: %w", err)
	}

	return names, nil
}
