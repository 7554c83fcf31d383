package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// CourseDB implements repository.CourseRepository.
type CourseDB struct {
	conn *sql.DB
}

var _ repository.CourseRepository = (*CourseDB)(nil)

// Create inserts a new course. Courses are immutable once written.
func (c *CourseDB) Create(ctx context.Context, course *model.Course) error {
	if course.ID == "" {
		course.ID = xid.New().String()
	}

	_, err := c.conn.ExecContext(ctx,
		`INSERT INTO courses (id, title, class, subject, type, content)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		course.ID,
		course.Title,
		course.Class,
		course.Subject,
		course.Type,
		course.Content,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting course %q: %w", course.Title, err)
	}

	return nil
}

// List returns every course.
func (c *CourseDB) List(ctx context.Context) ([]model.Course, error) {
	rows, err := c.conn.QueryContext(ctx,
		`SELECT id, title, class, subject, type, content FROM courses`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var course model.Course
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Class,
			&course.Subject,
			&course.Type,
			&course.Content,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating course rows: %w", err)
	}

	return courses, nil
}
