package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// MessageDB implements repository.MessageRepository.
type MessageDB struct {
	conn *sql.DB
}

var _ repository.MessageRepository = (*MessageDB)(nil)

// Create inserts a new message. ID is generated here; FromID, CourseID and
// CreatedAt must already be set by the service layer.
func (m *MessageDB) Create(ctx context.Context, msg *model.Message) error {
	if msg.ID == "" {
		msg.ID = xid.New().String()
	}

	_, err := m.conn.ExecContext(ctx,
		`INSERT INTO messages (id, fromId, courseId, courseTitle, text, createdAt)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID,
		msg.FromID,
		msg.CourseID,
		msg.CourseTitle,
		msg.Text,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting message from %q: %w", msg.FromID, err)
	}

	return nil
}

// ListByAuthor returns the author's messages newest first. createdAt is a
// fixed-width UTC timestamp, so the TEXT ordering is chronological.
func (m *MessageDB) ListByAuthor(ctx context.Context, fromID string) ([]model.Message, error) {
	rows, err := m.conn.QueryContext(ctx,
		`SELECT id, fromId, courseId, courseTitle, text, createdAt
		 FROM messages WHERE fromId = ? ORDER BY createdAt DESC`,
		fromID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages for %q: %w", fromID, err)
	}
	defer rows.Close()

	messages := []model.Message{}
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(
			&msg.ID,
			&msg.FromID,
			&msg.CourseID,
			&msg.CourseTitle,
			&msg.Text,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating message rows: %w", err)
	}

	return messages, nil
}
