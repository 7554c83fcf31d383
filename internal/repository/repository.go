// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the file-backed implementation;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/wolber/school-portal/internal/model"
)

// UserRepository stores portal accounts. Inserts are single-row and
// append-only; there is no update or delete.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetByCredentials returns the user matching the exact username+password
	// pair, or apperror.ErrNotFound when no row matches.
	GetByCredentials(ctx context.Context, username, password string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	List(ctx context.Context) ([]model.Course, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	// ListByAuthor returns the author's messages ordered by createdAt
	// descending (newest first).
	ListByAuthor(ctx context.Context, fromID string) ([]model.Message, error)
}

type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	ListNames(ctx context.Context) ([]string, error)
}
