package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wolber/school-portal/internal/apperror"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// ClassService manages the flat list of class labels.
type ClassService struct {
	classes repository.ClassRepository
	logger  *slog.Logger
}

func NewClassService(classes repository.ClassRepository, logger *slog.Logger) *ClassService {
	return &ClassService{
		classes: classes,
		logger:  logger,
	}
}

// Create adds a class label. Fails with apperror.ErrConflict when the name
// already exists.
func (s *ClassService) Create(ctx context.Context, name string) (*model.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "class name is required")
	}

	class := &model.Class{Name: name}
	if err := s.classes.Create(ctx, class); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create class",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating class: %w", err)
	}

	s.logger.Info("class created", slog.String("id", class.ID), slog.String("name", class.Name))
	return class, nil
}

// ListNames returns every class name.
func (s *ClassService) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.classes.ListNames(ctx)
	if err != nil {
		s.logger.Error("failed to list classes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	return names, nil
}
