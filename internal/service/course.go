package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wolber/school-portal/internal/apperror"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// CourseService handles course publication and listing.
type CourseService struct {
	courses repository.CourseRepository
	logger  *slog.Logger
}

func NewCourseService(courses repository.CourseRepository, logger *slog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		logger:  logger,
	}
}

// Create publishes a new course. Only a title is mandatory; the remaining
// fields are free text supplied by the admin.
func (s *CourseService) Create(ctx context.Context, title, className, subject, courseType, content string) (*model.Course, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "course title is required")
	}

	course := &model.Course{
		Title:   title,
		Class:   strings.TrimSpace(className),
		Subject: strings.TrimSpace(subject),
		Type:    strings.TrimSpace(courseType),
		Content: content,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		s.logger.Error("failed to create course",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating course: %w", err)
	}

	s.logger.Info("course created",
		slog.String("id", course.ID),
		slog.String("title", course.Title),
		slog.String("class", course.Class),
	)

	return course, nil
}

// List returns every published course.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	return courses, nil
}
