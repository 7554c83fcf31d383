package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wolber/school-portal/internal/apperror"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// createdAtLayout is a fixed-width UTC timestamp with millisecond
// precision, identical to what the portal's earlier backend stored. Fixed
// width keeps TEXT ordering chronological.
const createdAtLayout = "2006-01-02T15:04:05.000Z"

// MessageService handles posting and retrieving per-user messages.
//
// now is injectable so tests can control timestamps; production wiring
// uses time.Now.
type MessageService struct {
	messages repository.MessageRepository
	logger   *slog.Logger
	now      func() time.Time
}

func NewMessageService(messages repository.MessageRepository, logger *slog.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		logger:   logger,
		now:      time.Now,
	}
}

// Post stores a message authored by fromID. The author always comes from
// the verified token claim, never from the request body; a client-supplied
// fromId is ignored upstream. CourseID defaults to the "none" sentinel and
// CreatedAt is assigned here.
func (s *MessageService) Post(ctx context.Context, fromID, courseID, courseTitle, text string) (*model.Message, error) {
	if fromID == "" {
		return nil, apperror.ValidationFailed("fromId", "author is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperror.ValidationFailed("text", "message text is required")
	}
	if courseID == "" {
		courseID = model.CourseNone
	}

	msg := &model.Message{
		FromID:      fromID,
		CourseID:    courseID,
		CourseTitle: courseTitle,
		Text:        text,
		CreatedAt:   s.now().UTC().Format(createdAtLayout),
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error("failed to post message",
			slog.String("fromId", fromID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("posting message: %w", err)
	}

	s.logger.Info("message posted",
		slog.String("id", msg.ID),
		slog.String("fromId", msg.FromID),
		slog.String("courseId", msg.CourseID),
	)

	return msg, nil
}

// ListByAuthor returns the caller's own messages, newest first.
func (s *MessageService) ListByAuthor(ctx context.Context, fromID string) ([]model.Message, error) {
	if fromID == "" {
		return nil, apperror.ValidationFailed("fromId", "author is required")
	}

	messages, err := s.messages.ListByAuthor(ctx, fromID)
	if err != nil {
		s.logger.Error("failed to list messages",
			slog.String("fromId", fromID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}
