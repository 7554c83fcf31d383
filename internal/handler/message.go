package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wolber/school-portal/internal/auth"
	"github.com/wolber/school-portal/internal/service"
)

// MessageHandler exposes per-user messaging.
type MessageHandler struct {
	messages *service.MessageService
	logger   *slog.Logger
}

func NewMessageHandler(messages *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, logger: logger}
}

// createMessageRequest deliberately has no fromId field: the author is
// always the verified token claim, and a client-supplied value is ignored.
type createMessageRequest struct {
	CourseID    string `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	Text        string `json:"text"`
}

// HandlePost stores a message authored by the caller.
//
// POST /messages → 200 {"success":true,"id":"..."}
func (h *MessageHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		// Unreachable on a RequireAuth route; kept as a guard.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Token manquant"})
		return
	}

	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "corps de requête invalide"})
		return
	}

	msg, err := h.messages.Post(r.Context(), claim.UserID, req.CourseID, req.CourseTitle, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      msg.ID,
	})
}

// HandleList returns the caller's own messages, newest first. The author
// filter also comes from the token claim, so one user can never read
// another's messages.
//
// GET /messages → 200 [message, ...]
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claim, ok := auth.ClaimFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Token manquant"})
		return
	}

	messages, err := h.messages.ListByAuthor(r.Context(), claim.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
