package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wolber/school-portal/internal/service"
)

// CourseHandler exposes course listing and (admin-only) creation.
type CourseHandler struct {
	courses *service.CourseService
	logger  *slog.Logger
}

func NewCourseHandler(courses *service.CourseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, logger: logger}
}

// HandleList returns every course. Requires a valid token, any role.
//
// GET /courses → 200 [course, ...]
func (h *CourseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

type createCourseRequest struct {
	Title     string `json:"title"`
	ClassName string `json:"className"`
	Subject   string `json:"subject"`
	Type      string `json:"type"`
	Content   string `json:"content"`
}

// HandleCreate publishes a course. Admin only.
//
// POST /courses → 200 {"success":true,"id":"..."}
func (h *CourseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "corps de requête invalide"})
		return
	}

	course, err := h.courses.Create(r.Context(), req.Title, req.ClassName, req.Subject, req.Type, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      course.ID,
	})
}
