package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wolber/school-portal/internal/service"
)

// ClassHandler exposes the class-label list and its (admin-only) creation.
type ClassHandler struct {
	classes *service.ClassService
	logger  *slog.Logger
}

func NewClassHandler(classes *service.ClassService, logger *slog.Logger) *ClassHandler {
	return &ClassHandler{classes: classes, logger: logger}
}

// HandleList returns every class name. Public, no token required.
//
// GET /classes → 200 ["5A", "5B", ...]
func (h *ClassHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	names, err := h.classes.ListNames(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, names)
}

type createClassRequest struct {
	Name string `json:"name"`
}

// HandleCreate adds a class label. Admin only.
//
// POST /classes → 200 {"success":true}
func (h *ClassHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "corps de requête invalide"})
		return
	}

	if _, err := h.classes.Create(r.Context(), req.Name); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
