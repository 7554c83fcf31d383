// Package handler contains the HTTP layer: request decoding, response
// shaping, and nothing else. Each handler performs at most one service
// call, which itself performs at most one store operation.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/service"
)

// AuthHandler exposes registration, login, and the admin user-management
// endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Classe   string `json:"classe"`
}

// HandleRegister creates a student account.
//
// POST /register → 200 {"success":true,"id":"..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "corps de requête invalide"})
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password, req.Name, req.Classe)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      user.ID,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the stored user record plus the issued bearer token.
type loginResponse struct {
	model.User
	Token string `json:"token"`
}

// HandleLogin verifies credentials and issues a token.
//
// POST /login → 200 user record + token; 400 "Identifiants incorrects"
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "corps de requête invalide"})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		User:  *result.User,
		Token: result.Token,
	})
}

type createAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// HandleCreateAdmin creates another administrator. The route is gated by
// RequireAuth + RequireAdmin.
//
// POST /create-admin → 200 {"success":true,"message":"..."}
func (h *AuthHandler) HandleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "corps de requête invalide"})
		return
	}

	if _, err := h.auth.CreateAdmin(r.Context(), req.Username, req.Password, req.Name); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Nouvel administrateur créé !",
	})
}

// HandleListUsers returns every account (without passwords). Admin only.
//
// GET /list-users → 200 [{id,username,role,name,classe}, ...]
func (h *AuthHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
