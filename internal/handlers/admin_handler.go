package handlers

import (
	"net/http"
	"strconv"

	"wewillshine/internal/models"
	"wewillshine/internal/service"
)

// AdminHandler serves the staff JSON API
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	login, err := h.adminService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, "Error logging in admin", err)
		return
	}
	respondWithJSON(w, http.StatusOK, login)
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Logout(); err != nil {
		respondWithServiceError(w, "Error logging out admin", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListStudents handles GET /api/admin/students
func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.StudentFilter{
		Kelas:    q.Get("kelas"),
		Rombel:   q.Get("rombel"),
		Angkatan: q.Get("angkatan"),
		Search:   q.Get("search"),
	}
	var err error
	if filter.Limit, err = queryInt(q.Get("limit")); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid limit", "", nil)
		return
	}
	if filter.Offset, err = queryInt(q.Get("offset")); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid offset", "", nil)
		return
	}

	page, err := h.adminService.ListStudents(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, "Error listing students", err)
		return
	}
	respondWithJSON(w, http.StatusOK, page)
}

// StudentDetail handles GET /api/admin/students/{id}
func (h *AdminHandler) StudentDetail(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.adminService.StudentAnalytics(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithServiceError(w, "Error loading student analytics", err)
		return
	}
	if analytics == nil {
		respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
		return
	}
	respondWithJSON(w, http.StatusOK, analytics)
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
