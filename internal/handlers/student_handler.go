package handlers

import (
	"net/http"
	"strconv"

	"wewillshine/internal/catalog"
	"wewillshine/internal/models"
	"wewillshine/internal/service"
)

// StudentHandler serves the student-facing JSON API
type StudentHandler struct {
	students *service.StudentService
	settings *service.SettingsService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(students *service.StudentService, settings *service.SettingsService) *StudentHandler {
	return &StudentHandler{students: students, settings: settings}
}

// progressResponse adds the derived views to the progress record
type progressResponse struct {
	*models.Progress
	LevelProgress float64 `json:"levelProgress"`
}

func newProgressResponse(p *models.Progress) progressResponse {
	return progressResponse{Progress: p, LevelProgress: p.LevelProgress()}
}

type loginRequest struct {
	Code string `json:"code"`
}

// Login handles POST /api/login
func (h *StudentHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.students.Login(r.Context(), req.Code, DeviceFromRequest(r))
	if err != nil {
		respondWithServiceError(w, "Error logging in student", err)
		return
	}
	respondWithJSON(w, http.StatusOK, newProgressResponse(p))
}

// Logout handles POST /api/logout
func (h *StudentHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.students.Logout(); err != nil {
		respondWithServiceError(w, "Error logging out student", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Progress handles GET /api/progress
func (h *StudentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	p, err := h.students.Current()
	if err != nil {
		respondWithServiceError(w, "Error loading progress", err)
		return
	}
	respondWithJSON(w, http.StatusOK, newProgressResponse(p))
}

type careerView struct {
	catalog.Career
	Explored bool `json:"explored"`
}

// Careers handles GET /api/careers. Explored flags are set when a student is logged in.
func (h *StudentHandler) Careers(w http.ResponseWriter, r *http.Request) {
	p, _ := h.students.Current()

	careers := catalog.Careers()
	views := make([]careerView, 0, len(careers))
	for _, c := range careers {
		views = append(views, careerView{Career: c, Explored: p != nil && p.HasExplored(c.ID)})
	}
	respondWithJSON(w, http.StatusOK, views)
}

// ExploreCareer handles POST /api/careers/{id}/explore
func (h *StudentHandler) ExploreCareer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid career id", "", nil)
		return
	}

	p, err := h.students.ExploreCareer(id)
	if err != nil {
		respondWithServiceError(w, "Error exploring career", err)
		return
	}
	respondWithJSON(w, http.StatusOK, newProgressResponse(p))
}

// Quote handles GET /api/quote
func (h *StudentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	res, err := h.students.ReadQuote()
	if err != nil {
		respondWithServiceError(w, "Error reading quote", err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat handles POST /api/chat
func (h *StudentHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.students.Chat(req.Message)
	if err != nil {
		respondWithServiceError(w, "Error answering chat", err)
		return
	}
	respondWithJSON(w, http.StatusOK, reply)
}

// Welcome handles GET /api/chat/welcome
func (h *StudentHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	msg, err := h.students.Welcome()
	if err != nil {
		respondWithServiceError(w, "Error building welcome", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"reply": msg})
}

// QuizQuestions handles GET /api/quiz
func (h *StudentHandler) QuizQuestions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, catalog.Questions())
}

type quizRequest struct {
	Answers []string `json:"answers"`
}

// SubmitQuiz handles POST /api/quiz
func (h *StudentHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.students.SubmitQuiz(req.Answers)
	if err != nil {
		respondWithServiceError(w, "Error submitting quiz", err)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

type dreamRequest struct {
	Text  string `json:"text"`
	Date  string `json:"date"`
	Color string `json:"color"`
}

// AddDream handles POST /api/dreams
func (h *StudentHandler) AddDream(w http.ResponseWriter, r *http.Request) {
	var req dreamRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dream, p, err := h.students.AddDream(req.Text, req.Date, req.Color)
	if err != nil {
		respondWithServiceError(w, "Error adding dream", err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"dream":    dream,
		"progress": newProgressResponse(p),
	})
}

// RemoveDream handles DELETE /api/dreams/{id}
func (h *StudentHandler) RemoveDream(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid dream id", "", nil)
		return
	}

	p, err := h.students.RemoveDream(id)
	if err != nil {
		respondWithServiceError(w, "Error removing dream", err)
		return
	}
	respondWithJSON(w, http.StatusOK, newProgressResponse(p))
}

// GetSettings handles GET /api/settings
func (h *StudentHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		respondWithServiceError(w, "Error loading settings", err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings. Sections left out of the body are
// unchanged, and nothing is saved unless every section is valid.
func (h *StudentHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req service.SettingsUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.settings.Apply(req)
	if err != nil {
		respondWithServiceError(w, "Error updating settings", err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}
