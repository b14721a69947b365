package handlers

import "net/http"

// Routes registers the JSON API on a new mux
func Routes(students *StudentHandler, admins *AdminHandler, m *Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", m.RateLimit(students.Login))
	mux.HandleFunc("POST /api/logout", students.Logout)
	mux.HandleFunc("GET /api/progress", students.Progress)
	mux.HandleFunc("GET /api/careers", students.Careers)
	mux.HandleFunc("POST /api/careers/{id}/explore", students.ExploreCareer)
	mux.HandleFunc("GET /api/quote", students.Quote)
	mux.HandleFunc("POST /api/chat", students.Chat)
	mux.HandleFunc("GET /api/chat/welcome", students.Welcome)
	mux.HandleFunc("GET /api/quiz", students.QuizQuestions)
	mux.HandleFunc("POST /api/quiz", students.SubmitQuiz)
	mux.HandleFunc("POST /api/dreams", students.AddDream)
	mux.HandleFunc("DELETE /api/dreams/{id}", students.RemoveDream)
	mux.HandleFunc("GET /api/settings", students.GetSettings)
	mux.HandleFunc("PUT /api/settings", students.UpdateSettings)

	mux.HandleFunc("POST /api/admin/login", m.RateLimit(admins.Login))
	mux.HandleFunc("POST /api/admin/logout", m.RequireAdmin(admins.Logout))
	mux.HandleFunc("GET /api/admin/students", m.RequireAdmin(admins.ListStudents))
	mux.HandleFunc("GET /api/admin/students/{id}", m.RequireAdmin(admins.StudentDetail))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}
