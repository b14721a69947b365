package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"wewillshine/internal/chat"
	"wewillshine/internal/progress"
	"wewillshine/internal/remote"
	"wewillshine/internal/security"
	"wewillshine/internal/service"
	"wewillshine/internal/session"
	"wewillshine/internal/storage"
)

type testServer struct {
	*httptest.Server
	admins *service.AdminService
}

func newTestServer(t *testing.T, gw remote.Gateway, limiter *security.RateLimiter) *testServer {
	t.Helper()
	kv := storage.NewMemoryStore()
	outbox := progress.SyncOutbox{Timeout: time.Second}
	settings := service.NewSettingsService(kv)

	students := service.NewStudentService(service.StudentDeps{
		Sessions:  session.NewManager(kv, session.DefaultTTL),
		Progress:  progress.NewStore(progress.NewKVRepository(kv), gw, outbox),
		Responder: chat.NewResponder(rand.New(rand.NewSource(1))),
		Gateway:   gw,
		Outbox:    outbox,
		Settings:  settings,
	})
	admins := service.NewAdminService(gw, kv, security.NewTokenSigner("handler-test", time.Hour))

	mux := Routes(NewStudentHandler(students, settings), NewAdminHandler(admins), NewMiddleware(admins, limiter))
	srv := httptest.NewServer(Logging(mux))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, admins: admins}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, header http.Header) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s status = %d, want %d; body = %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

type progressBody struct {
	StudentCode     string  `json:"studentCode"`
	Points          int     `json:"points"`
	Level           int     `json:"level"`
	LocalOnly       bool    `json:"localOnly"`
	ExploredCareers []int   `json:"exploredCareers"`
	LevelProgress   float64 `json:"levelProgress"`
	Dreams          []struct {
		ID int64 `json:"id"`
	} `json:"dreams"`
}

func decodeProgress(t *testing.T, data []byte) progressBody {
	t.Helper()
	var p progressBody
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("failed to decode progress %s: %v", data, err)
	}
	return p
}

func TestStudentAPIFlow(t *testing.T) {
	srv := newTestServer(t, remote.Offline{}, nil)

	resp, body := srv.do(t, "GET", "/api/progress", nil, nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = srv.do(t, "POST", "/api/login", map[string]string{"code": "SALAH"}, nil)
	expectStatus(t, resp, body, http.StatusBadRequest)
	var errBody errorResponse
	if err := json.Unmarshal(body, &errBody); err != nil || errBody.Field != "code" {
		t.Errorf("invalid code body = %s", body)
	}

	resp, body = srv.do(t, "POST", "/api/login", map[string]string{"code": "inspire2025da"}, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if p := decodeProgress(t, body); p.StudentCode != "INSPIRE2025DA" || !p.LocalOnly || p.Points != 0 {
		t.Errorf("login progress = %+v", p)
	}

	resp, body = srv.do(t, "POST", "/api/careers/3/explore", nil, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if p := decodeProgress(t, body); p.Points != service.PointsExplore || len(p.ExploredCareers) != 1 || p.LevelProgress != 0.1 {
		t.Errorf("explore progress = %+v", p)
	}

	resp, body = srv.do(t, "POST", "/api/careers/abc/explore", nil, nil)
	expectStatus(t, resp, body, http.StatusBadRequest)
	resp, body = srv.do(t, "POST", "/api/careers/42/explore", nil, nil)
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = srv.do(t, "GET", "/api/careers", nil, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var careers []struct {
		ID       int  `json:"id"`
		Explored bool `json:"explored"`
	}
	if err := json.Unmarshal(body, &careers); err != nil || len(careers) != 8 {
		t.Fatalf("careers = %s", body)
	}
	for _, c := range careers {
		if c.Explored != (c.ID == 3) {
			t.Errorf("career %d explored = %v", c.ID, c.Explored)
		}
	}

	resp, body = srv.do(t, "POST", "/api/chat", map[string]string{"message": "halo kak"}, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var reply struct {
		Bucket string `json:"bucket"`
		Reply  string `json:"reply"`
	}
	if err := json.Unmarshal(body, &reply); err != nil || reply.Bucket != "greeting" || reply.Reply == "" {
		t.Errorf("chat reply = %s", body)
	}

	resp, body = srv.do(t, "GET", "/api/quiz", nil, nil)
	expectStatus(t, resp, body, http.StatusOK)

	answers := []string{"tech", "analytical", "executor", "independent", "builder", "logical"}
	resp, body = srv.do(t, "POST", "/api/quiz", map[string][]string{"answers": answers}, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var result struct {
		Trait      string `json:"trait"`
		Motivation string `json:"motivation"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Trait != "analytical" || result.Motivation == "" {
		t.Errorf("quiz result = %s", body)
	}

	resp, body = srv.do(t, "POST", "/api/quiz", map[string][]string{"answers": answers[:2]}, nil)
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = srv.do(t, "POST", "/api/dreams", map[string]string{"text": "Jadi AI engineer"}, nil)
	expectStatus(t, resp, body, http.StatusCreated)
	var added struct {
		Dream struct {
			ID int64 `json:"id"`
		} `json:"dream"`
	}
	if err := json.Unmarshal(body, &added); err != nil || added.Dream.ID == 0 {
		t.Fatalf("add dream = %s", body)
	}

	resp, body = srv.do(t, "DELETE", fmt.Sprintf("/api/dreams/%d", added.Dream.ID), nil, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if p := decodeProgress(t, body); len(p.Dreams) != 0 {
		t.Errorf("dreams after delete = %+v", p.Dreams)
	}

	resp, body = srv.do(t, "POST", "/api/logout", nil, nil)
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = srv.do(t, "GET", "/api/progress", nil, nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)
	resp, body = srv.do(t, "GET", "/api/quote", nil, nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)
}

func TestSettingsAPI(t *testing.T) {
	srv := newTestServer(t, remote.Offline{}, nil)

	resp, body := srv.do(t, "PUT", "/api/settings", map[string]interface{}{
		"theme":         "dark",
		"notifications": map[string]bool{"dailyMotivation": false},
	}, nil)
	expectStatus(t, resp, body, http.StatusOK)

	var settings struct {
		Theme         string `json:"theme"`
		Language      string `json:"language"`
		Notifications struct {
			Enabled         bool `json:"enabled"`
			DailyMotivation bool `json:"dailyMotivation"`
		} `json:"notifications"`
	}
	if err := json.Unmarshal(body, &settings); err != nil {
		t.Fatal(err)
	}
	if settings.Theme != "dark" || settings.Language != "id" || !settings.Notifications.Enabled || settings.Notifications.DailyMotivation {
		t.Errorf("settings = %+v", settings)
	}

	resp, body = srv.do(t, "PUT", "/api/settings", map[string]string{"theme": "auto", "language": "jp"}, nil)
	expectStatus(t, resp, body, http.StatusBadRequest)
	resp, body = srv.do(t, "GET", "/api/settings", nil, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if err := json.Unmarshal(body, &settings); err != nil || settings.Theme != "dark" {
		t.Errorf("settings after rejected update = %s", body)
	}

	resp, body = srv.do(t, "PUT", "/api/settings", map[string]bool{"reset": true}, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if err := json.Unmarshal(body, &settings); err != nil || settings.Theme != "light" {
		t.Errorf("settings after reset = %s", body)
	}
}

func TestInvalidJSON(t *testing.T) {
	srv := newTestServer(t, remote.Offline{}, nil)
	req, _ := http.NewRequest("POST", srv.URL+"/api/login", bytes.NewBufferString("{"))
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLoginRateLimit(t *testing.T) {
	limiter := security.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	srv := newTestServer(t, remote.Offline{}, limiter)

	resp, body := srv.do(t, "POST", "/api/login", map[string]string{"code": "INSPIRE2025DA"}, nil)
	expectStatus(t, resp, body, http.StatusOK)
	resp, body = srv.do(t, "POST", "/api/login", map[string]string{"code": "INSPIRE2025DA"}, nil)
	expectStatus(t, resp, body, http.StatusTooManyRequests)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, remote.Offline{}, nil)

	tests := []struct {
		name   string
		header http.Header
	}{
		{"missing", nil},
		{"not bearer", http.Header{"Authorization": {"Basic abc"}}},
		{"garbage token", http.Header{"Authorization": {"Bearer abc.def.ghi"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := srv.do(t, "GET", "/api/admin/students", nil, tt.header)
			expectStatus(t, resp, body, http.StatusUnauthorized)
		})
	}
}

func TestAdminAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping admin API integration test in short mode")
	}

	gw, closer, err := remote.Open(remote.Options{
		Mode:         "sql",
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "remote.db"),
		Migrations:   "../../migrations",
	})
	if err != nil {
		t.Fatalf("remote.Open() error = %v", err)
	}
	t.Cleanup(func() { closer.Close() })

	srv := newTestServer(t, gw, nil)
	ctx := context.Background()
	if _, err := srv.admins.CreateAdmin(ctx, "guru@sekolah.id", "Bu Guru", "password123", "teacher"); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	resp, body := srv.do(t, "POST", "/api/login", map[string]string{"code": "INSPIRE2025DA"}, nil)
	expectStatus(t, resp, body, http.StatusOK)
	if p := decodeProgress(t, body); p.LocalOnly {
		t.Fatalf("login with SQL remote should not be local-only: %s", body)
	}

	resp, body = srv.do(t, "POST", "/api/admin/login", map[string]string{"email": "guru@sekolah.id", "password": "wrong"}, nil)
	expectStatus(t, resp, body, http.StatusUnauthorized)

	resp, body = srv.do(t, "POST", "/api/admin/login", map[string]string{"email": "guru@sekolah.id", "password": "password123"}, nil)
	expectStatus(t, resp, body, http.StatusOK)
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil || login.Token == "" {
		t.Fatalf("admin login = %s", body)
	}
	auth := http.Header{"Authorization": {"Bearer " + login.Token}}

	resp, body = srv.do(t, "GET", "/api/admin/students?search=diya&limit=10", nil, auth)
	expectStatus(t, resp, body, http.StatusOK)
	var page struct {
		Students []struct {
			ID          string `json:"id"`
			StudentCode string `json:"student_code"`
		} `json:"students"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &page); err != nil || page.Total != 1 || len(page.Students) != 1 {
		t.Fatalf("students page = %s", body)
	}

	resp, body = srv.do(t, "GET", "/api/admin/students/"+page.Students[0].ID, nil, auth)
	expectStatus(t, resp, body, http.StatusOK)
	var detail struct {
		Student struct {
			StudentCode string `json:"student_code"`
		} `json:"student"`
		Achievements []struct {
			AchievementID string `json:"achievement_id"`
		} `json:"achievements"`
	}
	if err := json.Unmarshal(body, &detail); err != nil || detail.Student.StudentCode != "INSPIRE2025DA" || len(detail.Achievements) != 1 {
		t.Errorf("student detail = %s", body)
	}

	resp, body = srv.do(t, "GET", "/api/admin/students/unknown", nil, auth)
	expectStatus(t, resp, body, http.StatusNotFound)

	resp, body = srv.do(t, "GET", "/api/admin/students?limit=ten", nil, auth)
	expectStatus(t, resp, body, http.StatusBadRequest)

	resp, body = srv.do(t, "POST", "/api/admin/logout", nil, auth)
	expectStatus(t, resp, body, http.StatusNoContent)
	resp, body = srv.do(t, "GET", "/api/admin/students", nil, auth)
	expectStatus(t, resp, body, http.StatusUnauthorized)
}
