package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"wewillshine/internal/models"
)

// RESTGateway implements Gateway against a PostgREST-style hosted backend.
// The API key travels both as the apikey header and as a bearer token.
type RESTGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRESTGateway creates a gateway for baseURL (e.g. https://project.supabase.co)
func NewRESTGateway(baseURL, apiKey string, timeout time.Duration) (*RESTGateway, error) {
	if baseURL == "" {
		return nil, errors.New("remote url is required for rest mode")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	base := &http.Client{Timeout: timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}))
	client.Timeout = timeout

	return &RESTGateway{
		baseURL: strings.TrimRight(baseURL, "/") + "/rest/v1",
		apiKey:  apiKey,
		client:  client,
	}, nil
}

type restResponse struct {
	status int
	header http.Header
	body   []byte
}

func (g *RESTGateway) do(ctx context.Context, method, table string, query url.Values, body interface{}, prefer string) (*restResponse, error) {
	endpoint := g.baseURL + "/" + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s returned %d: %s", method, table, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return &restResponse{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func decodeRows[T any](resp *restResponse) ([]T, error) {
	rows := []T{}
	if len(resp.body) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(resp.body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return rows, nil
}

func firstRow[T any](resp *restResponse) (*T, error) {
	rows, err := decodeRows[T](resp)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func eq(v string) string {
	return "eq." + v
}

// listValueEscaper escapes the characters that end a quoted value
var listValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ilikeListValue builds a substring pattern that is safe inside an or=(...)
// list. Quoting keeps commas and parentheses in the search text literal.
func ilikeListValue(search string) string {
	return `"*` + listValueEscaper.Replace(search) + `*"`
}

func (g *RESTGateway) GetStudent(ctx context.Context, code string) (*models.Student, error) {
	q := url.Values{"student_code": {eq(code)}, "select": {"*"}, "order": {"created_at.asc"}, "limit": {"1"}}
	resp, err := g.do(ctx, http.MethodGet, "students", q, nil, "")
	if err != nil {
		return nil, unavailable("get student", err)
	}
	s, err := firstRow[models.Student](resp)
	if err != nil {
		return nil, unavailable("get student", err)
	}
	return s, nil
}

func (g *RESTGateway) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	q := url.Values{"id": {eq(id)}, "select": {"*"}}
	resp, err := g.do(ctx, http.MethodGet, "students", q, nil, "")
	if err != nil {
		return nil, unavailable("get student", err)
	}
	s, err := firstRow[models.Student](resp)
	if err != nil {
		return nil, unavailable("get student", err)
	}
	return s, nil
}

func (g *RESTGateway) CreateStudent(ctx context.Context, s models.Student) (*models.Student, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now

	resp, err := g.do(ctx, http.MethodPost, "students", nil, s, "return=representation")
	if err != nil {
		return nil, unavailable("create student", err)
	}
	created, err := firstRow[models.Student](resp)
	if err != nil {
		return nil, unavailable("create student", err)
	}
	if created == nil {
		return &s, nil
	}
	return created, nil
}

func (g *RESTGateway) UpdateStudent(ctx context.Context, id string, u models.StudentUpdate) error {
	if u.IsEmpty() {
		return nil
	}
	body := struct {
		models.StudentUpdate
		UpdatedAt time.Time `json:"updated_at"`
	}{u, time.Now().UTC()}

	if _, err := g.do(ctx, http.MethodPatch, "students", url.Values{"id": {eq(id)}}, body, "return=minimal"); err != nil {
		return unavailable("update student", err)
	}
	return nil
}

func (g *RESTGateway) DeleteStudent(ctx context.Context, id string) error {
	if _, err := g.do(ctx, http.MethodDelete, "students", url.Values{"id": {eq(id)}}, nil, ""); err != nil {
		return unavailable("delete student", err)
	}
	return nil
}

func (g *RESTGateway) ListStudents(ctx context.Context, f models.StudentFilter) (*models.StudentPage, error) {
	q := url.Values{"select": {"*"}, "order": {"points.desc,created_at.asc"}}
	if f.Kelas != "" {
		q.Set("kelas", eq(f.Kelas))
	}
	if f.Rombel != "" {
		q.Set("rombel", eq(f.Rombel))
	}
	if f.Angkatan != "" {
		q.Set("angkatan", eq(f.Angkatan))
	}
	if f.Search != "" {
		pattern := ilikeListValue(f.Search)
		q.Set("or", "(student_name.ilike."+pattern+",student_code.ilike."+pattern+")")
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
		q.Set("offset", strconv.Itoa(f.Offset))
	}

	resp, err := g.do(ctx, http.MethodGet, "students", q, nil, "count=exact")
	if err != nil {
		return nil, unavailable("list students", err)
	}
	students, err := decodeRows[models.Student](resp)
	if err != nil {
		return nil, unavailable("list students", err)
	}

	total := len(students)
	if n, ok := parseContentRangeTotal(resp.header.Get("Content-Range")); ok {
		total = n
	}
	return &models.StudentPage{Students: students, Total: total}, nil
}

// parseContentRangeTotal reads the total from a "0-9/42" header
func parseContentRangeTotal(value string) (int, bool) {
	i := strings.LastIndex(value, "/")
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(value[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (g *RESTGateway) UnlockAchievement(ctx context.Context, studentID, achievementID string) error {
	body := models.AchievementUnlock{
		ID:            uuid.New().String(),
		StudentID:     studentID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now().UTC(),
	}
	q := url.Values{"on_conflict": {"student_id,achievement_id"}}
	if _, err := g.do(ctx, http.MethodPost, "achievements", q, body, "resolution=ignore-duplicates,return=minimal"); err != nil {
		return unavailable("unlock achievement", err)
	}
	return nil
}

func (g *RESTGateway) GetAchievements(ctx context.Context, studentID string) ([]models.AchievementUnlock, error) {
	q := url.Values{"student_id": {eq(studentID)}, "select": {"*"}, "order": {"unlocked_at.asc"}}
	resp, err := g.do(ctx, http.MethodGet, "achievements", q, nil, "")
	if err != nil {
		return nil, unavailable("get achievements", err)
	}
	list, err := decodeRows[models.AchievementUnlock](resp)
	if err != nil {
		return nil, unavailable("get achievements", err)
	}
	return list, nil
}

func (g *RESTGateway) SaveChatMessage(ctx context.Context, m models.ChatMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if _, err := g.do(ctx, http.MethodPost, "chat_messages", nil, m, "return=minimal"); err != nil {
		return unavailable("save chat message", err)
	}
	return nil
}

func (g *RESTGateway) GetChatHistory(ctx context.Context, studentID string, limit int) ([]models.ChatMessage, error) {
	q := url.Values{"student_id": {eq(studentID)}, "select": {"*"}, "order": {"created_at.desc"}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	resp, err := g.do(ctx, http.MethodGet, "chat_messages", q, nil, "")
	if err != nil {
		return nil, unavailable("get chat history", err)
	}
	list, err := decodeRows[models.ChatMessage](resp)
	if err != nil {
		return nil, unavailable("get chat history", err)
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (g *RESTGateway) GetInsights(ctx context.Context, studentID string) (*models.StudentInsight, error) {
	q := url.Values{"student_id": {eq(studentID)}, "select": {"*"}}
	resp, err := g.do(ctx, http.MethodGet, "student_insights", q, nil, "")
	if err != nil {
		return nil, unavailable("get insights", err)
	}
	in, err := firstRow[models.StudentInsight](resp)
	if err != nil {
		return nil, unavailable("get insights", err)
	}
	return in, nil
}

func (g *RESTGateway) UpdateInsights(ctx context.Context, in models.StudentInsight) error {
	if in.Topics == nil {
		in.Topics = map[string]float64{}
	}
	in.UpdatedAt = time.Now().UTC()

	// id is omitted so an existing row keeps its own; the backend default fills it on insert
	body := struct {
		StudentID      string             `json:"student_id"`
		Topics         map[string]float64 `json:"topics"`
		LearningStyle  string             `json:"learning_style"`
		CompletionRate float64            `json:"completion_rate"`
		UpdatedAt      time.Time          `json:"updated_at"`
	}{in.StudentID, in.Topics, in.LearningStyle, in.CompletionRate, in.UpdatedAt}

	q := url.Values{"on_conflict": {"student_id"}}
	if _, err := g.do(ctx, http.MethodPost, "student_insights", q, body, "resolution=merge-duplicates,return=minimal"); err != nil {
		return unavailable("update insights", err)
	}
	return nil
}

func (g *RESTGateway) OpenLoginSession(ctx context.Context, s models.LoginSession) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.LoginAt.IsZero() {
		s.LoginAt = time.Now().UTC()
	}
	s.IsActive = true
	if _, err := g.do(ctx, http.MethodPost, "student_sessions", nil, s, "return=minimal"); err != nil {
		return unavailable("open login session", err)
	}
	return nil
}

func (g *RESTGateway) CloseLoginSession(ctx context.Context, token string) error {
	body := map[string]interface{}{"is_active": false, "logout_at": time.Now().UTC()}
	q := url.Values{"session_token": {eq(token)}, "is_active": {"eq.true"}}
	if _, err := g.do(ctx, http.MethodPatch, "student_sessions", q, body, "return=minimal"); err != nil {
		return unavailable("close login session", err)
	}
	return nil
}

// adminRow carries the password hash, which models.Admin keeps out of JSON
type adminRow struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Permissions  []string  `json:"permissions"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r adminRow) toModel() *models.Admin {
	return &models.Admin{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         r.Role,
		Permissions:  r.Permissions,
		CreatedAt:    r.CreatedAt,
	}
}

func (g *RESTGateway) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	q := url.Values{"email": {eq(email)}, "select": {"*"}}
	resp, err := g.do(ctx, http.MethodGet, "admins", q, nil, "")
	if err != nil {
		return nil, unavailable("get admin", err)
	}
	row, err := firstRow[adminRow](resp)
	if err != nil {
		return nil, unavailable("get admin", err)
	}
	if row == nil {
		return nil, nil
	}
	return row.toModel(), nil
}

func (g *RESTGateway) CreateAdmin(ctx context.Context, a models.Admin) (*models.Admin, error) {
	row := adminRow{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Name:         a.Name,
		Role:         a.Role,
		Permissions:  a.Permissions,
		CreatedAt:    time.Now().UTC(),
	}
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	if row.Permissions == nil {
		row.Permissions = []string{}
	}
	if _, err := g.do(ctx, http.MethodPost, "admins", nil, row, "return=minimal"); err != nil {
		return nil, unavailable("create admin", err)
	}
	return row.toModel(), nil
}
