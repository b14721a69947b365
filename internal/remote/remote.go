// Package remote talks to the hosted record store that mirrors student progress.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wewillshine/internal/models"
)

// ErrUnavailable wraps every transport or backend failure
var ErrUnavailable = errors.New("remote store unavailable")

// Gateway is the full contract of the hosted record store. Lookups return (nil, nil)
// when the row does not exist.
type Gateway interface {
	GetStudent(ctx context.Context, code string) (*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, s models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, u models.StudentUpdate) error
	DeleteStudent(ctx context.Context, id string) error
	ListStudents(ctx context.Context, f models.StudentFilter) (*models.StudentPage, error)

	UnlockAchievement(ctx context.Context, studentID, achievementID string) error
	GetAchievements(ctx context.Context, studentID string) ([]models.AchievementUnlock, error)

	SaveChatMessage(ctx context.Context, m models.ChatMessage) error
	GetChatHistory(ctx context.Context, studentID string, limit int) ([]models.ChatMessage, error)

	GetInsights(ctx context.Context, studentID string) (*models.StudentInsight, error)
	UpdateInsights(ctx context.Context, in models.StudentInsight) error

	OpenLoginSession(ctx context.Context, s models.LoginSession) error
	CloseLoginSession(ctx context.Context, token string) error

	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a models.Admin) (*models.Admin, error)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrUnavailable, op, err)
}

// Analytics gathers the admin view of one student. The student row is nil when unknown.
func Analytics(ctx context.Context, g Gateway, studentID string, chatLimit int) (*models.StudentAnalytics, error) {
	student, err := g.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := &models.StudentAnalytics{Student: student}
	if student == nil {
		return out, nil
	}

	if out.Achievements, err = g.GetAchievements(ctx, studentID); err != nil {
		return nil, err
	}
	if out.Chats, err = g.GetChatHistory(ctx, studentID, chatLimit); err != nil {
		return nil, err
	}
	if out.Insights, err = g.GetInsights(ctx, studentID); err != nil {
		return nil, err
	}
	return out, nil
}

// Offline is the gateway used when no remote store is configured. Every call fails with ErrUnavailable.
type Offline struct{}

var errOffline = errors.New("remote sync disabled")

func (Offline) GetStudent(context.Context, string) (*models.Student, error) {
	return nil, unavailable("get student", errOffline)
}

func (Offline) GetStudentByID(context.Context, string) (*models.Student, error) {
	return nil, unavailable("get student", errOffline)
}

func (Offline) CreateStudent(context.Context, models.Student) (*models.Student, error) {
	return nil, unavailable("create student", errOffline)
}

func (Offline) UpdateStudent(context.Context, string, models.StudentUpdate) error {
	return unavailable("update student", errOffline)
}

func (Offline) DeleteStudent(context.Context, string) error {
	return unavailable("delete student", errOffline)
}

func (Offline) ListStudents(context.Context, models.StudentFilter) (*models.StudentPage, error) {
	return nil, unavailable("list students", errOffline)
}

func (Offline) UnlockAchievement(context.Context, string, string) error {
	return unavailable("unlock achievement", errOffline)
}

func (Offline) GetAchievements(context.Context, string) ([]models.AchievementUnlock, error) {
	return nil, unavailable("get achievements", errOffline)
}

func (Offline) SaveChatMessage(context.Context, models.ChatMessage) error {
	return unavailable("save chat message", errOffline)
}

func (Offline) GetChatHistory(context.Context, string, int) ([]models.ChatMessage, error) {
	return nil, unavailable("get chat history", errOffline)
}

func (Offline) GetInsights(context.Context, string) (*models.StudentInsight, error) {
	return nil, unavailable("get insights", errOffline)
}

func (Offline) UpdateInsights(context.Context, models.StudentInsight) error {
	return unavailable("update insights", errOffline)
}

func (Offline) OpenLoginSession(context.Context, models.LoginSession) error {
	return unavailable("open login session", errOffline)
}

func (Offline) CloseLoginSession(context.Context, string) error {
	return unavailable("close login session", errOffline)
}

func (Offline) GetAdminByEmail(context.Context, string) (*models.Admin, error) {
	return nil, unavailable("get admin", errOffline)
}

func (Offline) CreateAdmin(context.Context, models.Admin) (*models.Admin, error) {
	return nil, unavailable("create admin", errOffline)
}

// Options selects and configures a gateway implementation
type Options struct {
	Mode         string
	DatabaseType string
	DatabaseURL  string
	DatabasePath string
	Migrations   string
	URL          string
	APIKey       string
	Timeout      time.Duration
}
