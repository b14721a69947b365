package remote

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"wewillshine/internal/models"
)

func openSQLGateway(t *testing.T) Gateway {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping SQL gateway test in short mode")
	}

	g, closer, err := Open(Options{
		Mode:         "sql",
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "remote.db"),
		Migrations:   "../../migrations",
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { closer.Close() })
	return g
}

func TestSQLGatewayStudentLifecycle(t *testing.T) {
	g := openSQLGateway(t)
	ctx := context.Background()

	s, err := g.GetStudent(ctx, "INSPIRE2025DA")
	if err != nil || s != nil {
		t.Fatalf("GetStudent() on empty store = %v, %v", s, err)
	}

	created, err := g.CreateStudent(ctx, models.Student{StudentCode: "INSPIRE2025DA", StudentName: "DIYA AISYAH", Level: 1})
	if err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}

	points, level := 150, 2
	if err := g.UpdateStudent(ctx, created.ID, models.StudentUpdate{Points: &points, Level: &level}); err != nil {
		t.Fatalf("UpdateStudent() error = %v", err)
	}
	if err := g.UnlockAchievement(ctx, created.ID, "first-login"); err != nil {
		t.Fatalf("UnlockAchievement() error = %v", err)
	}
	if err := g.UnlockAchievement(ctx, created.ID, "first-login"); err != nil {
		t.Fatalf("second UnlockAchievement() error = %v", err)
	}
	if err := g.SaveChatMessage(ctx, models.ChatMessage{StudentID: created.ID, Type: models.ChatTypeUser, Message: "halo"}); err != nil {
		t.Fatalf("SaveChatMessage() error = %v", err)
	}
	if err := g.UpdateInsights(ctx, models.StudentInsight{StudentID: created.ID, Topics: map[string]float64{"ai": 1}}); err != nil {
		t.Fatalf("UpdateInsights() error = %v", err)
	}

	a, err := Analytics(ctx, g, created.ID, 50)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if a.Student.Points != 150 || len(a.Achievements) != 1 || len(a.Chats) != 1 || a.Insights == nil {
		t.Errorf("Analytics() = %+v", a)
	}

	if err := g.DeleteStudent(ctx, created.ID); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}
	gone, err := Analytics(ctx, g, created.ID, 50)
	if err != nil || gone.Student != nil {
		t.Errorf("Analytics() after delete = %+v, %v", gone, err)
	}
}

func TestSQLGatewayLoginSessions(t *testing.T) {
	g := openSQLGateway(t)
	ctx := context.Background()

	s, _ := g.CreateStudent(ctx, models.Student{StudentCode: "INSPIRE2025AS", StudentName: "ADINDA SALSABILA", Level: 1})
	if err := g.OpenLoginSession(ctx, models.LoginSession{StudentID: s.ID, SessionToken: "tok"}); err != nil {
		t.Fatalf("OpenLoginSession() error = %v", err)
	}
	if err := g.CloseLoginSession(ctx, "tok"); err != nil {
		t.Fatalf("CloseLoginSession() error = %v", err)
	}
}

func TestOfflineAlwaysUnavailable(t *testing.T) {
	var g Gateway = Offline{}
	ctx := context.Background()

	if _, err := g.GetStudent(ctx, "X"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("GetStudent() error = %v", err)
	}
	if err := g.UnlockAchievement(ctx, "a", "b"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("UnlockAchievement() error = %v", err)
	}
	if _, err := g.ListStudents(ctx, models.StudentFilter{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ListStudents() error = %v", err)
	}
}

func TestOpenUnknownMode(t *testing.T) {
	if _, _, err := Open(Options{Mode: "carrier-pigeon"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}
