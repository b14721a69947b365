package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
	"wewillshine/internal/repository"
)

func openMigratedDB(t *testing.T, name string) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	return db
}

func TestBackupExportImport(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping backup integration test in short mode")
	}

	ctx := context.Background()
	src := openMigratedDB(t, "src.db")

	st, err := repository.NewStudentRepository(src).Create(ctx, models.Student{
		StudentCode: "INSPIRE2025KRS", StudentName: "KANAYA RASHEEDA SYAM", Points: 75, Level: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := repository.NewAchievementRepository(src).Unlock(ctx, st.ID, "first-login"); err != nil {
		t.Fatal(err)
	}
	if err := repository.NewChatRepository(src).Save(ctx, models.ChatMessage{StudentID: st.ID, Type: models.ChatTypeUser, Message: "halo"}); err != nil {
		t.Fatal(err)
	}
	if err := repository.NewInsightRepository(src).Upsert(ctx, models.StudentInsight{
		StudentID: st.ID, Topics: map[string]float64{"tech": 0.5}, LearningStyle: "tech", CompletionRate: 0.25,
	}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	backup, err := NewBackupService(src).Export(ctx, &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(backup.Students) != 1 || len(backup.Students[0].Chat) != 1 || backup.Students[0].Insight == nil {
		t.Fatalf("unexpected export: %+v", backup)
	}
	data := buf.Bytes()

	dst := openMigratedDB(t, "dst.db")
	svc := NewBackupService(dst)
	n, err := svc.Import(ctx, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if n != 1 {
		t.Errorf("restored = %d, want 1", n)
	}

	got, err := repository.NewStudentRepository(dst).GetByID(ctx, st.ID)
	if err != nil || got == nil {
		t.Fatalf("restored student = %+v, %v", got, err)
	}
	if got.Points != 75 {
		t.Errorf("points = %d, want 75", got.Points)
	}
	unlocks, _ := repository.NewAchievementRepository(dst).ListByStudent(ctx, st.ID)
	if len(unlocks) != 1 {
		t.Errorf("unlocks = %d, want 1", len(unlocks))
	}
	insight, _ := repository.NewInsightRepository(dst).Get(ctx, st.ID)
	if insight == nil || insight.LearningStyle != "tech" {
		t.Errorf("insight = %+v", insight)
	}

	again, err := svc.Import(ctx, bytes.NewReader(data))
	if err != nil || again != 0 {
		t.Errorf("second Import() = %d, %v; want 0, nil", again, err)
	}
}

func TestBackupImportRejectsVersion(t *testing.T) {
	svc := NewBackupService(nil)
	_, err := svc.Import(context.Background(), strings.NewReader(`{"version":"0.1","students":[]}`))
	if err == nil || !strings.Contains(err.Error(), "unsupported backup version") {
		t.Errorf("Import() error = %v, want version error", err)
	}
}
