package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
	"wewillshine/internal/repository"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData is the portable snapshot of the relational store
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Students   []StudentBackup `json:"students"`
}

// StudentBackup carries one student row and everything recorded for it
type StudentBackup struct {
	Student       models.Student             `json:"student"`
	Achievements  []models.AchievementUnlock `json:"achievements"`
	Chat          []models.ChatMessage       `json:"chat"`
	Insight       *models.StudentInsight     `json:"insight,omitempty"`
	LoginSessions []models.LoginSession      `json:"login_sessions"`
}

// BackupService exports and restores the student records
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a JSON snapshot of every student to w
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	log.Println("Starting database export...")

	students, err := repository.NewStudentRepository(s.db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export students: %w", err)
	}

	achievements := repository.NewAchievementRepository(s.db)
	chats := repository.NewChatRepository(s.db)
	insights := repository.NewInsightRepository(s.db)
	logins := repository.NewLoginSessionRepository(s.db)

	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Students:   make([]StudentBackup, 0, len(students)),
	}
	for _, st := range students {
		entry := StudentBackup{Student: st}
		if entry.Achievements, err = achievements.ListByStudent(ctx, st.ID); err != nil {
			return nil, fmt.Errorf("failed to export achievements for %s: %w", st.StudentCode, err)
		}
		if entry.Chat, err = chats.History(ctx, st.ID, 0); err != nil {
			return nil, fmt.Errorf("failed to export chat for %s: %w", st.StudentCode, err)
		}
		if entry.Insight, err = insights.Get(ctx, st.ID); err != nil {
			return nil, fmt.Errorf("failed to export insights for %s: %w", st.StudentCode, err)
		}
		if entry.LoginSessions, err = logins.ListByStudent(ctx, st.ID); err != nil {
			return nil, fmt.Errorf("failed to export login sessions for %s: %w", st.StudentCode, err)
		}
		backup.Students = append(backup.Students, entry)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d students", len(backup.Students))
	return backup, nil
}

// Import restores students from a snapshot read from r. Students whose ID
// already exists are skipped whole, so importing the same file twice is safe.
// Login sessions are audit data and are not restored.
func (s *BackupService) Import(ctx context.Context, r io.Reader) (restored int, err error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version %q", backup.Version)
	}
	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	err = s.db.WithTx(ctx, func(tx *database.Tx) error {
		students := repository.NewStudentRepository(tx)
		achievements := repository.NewAchievementRepository(tx)
		chats := repository.NewChatRepository(tx)
		insights := repository.NewInsightRepository(tx)

		for _, entry := range backup.Students {
			existing, err := students.GetByID(ctx, entry.Student.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				log.Printf("Skipping %s: student %s already exists", entry.Student.StudentCode, entry.Student.ID)
				continue
			}

			if _, err := students.Create(ctx, entry.Student); err != nil {
				return err
			}
			for _, a := range entry.Achievements {
				if err := achievements.Unlock(ctx, entry.Student.ID, a.AchievementID); err != nil {
					return err
				}
			}
			for _, m := range entry.Chat {
				m.StudentID = entry.Student.ID
				if err := chats.Save(ctx, m); err != nil {
					return err
				}
			}
			if entry.Insight != nil {
				in := *entry.Insight
				in.StudentID = entry.Student.ID
				if err := insights.Upsert(ctx, in); err != nil {
					return err
				}
			}
			restored++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import backup: %w", err)
	}

	log.Printf("Imported %d of %d students", restored, len(backup.Students))
	return restored, nil
}
