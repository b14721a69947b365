package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
	"wewillshine/internal/repository"
)

// DuplicateGroup describes how one student code with several rows is collapsed
type DuplicateGroup struct {
	Code   string           `json:"code"`
	Keep   models.Student   `json:"keep"`
	Remove []models.Student `json:"remove"`
	Points int              `json:"points"`
	Level  int              `json:"level"`
}

// CleanupReport summarises a duplicate cleanup run
type CleanupReport struct {
	Groups  []DuplicateGroup `json:"groups"`
	Removed int              `json:"removed"`
	DryRun  bool             `json:"dry_run"`
}

// PlanDuplicateCleanup groups rows by student code. The earliest row of each
// group is kept and takes the highest point total of the group. Codes with a
// single row are left out. The plan depends only on the input rows.
func PlanDuplicateCleanup(students []models.Student) []DuplicateGroup {
	byCode := make(map[string][]models.Student)
	for _, s := range students {
		byCode[s.StudentCode] = append(byCode[s.StudentCode], s)
	}

	var groups []DuplicateGroup
	for code, rows := range byCode {
		if len(rows) < 2 {
			continue
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
				return rows[i].CreatedAt.Before(rows[j].CreatedAt)
			}
			return rows[i].ID < rows[j].ID
		})

		points := 0
		for _, r := range rows {
			if r.Points > points {
				points = r.Points
			}
		}
		groups = append(groups, DuplicateGroup{
			Code:   code,
			Keep:   rows[0],
			Remove: append([]models.Student(nil), rows[1:]...),
			Points: points,
			Level:  models.LevelFor(points),
		})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Code < groups[j].Code })
	return groups
}

// CleanupService removes duplicate student rows from the relational store
type CleanupService struct {
	db *database.DB
}

// NewCleanupService creates a cleanup service
func NewCleanupService(db *database.DB) *CleanupService {
	return &CleanupService{db: db}
}

// Run plans the cleanup and, unless dryRun is set, applies it. Each code is
// merged in its own transaction so one failure leaves the other codes done.
func (s *CleanupService) Run(ctx context.Context, dryRun bool) (*CleanupReport, error) {
	students, err := repository.NewStudentRepository(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &CleanupReport{Groups: PlanDuplicateCleanup(students), DryRun: dryRun}
	for _, g := range report.Groups {
		report.Removed += len(g.Remove)
	}
	if dryRun {
		return report, nil
	}

	for _, g := range report.Groups {
		if err := s.merge(ctx, g); err != nil {
			return report, fmt.Errorf("failed to merge %s: %w", g.Code, err)
		}
		log.Printf("Merged %d duplicate rows for %s into %s (points=%d)", len(g.Remove), g.Code, g.Keep.ID, g.Points)
	}
	return report, nil
}

func (s *CleanupService) merge(ctx context.Context, g DuplicateGroup) error {
	return s.db.WithTx(ctx, func(tx *database.Tx) error {
		students := repository.NewStudentRepository(tx)
		achievements := repository.NewAchievementRepository(tx)
		chats := repository.NewChatRepository(tx)

		for _, dup := range g.Remove {
			if err := achievements.MoveToStudent(ctx, dup.ID, g.Keep.ID); err != nil {
				return err
			}
			if err := chats.MoveToStudent(ctx, dup.ID, g.Keep.ID); err != nil {
				return err
			}
			if err := students.Delete(ctx, dup.ID); err != nil {
				return err
			}
		}

		points, level := g.Points, g.Level
		return students.Update(ctx, g.Keep.ID, models.StudentUpdate{Points: &points, Level: &level})
	})
}
