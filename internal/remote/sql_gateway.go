package remote

import (
	"context"
	"fmt"
	"io"
	"log"

	"wewillshine/internal/database"
	"wewillshine/internal/models"
	"wewillshine/internal/repository"
)

// SQLGateway implements Gateway on a relational database through the repository layer
type SQLGateway struct {
	db           *database.DB
	students     *repository.StudentRepository
	achievements *repository.AchievementRepository
	chats        *repository.ChatRepository
	insights     *repository.InsightRepository
	sessions     *repository.LoginSessionRepository
	admins       *repository.AdminRepository
}

// NewSQLGateway wraps an open, migrated database
func NewSQLGateway(db *database.DB) *SQLGateway {
	return &SQLGateway{
		db:           db,
		students:     repository.NewStudentRepository(db),
		achievements: repository.NewAchievementRepository(db),
		chats:        repository.NewChatRepository(db),
		insights:     repository.NewInsightRepository(db),
		sessions:     repository.NewLoginSessionRepository(db),
		admins:       repository.NewAdminRepository(db),
	}
}

// DB exposes the underlying database for maintenance commands
func (g *SQLGateway) DB() *database.DB {
	return g.db
}

func (g *SQLGateway) GetStudent(ctx context.Context, code string) (*models.Student, error) {
	s, err := g.students.GetByCode(ctx, code)
	if err != nil {
		return nil, unavailable("get student", err)
	}
	return s, nil
}

func (g *SQLGateway) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	s, err := g.students.GetByID(ctx, id)
	if err != nil {
		return nil, unavailable("get student", err)
	}
	return s, nil
}

func (g *SQLGateway) CreateStudent(ctx context.Context, s models.Student) (*models.Student, error) {
	created, err := g.students.Create(ctx, s)
	if err != nil {
		return nil, unavailable("create student", err)
	}
	return created, nil
}

func (g *SQLGateway) UpdateStudent(ctx context.Context, id string, u models.StudentUpdate) error {
	if err := g.students.Update(ctx, id, u); err != nil {
		return unavailable("update student", err)
	}
	return nil
}

func (g *SQLGateway) DeleteStudent(ctx context.Context, id string) error {
	err := g.db.WithTx(ctx, func(tx *database.Tx) error {
		return repository.NewStudentRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		return unavailable("delete student", err)
	}
	return nil
}

func (g *SQLGateway) ListStudents(ctx context.Context, f models.StudentFilter) (*models.StudentPage, error) {
	page, err := g.students.List(ctx, f)
	if err != nil {
		return nil, unavailable("list students", err)
	}
	return page, nil
}

func (g *SQLGateway) UnlockAchievement(ctx context.Context, studentID, achievementID string) error {
	if err := g.achievements.Unlock(ctx, studentID, achievementID); err != nil {
		return unavailable("unlock achievement", err)
	}
	return nil
}

func (g *SQLGateway) GetAchievements(ctx context.Context, studentID string) ([]models.AchievementUnlock, error) {
	list, err := g.achievements.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, unavailable("get achievements", err)
	}
	return list, nil
}

func (g *SQLGateway) SaveChatMessage(ctx context.Context, m models.ChatMessage) error {
	if err := g.chats.Save(ctx, m); err != nil {
		return unavailable("save chat message", err)
	}
	return nil
}

func (g *SQLGateway) GetChatHistory(ctx context.Context, studentID string, limit int) ([]models.ChatMessage, error) {
	list, err := g.chats.History(ctx, studentID, limit)
	if err != nil {
		return nil, unavailable("get chat history", err)
	}
	return list, nil
}

func (g *SQLGateway) GetInsights(ctx context.Context, studentID string) (*models.StudentInsight, error) {
	in, err := g.insights.Get(ctx, studentID)
	if err != nil {
		return nil, unavailable("get insights", err)
	}
	return in, nil
}

func (g *SQLGateway) UpdateInsights(ctx context.Context, in models.StudentInsight) error {
	if err := g.insights.Upsert(ctx, in); err != nil {
		return unavailable("update insights", err)
	}
	return nil
}

func (g *SQLGateway) OpenLoginSession(ctx context.Context, s models.LoginSession) error {
	if err := g.sessions.Open(ctx, s); err != nil {
		return unavailable("open login session", err)
	}
	return nil
}

func (g *SQLGateway) CloseLoginSession(ctx context.Context, token string) error {
	if err := g.sessions.Close(ctx, token); err != nil {
		return unavailable("close login session", err)
	}
	return nil
}

func (g *SQLGateway) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	a, err := g.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, unavailable("get admin", err)
	}
	return a, nil
}

func (g *SQLGateway) CreateAdmin(ctx context.Context, a models.Admin) (*models.Admin, error) {
	created, err := g.admins.Create(ctx, a)
	if err != nil {
		return nil, unavailable("create admin", err)
	}
	return created, nil
}

// Close closes the database
func (g *SQLGateway) Close() error {
	return g.db.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the gateway named by opts.Mode: "sql", "rest" or "off".
// The returned closer releases the gateway's resources.
func Open(opts Options) (Gateway, io.Closer, error) {
	switch opts.Mode {
	case "off", "offline":
		log.Printf("Remote sync disabled, running local-only")
		return Offline{}, nopCloser{}, nil
	case "rest":
		g, err := NewRESTGateway(opts.URL, opts.APIKey, opts.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return g, nopCloser{}, nil
	case "sql", "":
		db, err := database.Open(opts.DatabaseType, opts.DatabaseURL, opts.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open remote database: %w", err)
		}
		if opts.Migrations != "" {
			if err := db.RunMigrations(opts.Migrations); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}
		return NewSQLGateway(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported remote mode: %s", opts.Mode)
	}
}
