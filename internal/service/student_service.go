package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"wewillshine/internal/catalog"
	"wewillshine/internal/chat"
	"wewillshine/internal/directory"
	"wewillshine/internal/models"
	"wewillshine/internal/progress"
	"wewillshine/internal/quiz"
	"wewillshine/internal/remote"
	"wewillshine/internal/session"
	"wewillshine/internal/validation"
)

// Points awarded per action
const (
	PointsExplore = 10
	PointsQuote   = 2
	PointsChat    = 5
	PointsDream   = 5
	PointsQuiz    = 50
)

// ErrNotLoggedIn is returned by student actions when no session is active
var ErrNotLoggedIn = errors.New("not logged in")

// StudentDeps are the collaborators of a StudentService
type StudentDeps struct {
	Sessions  *session.Manager
	Progress  *progress.Store
	Responder *chat.Responder
	Gateway   remote.Gateway
	Outbox    progress.Outbox
	Settings  *SettingsService
	Email     *EmailService
	Rand      *rand.Rand
}

// StudentService is the student-facing application. It owns the one active
// session of this device and keeps progress, achievements and the remote
// mirror consistent across actions.
type StudentService struct {
	sessions  *session.Manager
	progress  *progress.Store
	responder *chat.Responder
	gateway   remote.Gateway
	outbox    progress.Outbox
	settings  *SettingsService
	email     *EmailService
	now       func() time.Time

	mu    sync.Mutex
	rng   *rand.Rand
	rngMu sync.Mutex
}

// ChatReply is the bot answer to one student message
type ChatReply struct {
	Bucket   chat.Bucket      `json:"bucket"`
	Reply    string           `json:"reply"`
	Progress *models.Progress `json:"progress"`
}

// QuizResult is the outcome of a completed quiz
type QuizResult struct {
	Trait      quiz.Trait       `json:"trait"`
	Motivation string           `json:"motivation"`
	First      bool             `json:"first"`
	Progress   *models.Progress `json:"progress"`
}

// QuoteResult is a quote shown to the student
type QuoteResult struct {
	Quote    string           `json:"quote"`
	Progress *models.Progress `json:"progress"`
}

// NewStudentService creates the student application
func NewStudentService(deps StudentDeps) *StudentService {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	responder := deps.Responder
	if responder == nil {
		responder = chat.NewResponder(nil)
	}
	gateway := deps.Gateway
	if gateway == nil {
		gateway = remote.Offline{}
	}
	return &StudentService{
		sessions:  deps.Sessions,
		progress:  deps.Progress,
		responder: responder,
		gateway:   gateway,
		outbox:    deps.Outbox,
		settings:  deps.Settings,
		email:     deps.Email,
		now:       time.Now,
		rng:       rng,
	}
}

// SetClock replaces the time source used for remote timestamps, for tests
func (s *StudentService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Progress exposes the progress store so callers can subscribe to changes
func (s *StudentService) Progress() *progress.Store {
	return s.progress
}

// Restore brings back the session and progress persisted by a previous run.
// A record without a live session is discarded; a live session without a
// matching record logs the student in again.
func (s *StudentService) Restore(ctx context.Context) (*models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.sessions.Read()
	p, err := s.progress.Restore()
	if err != nil {
		return nil, err
	}

	if code == "" {
		if p != nil {
			log.Printf("Discarding progress for %s: no active session", p.StudentCode)
			return nil, s.progress.Logout()
		}
		return nil, nil
	}
	if p != nil && p.StudentCode == code {
		return p, nil
	}

	identity, ok := directory.Resolve(code)
	if !ok {
		log.Printf("Warning: session code %s is not in the directory, logging out", code)
		if err := s.sessions.Logout(); err != nil {
			log.Printf("Warning: failed to clear session: %v", err)
		}
		return nil, s.progress.Logout()
	}
	if _, err := s.progress.Login(ctx, identity); err != nil {
		return nil, err
	}
	if err := s.evaluate(); err != nil {
		return nil, err
	}
	return s.progress.Snapshot(), nil
}

// Login resolves a gift code, opens a session and loads the student's progress
func (s *StudentService) Login(ctx context.Context, code string, device models.DeviceInfo) (*models.Progress, error) {
	identity, err := directory.MustResolve(code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.sessions.Current()
	prevProgress := s.progress.Snapshot()

	record, err := s.sessions.Login(identity.Code)
	if err != nil {
		return nil, err
	}
	// A login without a logout replaces the previous session
	if prev != nil && prevProgress != nil {
		s.closeLoginRow(prev, prevProgress)
	}

	p, err := s.progress.Login(ctx, identity)
	if err != nil {
		if lerr := s.sessions.Logout(); lerr != nil {
			log.Printf("Warning: failed to drop session after progress load failure: %v", lerr)
		}
		if lerr := s.progress.Logout(); lerr != nil {
			log.Printf("Warning: failed to clear progress after login failure: %v", lerr)
		}
		return nil, err
	}
	log.Printf("Student logged in: %s (%s) local_only=%t", identity.Code, identity.Name, p.LocalOnly)

	if p.RemoteID != "" {
		row := models.LoginSession{
			StudentID:    p.RemoteID,
			SessionToken: record.Token,
			IsActive:     true,
			DeviceType:   device.DeviceType,
			Browser:      device.Browser,
			OS:           device.OS,
			IPAddress:    device.IPAddress,
			UserAgent:    device.UserAgent,
			LoginAt:      record.CreatedAt,
		}
		s.outbox.Enqueue(progress.Op{
			Name: "open-login-session",
			Run: func(ctx context.Context) error {
				return s.gateway.OpenLoginSession(ctx, row)
			},
		})
	}

	if err := s.evaluate(); err != nil {
		return nil, err
	}
	return s.progress.Snapshot(), nil
}

// Logout ends the session and drops local progress. The remote login row is closed.
func (s *StudentService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.sessions.Current()
	p := s.progress.Snapshot()

	if err := s.progress.Logout(); err != nil {
		return err
	}
	if err := s.sessions.Logout(); err != nil {
		return err
	}

	if record != nil && p != nil {
		s.closeLoginRow(record, p)
	}
	return nil
}

// closeLoginRow marks the remote login row of a finished session inactive
func (s *StudentService) closeLoginRow(record *models.SessionRecord, p *models.Progress) {
	if p.RemoteID == "" {
		return
	}
	token := record.Token
	s.outbox.Enqueue(progress.Op{
		Name: "close-login-session",
		Run: func(ctx context.Context) error {
			return s.gateway.CloseLoginSession(ctx, token)
		},
	})
}

// Current returns the progress of the logged-in student
func (s *StudentService) Current() (*models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

// current checks the session lazily; an expired session also drops the progress record
func (s *StudentService) current() (*models.Progress, error) {
	if s.sessions.Read() == "" {
		if s.progress.Snapshot() != nil {
			if err := s.progress.Logout(); err != nil {
				log.Printf("Warning: failed to clear progress after session end: %v", err)
			}
		}
		return nil, ErrNotLoggedIn
	}
	p := s.progress.Snapshot()
	if p == nil {
		return nil, ErrNotLoggedIn
	}
	return p, nil
}

// Welcome returns the chatbot greeting for the logged-in student
func (s *StudentService) Welcome() (string, error) {
	p, err := s.Current()
	if err != nil {
		return "", err
	}
	return chat.Welcome(quiz.FirstName(p.StudentName)), nil
}

// ExploreCareer marks a career as explored. Only the first visit earns points.
func (s *StudentService) ExploreCareer(id int) (*models.Progress, error) {
	if _, ok := catalog.CareerByID(id); !ok {
		return nil, validation.ValidationError{Field: "career", Message: "karir tidak ditemukan"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.current(); err != nil {
		return nil, err
	}

	added, err := s.progress.ExploreItem(id)
	if err != nil {
		return nil, err
	}
	if added {
		if err := s.progress.AddPoints(PointsExplore); err != nil {
			return nil, err
		}
	}
	return s.finish()
}

// ReadQuote picks a random quote and counts it as read
func (s *StudentService) ReadQuote() (*QuoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.current(); err != nil {
		return nil, err
	}

	s.rngMu.Lock()
	quote := catalog.RandomQuote(s.rng)
	s.rngMu.Unlock()

	if err := s.progress.IncrementQuoteCount(); err != nil {
		return nil, err
	}
	if err := s.progress.AddPoints(PointsQuote); err != nil {
		return nil, err
	}
	p, err := s.finish()
	if err != nil {
		return nil, err
	}
	return &QuoteResult{Quote: quote, Progress: p}, nil
}

// Chat answers one student message and logs the exchange remotely
func (s *StudentService) Chat(message string) (*ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validation.ValidationError{Field: "message", Message: "pesan tidak boleh kosong"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.current()
	if err != nil {
		return nil, err
	}

	bucket, reply := s.responder.Respond(message)
	if err := s.progress.IncrementChatCount(); err != nil {
		return nil, err
	}
	if err := s.progress.AddPoints(PointsChat); err != nil {
		return nil, err
	}

	if p.RemoteID != "" {
		at := s.now()
		s.saveChat(models.ChatMessage{StudentID: p.RemoteID, Type: models.ChatTypeUser, Message: message, CreatedAt: at})
		s.saveChat(models.ChatMessage{StudentID: p.RemoteID, Type: models.ChatTypeBot, Message: reply, CreatedAt: at.Add(time.Millisecond)})
	}

	next, err := s.finish()
	if err != nil {
		return nil, err
	}
	return &ChatReply{Bucket: bucket, Reply: reply, Progress: next}, nil
}

func (s *StudentService) saveChat(m models.ChatMessage) {
	s.outbox.Enqueue(progress.Op{
		Name: "save-chat-" + m.Type,
		Run: func(ctx context.Context) error {
			return s.gateway.SaveChatMessage(ctx, m)
		},
	})
}

// SubmitQuiz classifies six answers and stores the personalised motivation.
// Only the first completion earns points; retakes overwrite the result.
func (s *StudentService) SubmitQuiz(answers []string) (*QuizResult, error) {
	if err := quiz.Validate(answers); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.current()
	if err != nil {
		return nil, err
	}

	trait := quiz.Classify(answers)
	motivation := quiz.Motivation(quiz.FirstName(p.StudentName), answers)
	first, err := s.progress.CompleteQuiz(answers, motivation)
	if err != nil {
		return nil, err
	}
	if first {
		if err := s.progress.AddPoints(PointsQuiz); err != nil {
			return nil, err
		}
	}

	if p.RemoteID != "" {
		insight := quizInsight(p, answers, trait)
		s.outbox.Enqueue(progress.Op{
			Name: "update-insights",
			Run: func(ctx context.Context) error {
				return s.gateway.UpdateInsights(ctx, insight)
			},
		})
	}

	next, err := s.finish()
	if err != nil {
		return nil, err
	}
	return &QuizResult{Trait: trait, Motivation: motivation, First: first, Progress: next}, nil
}

// quizInsight turns quiz answers into the interest profile shown to teachers
func quizInsight(p *models.Progress, answers []string, trait quiz.Trait) models.StudentInsight {
	topics := make(map[string]float64, len(quiz.Traits))
	for t, n := range quiz.Scores(answers) {
		topics[string(t)] = float64(n) / float64(len(answers))
	}
	return models.StudentInsight{
		StudentID:      p.RemoteID,
		Topics:         topics,
		LearningStyle:  string(trait),
		CompletionRate: float64(len(p.ExploredItems)) / float64(catalog.CareerCount()),
	}
}

// AddDream pins a new dream to the board
func (s *StudentService) AddDream(text, date, color string) (models.Dream, *models.Progress, error) {
	if err := validation.ValidateDream(text, date, color); err != nil {
		return models.Dream{}, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.current(); err != nil {
		return models.Dream{}, nil, err
	}

	dream, err := s.progress.AddDream(models.Dream{Text: strings.TrimSpace(text), Date: date, Color: color})
	if err != nil {
		return models.Dream{}, nil, err
	}
	if err := s.progress.AddPoints(PointsDream); err != nil {
		return models.Dream{}, nil, err
	}
	p, err := s.finish()
	if err != nil {
		return models.Dream{}, nil, err
	}
	return dream, p, nil
}

// RemoveDream unpins a dream. Points are kept.
func (s *StudentService) RemoveDream(id int64) (*models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.current(); err != nil {
		return nil, err
	}
	if err := s.progress.RemoveDream(id); err != nil {
		return nil, err
	}
	return s.progress.Snapshot(), nil
}

func (s *StudentService) finish() (*models.Progress, error) {
	if err := s.evaluate(); err != nil {
		return nil, err
	}
	return s.progress.Snapshot(), nil
}

// evaluate unlocks every achievement whose rule now holds
func (s *StudentService) evaluate() error {
	p := s.progress.Snapshot()
	for _, id := range catalog.Evaluate(p) {
		flipped, err := s.progress.UnlockAchievement(id)
		if err != nil {
			return fmt.Errorf("failed to unlock %s: %w", id, err)
		}
		if flipped {
			s.notifyAchievement(p, id)
		}
	}
	return nil
}

func (s *StudentService) notifyAchievement(p *models.Progress, id string) {
	if !s.email.IsEnabled() || s.settings == nil {
		return
	}
	settings, err := s.settings.Get()
	if err != nil {
		log.Printf("Warning: failed to read settings for notification: %v", err)
		return
	}
	if !settings.Notifications.Enabled || !settings.Notifications.Achievements {
		return
	}
	achievement, ok := catalog.AchievementByID(id)
	if !ok {
		return
	}

	name, code := p.StudentName, p.StudentCode
	s.outbox.Enqueue(progress.Op{
		Name: "email-" + id,
		Run: func(ctx context.Context) error {
			return s.email.SendAchievementEmail(ctx, name, code, achievement)
		},
	})
}
