// Package progress owns the gamification record of the logged-in student.
// The local copy is authoritative; the remote store is mirrored best-effort.
package progress

import (
	"context"
	"log"
	"sync"
	"time"

	"wewillshine/internal/catalog"
	"wewillshine/internal/models"
)

// Gateway is the part of the remote store the progress record depends on
type Gateway interface {
	GetStudent(ctx context.Context, code string) (*models.Student, error)
	CreateStudent(ctx context.Context, s models.Student) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, u models.StudentUpdate) error
	UnlockAchievement(ctx context.Context, studentID, achievementID string) error
}

// DefaultLoginTimeout bounds the remote lookup done at login
const DefaultLoginTimeout = 5 * time.Second

// Store holds the live progress record. Every mutator copies the current record,
// computes the next one, saves it, publishes it and then queues any remote work.
// Mutators are no-ops while nobody is logged in.
type Store struct {
	repo         Repository
	gateway      Gateway
	outbox       Outbox
	now          func() time.Time
	loginTimeout time.Duration

	mu          sync.Mutex
	current     *models.Progress
	lastDreamID int64
	subs        map[int]func(*models.Progress)
	nextSub     int
}

// NewStore creates a progress store
func NewStore(repo Repository, gateway Gateway, outbox Outbox) *Store {
	return &Store{
		repo:         repo,
		gateway:      gateway,
		outbox:       outbox,
		now:          time.Now,
		loginTimeout: DefaultLoginTimeout,
		subs:         make(map[int]func(*models.Progress)),
	}
}

// SetClock replaces the time source, for tests
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetLoginTimeout changes how long Login waits for the remote store
func (s *Store) SetLoginTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d > 0 {
		s.loginTimeout = d
	}
}

// Subscribe registers fn to receive a copy of every new record (nil after logout).
// fn runs synchronously and must not call back into the Store.
func (s *Store) Subscribe(fn func(*models.Progress)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Snapshot returns a copy of the current record, or nil when logged out
func (s *Store) Snapshot() *models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

func (s *Store) publish() {
	for _, fn := range s.subs {
		fn(s.current.Clone())
	}
}

// commit saves next and makes it current. Caller holds s.mu.
func (s *Store) commit(next *models.Progress) error {
	next.Level = models.LevelFor(next.Points)
	if err := s.repo.Save(next); err != nil {
		return err
	}
	s.current = next
	s.publish()
	return nil
}

func newRecord(identity models.StudentIdentity) *models.Progress {
	return &models.Progress{
		StudentCode:   identity.Code,
		StudentID:     identity.ID,
		StudentName:   identity.Name,
		Level:         1,
		ExploredItems: []int{},
		Achievements:  catalog.Achievements(),
		Dreams:        []models.Dream{},
		QuizAnswers:   []string{},
	}
}

// Login replaces the current record with a fresh one for identity. Points are
// seeded from the remote store; when it cannot be reached within the login
// timeout the record starts at zero in local-only mode. Remote failures are
// logged, never returned.
func (s *Store) Login(ctx context.Context, identity models.StudentIdentity) (*models.Progress, error) {
	s.mu.Lock()
	timeout := s.loginTimeout
	s.mu.Unlock()

	next := newRecord(identity)

	remote, err := s.fetchOrCreate(ctx, identity, timeout)
	if err != nil {
		log.Printf("Warning: remote store unavailable at login for %s, continuing local-only: %v", identity.Code, err)
		next.LocalOnly = true
	} else {
		next.RemoteID = remote.ID
		next.Points = remote.Points
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDreamID = 0
	if err := s.commit(next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

func (s *Store) fetchOrCreate(ctx context.Context, identity models.StudentIdentity, timeout time.Duration) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	student, err := s.gateway.GetStudent(ctx, identity.Code)
	if err != nil {
		return nil, err
	}
	if student != nil {
		return student, nil
	}
	return s.gateway.CreateStudent(ctx, models.Student{
		StudentCode: identity.Code,
		StudentName: identity.Name,
		Points:      0,
		Level:       1,
	})
}

// Restore loads the persisted record, if any, as the current one
func (s *Store) Restore() (*models.Progress, error) {
	p, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	s.lastDreamID = 0
	if p != nil {
		for _, d := range p.Dreams {
			if d.ID > s.lastDreamID {
				s.lastDreamID = d.ID
			}
		}
	}
	s.publish()
	return p.Clone(), nil
}

// Logout drops the record locally. The remote row is kept.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Clear(); err != nil {
		return err
	}
	s.current = nil
	s.publish()
	return nil
}

// AddPoints adds delta points and mirrors the new total remotely. Points never go below zero.
func (s *Store) AddPoints(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}

	next := s.current.Clone()
	next.Points += delta
	if next.Points < 0 {
		next.Points = 0
	}
	if err := s.commit(next); err != nil {
		return err
	}

	if next.RemoteID != "" {
		id, points, level := next.RemoteID, next.Points, next.Level
		s.outbox.Enqueue(Op{
			Name: "update-points",
			Run: func(ctx context.Context) error {
				return s.gateway.UpdateStudent(ctx, id, models.StudentUpdate{Points: &points, Level: &level})
			},
		})
	}
	return nil
}

// ExploreItem marks a career as explored. It reports whether the id was new.
func (s *Store) ExploreItem(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.HasExplored(id) {
		return false, nil
	}

	next := s.current.Clone()
	next.ExploredItems = append(next.ExploredItems, id)
	if err := s.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// UnlockAchievement flips an achievement to unlocked. Only the first unlock is
// mirrored remotely; it reports whether this call did the flip.
func (s *Store) UnlockAchievement(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.IsUnlocked(id) {
		return false, nil
	}

	next := s.current.Clone()
	found := false
	for i := range next.Achievements {
		if next.Achievements[i].ID == id {
			next.Achievements[i].Unlocked = true
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	if err := s.commit(next); err != nil {
		return false, err
	}

	if next.RemoteID != "" {
		studentID := next.RemoteID
		s.outbox.Enqueue(Op{
			Name: "unlock-" + id,
			Run: func(ctx context.Context) error {
				return s.gateway.UnlockAchievement(ctx, studentID, id)
			},
		})
	}
	return true, nil
}

// AddDream pins a dream and returns it with its assigned id. Ids come from the
// clock in milliseconds and stay strictly increasing.
func (s *Store) AddDream(d models.Dream) (models.Dream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Dream{}, nil
	}

	id := s.now().UnixMilli()
	if id <= s.lastDreamID {
		id = s.lastDreamID + 1
	}
	d.ID = id

	next := s.current.Clone()
	next.Dreams = append(next.Dreams, d)
	if err := s.commit(next); err != nil {
		return models.Dream{}, err
	}
	s.lastDreamID = id
	return d, nil
}

// RemoveDream deletes the dream with id. An unknown id changes nothing.
func (s *Store) RemoveDream(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}

	next := s.current.Clone()
	kept := next.Dreams[:0]
	for _, d := range next.Dreams {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(s.current.Dreams) {
		return nil
	}
	next.Dreams = kept
	return s.commit(next)
}

// IncrementQuoteCount records one quote read
func (s *Store) IncrementQuoteCount() error {
	return s.bump(func(p *models.Progress) { p.QuoteCount++ })
}

// IncrementChatCount records one chat message
func (s *Store) IncrementChatCount() error {
	return s.bump(func(p *models.Progress) { p.ChatCount++ })
}

func (s *Store) bump(fn func(p *models.Progress)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	next := s.current.Clone()
	fn(next)
	return s.commit(next)
}

// CompleteQuiz stores a quiz result, replacing any earlier one. It reports
// whether this was the first completion.
func (s *Store) CompleteQuiz(answers []string, motivation string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false, nil
	}

	first := !s.current.QuizCompleted
	next := s.current.Clone()
	next.QuizCompleted = true
	next.QuizAnswers = append([]string(nil), answers...)
	next.PersonalMotivation = motivation
	if err := s.commit(next); err != nil {
		return false, err
	}
	return first, nil
}
