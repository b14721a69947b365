package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"wewillshine/internal/catalog"
	"wewillshine/internal/models"
	"wewillshine/internal/storage"
)

var diya = models.StudentIdentity{ID: "diya-aisyah", Name: "DIYA AISYAH", Code: "INSPIRE2025DA"}

type fakeGateway struct {
	mu       sync.Mutex
	fail     bool
	block    bool
	students map[string]*models.Student
	updates  []models.StudentUpdate
	unlocks  map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{students: map[string]*models.Student{}, unlocks: map[string]int{}}
}

var errBackend = errors.New("backend down")

func (g *fakeGateway) GetStudent(ctx context.Context, code string) (*models.Student, error) {
	if g.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return nil, errBackend
	}
	return g.students[code], nil
}

func (g *fakeGateway) CreateStudent(ctx context.Context, s models.Student) (*models.Student, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return nil, errBackend
	}
	s.ID = "remote-" + s.StudentCode
	g.students[s.StudentCode] = &s
	return &s, nil
}

func (g *fakeGateway) UpdateStudent(ctx context.Context, id string, u models.StudentUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return errBackend
	}
	g.updates = append(g.updates, u)
	return nil
}

func (g *fakeGateway) UnlockAchievement(ctx context.Context, studentID, achievementID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return errBackend
	}
	g.unlocks[achievementID]++
	return nil
}

// recordingOutbox runs ops inline and remembers their names
type recordingOutbox struct {
	names    []string
	failures []error
}

func (o *recordingOutbox) Enqueue(op Op) {
	o.names = append(o.names, op.Name)
	if err := op.Run(context.Background()); err != nil {
		o.failures = append(o.failures, err)
	}
}

// countingStore counts writes to the progress key
type countingStore struct {
	*storage.MemoryStore
	sets int
}

func (c *countingStore) Set(key string, value []byte) error {
	c.sets++
	return c.MemoryStore.Set(key, value)
}

type fixture struct {
	store   *Store
	gateway *fakeGateway
	outbox  *recordingOutbox
	kv      *countingStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := &countingStore{MemoryStore: storage.NewMemoryStore()}
	gw := newFakeGateway()
	ob := &recordingOutbox{}
	return &fixture{store: NewStore(NewKVRepository(kv), gw, ob), gateway: gw, outbox: ob, kv: kv}
}

func (f *fixture) login(t *testing.T) *models.Progress {
	t.Helper()
	p, err := f.store.Login(context.Background(), diya)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return p
}

func TestLoginCreatesRemoteRecord(t *testing.T) {
	f := newFixture(t)
	p := f.login(t)

	if p.Points != 0 || p.Level != 1 || p.LocalOnly {
		t.Errorf("Login() = %+v", p)
	}
	if p.RemoteID != "remote-INSPIRE2025DA" {
		t.Errorf("RemoteID = %q", p.RemoteID)
	}
	if len(p.Achievements) != len(catalog.Achievements()) {
		t.Errorf("achievements not seeded")
	}
	if f.gateway.students[diya.Code] == nil {
		t.Error("remote student was not created")
	}
}

func TestLoginSeedsPointsFromRemote(t *testing.T) {
	f := newFixture(t)
	f.gateway.students[diya.Code] = &models.Student{ID: "r1", StudentCode: diya.Code, Points: 230, Level: 3}

	p := f.login(t)
	if p.Points != 230 || p.Level != 3 || p.RemoteID != "r1" {
		t.Errorf("Login() = %+v", p)
	}
}

func TestLoginFallsBackWhenRemoteFails(t *testing.T) {
	f := newFixture(t)
	f.gateway.fail = true

	p := f.login(t)
	if p.Points != 0 || p.Level != 1 {
		t.Errorf("points/level = %d/%d, want 0/1", p.Points, p.Level)
	}
	if !p.LocalOnly || p.RemoteID != "" {
		t.Errorf("record should be local-only: %+v", p)
	}

	// Local mutations still work and nothing is queued for the remote
	if err := f.store.AddPoints(10); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}
	if len(f.outbox.names) != 0 {
		t.Errorf("queued remote ops in local-only mode: %v", f.outbox.names)
	}
}

func TestLoginTimesOut(t *testing.T) {
	f := newFixture(t)
	f.gateway.block = true
	f.store.SetLoginTimeout(20 * time.Millisecond)

	start := time.Now()
	p := f.login(t)
	if time.Since(start) > 2*time.Second {
		t.Fatal("Login() blocked past its timeout")
	}
	if !p.LocalOnly {
		t.Error("timed out login should be local-only")
	}
}

func TestLevelTracksPoints(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	total := 0
	for _, d := range []int{0, 10, 89, 1, 99, 100, 250, 3} {
		total += d
		if err := f.store.AddPoints(d); err != nil {
			t.Fatalf("AddPoints() error = %v", err)
		}
		p := f.store.Snapshot()
		if p.Points != total || p.Level != total/100+1 {
			t.Fatalf("after +%d: points=%d level=%d, want %d/%d", d, p.Points, p.Level, total, total/100+1)
		}
	}

	last := f.gateway.updates[len(f.gateway.updates)-1]
	if *last.Points != total || *last.Level != total/100+1 {
		t.Errorf("remote update = %d/%d", *last.Points, *last.Level)
	}
}

func TestAddPointsNeverNegative(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	_ = f.store.AddPoints(30)
	_ = f.store.AddPoints(-100)
	if p := f.store.Snapshot(); p.Points != 0 || p.Level != 1 {
		t.Errorf("points/level = %d/%d", p.Points, p.Level)
	}
}

func TestExploreItemIsASet(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	added, _ := f.store.ExploreItem(3)
	again, _ := f.store.ExploreItem(3)
	if !added || again {
		t.Errorf("ExploreItem() = %v then %v", added, again)
	}
	if got := f.store.Snapshot().ExploredItems; len(got) != 1 {
		t.Errorf("ExploredItems = %v, want one entry", got)
	}
}

func TestUnlockAchievementOnce(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	first, _ := f.store.UnlockAchievement(catalog.QuizMaster)
	second, _ := f.store.UnlockAchievement(catalog.QuizMaster)
	if !first || second {
		t.Errorf("UnlockAchievement() = %v then %v", first, second)
	}

	count := 0
	for _, a := range f.store.Snapshot().Achievements {
		if a.ID == catalog.QuizMaster && a.Unlocked {
			count++
		}
	}
	if count != 1 {
		t.Errorf("unlocked entries = %d, want 1", count)
	}
	if f.gateway.unlocks[catalog.QuizMaster] != 1 {
		t.Errorf("remote unlocks = %d, want 1", f.gateway.unlocks[catalog.QuizMaster])
	}

	if ok, _ := f.store.UnlockAchievement("not-a-thing"); ok {
		t.Error("unknown achievement should not unlock")
	}
}

func TestDreams(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	fixed := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	f.store.SetClock(func() time.Time { return fixed })

	a, _ := f.store.AddDream(models.Dream{Text: "Jadi developer"})
	b, _ := f.store.AddDream(models.Dream{Text: "Bikin startup"})
	if a.ID == b.ID || b.ID <= a.ID {
		t.Errorf("dream ids not unique and increasing: %d, %d", a.ID, b.ID)
	}

	if err := f.store.RemoveDream(a.ID); err != nil {
		t.Fatalf("RemoveDream() error = %v", err)
	}
	writes := f.kv.sets
	if err := f.store.RemoveDream(12345); err != nil {
		t.Fatalf("RemoveDream() absent error = %v", err)
	}
	if f.kv.sets != writes {
		t.Error("removing an absent dream should not write")
	}

	dreams := f.store.Snapshot().Dreams
	if len(dreams) != 1 || dreams[0].ID != b.ID {
		t.Errorf("Dreams = %+v", dreams)
	}
}

func TestCountersAndQuiz(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	_ = f.store.IncrementQuoteCount()
	_ = f.store.IncrementQuoteCount()
	_ = f.store.IncrementChatCount()

	first, _ := f.store.CompleteQuiz([]string{"tech"}, "first")
	retake, _ := f.store.CompleteQuiz([]string{"creative"}, "second")
	if !first || retake {
		t.Errorf("CompleteQuiz() first = %v, retake = %v", first, retake)
	}

	p := f.store.Snapshot()
	if p.QuoteCount != 2 || p.ChatCount != 1 {
		t.Errorf("counters = %d/%d", p.QuoteCount, p.ChatCount)
	}
	if !p.QuizCompleted || p.PersonalMotivation != "second" || p.QuizAnswers[0] != "creative" {
		t.Errorf("quiz = %+v", p)
	}
}

func TestMutatorsAreNoOpsWhenLoggedOut(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	if err := f.store.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	writes := f.kv.sets
	if err := f.store.AddPoints(50); err != nil {
		t.Errorf("AddPoints() error = %v", err)
	}
	_, _ = f.store.ExploreItem(1)
	_, _ = f.store.UnlockAchievement(catalog.FirstLogin)
	_, _ = f.store.AddDream(models.Dream{Text: "x"})
	_ = f.store.IncrementChatCount()
	_, _ = f.store.CompleteQuiz(nil, "")

	if f.kv.sets != writes {
		t.Errorf("logged-out mutators wrote %d times", f.kv.sets-writes)
	}
	if f.store.Snapshot() != nil {
		t.Error("Snapshot() should be nil after logout")
	}
	if _, err := f.kv.Get(Key); !errors.Is(err, storage.ErrNotFound) {
		t.Error("progress key should be cleared on logout")
	}
}

func TestRemoteFailureKeepsLocalState(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.gateway.fail = true

	if err := f.store.AddPoints(40); err != nil {
		t.Fatalf("AddPoints() error = %v", err)
	}
	if len(f.outbox.failures) != 1 {
		t.Errorf("failures = %d, want 1", len(f.outbox.failures))
	}
	if p := f.store.Snapshot(); p.Points != 40 {
		t.Errorf("Points = %d, want 40 despite remote failure", p.Points)
	}
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)

	var seen []*models.Progress
	unsubscribe := f.store.Subscribe(func(p *models.Progress) { seen = append(seen, p) })

	f.login(t)
	_ = f.store.AddPoints(5)
	unsubscribe()
	_ = f.store.AddPoints(5)

	if len(seen) != 2 {
		t.Fatalf("notifications = %d, want 2", len(seen))
	}
	if seen[1].Points != 5 {
		t.Errorf("second notification points = %d", seen[1].Points)
	}

	// Subscribers get copies
	seen[1].Points = 999
	if f.store.Snapshot().Points != 10 {
		t.Error("subscriber mutation leaked into the store")
	}
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	d, _ := f.store.AddDream(models.Dream{Text: "x"})

	// A second store over the same local mirror picks the record up
	other := NewStore(NewKVRepository(f.kv), f.gateway, f.outbox)
	p, err := other.Restore()
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if p == nil || p.StudentCode != diya.Code {
		t.Fatalf("Restore() = %+v", p)
	}

	other.SetClock(func() time.Time { return time.UnixMilli(d.ID - 1000) })
	next, _ := other.AddDream(models.Dream{Text: "y"})
	if next.ID <= d.ID {
		t.Errorf("restored store reused dream id: %d <= %d", next.ID, d.ID)
	}
}

func TestRestoreMalformed(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(Key, []byte("{oops"))

	s := NewStore(NewKVRepository(kv), newFakeGateway(), &recordingOutbox{})
	p, err := s.Restore()
	if err != nil || p != nil {
		t.Errorf("Restore() = %v, %v", p, err)
	}
	if _, err := kv.Get(Key); !errors.Is(err, storage.ErrNotFound) {
		t.Error("malformed record should be cleared")
	}
}
