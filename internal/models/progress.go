package models

// Achievement is one entry of the achievement catalogue or its runtime copy
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// Dream is a goal the student pinned to their board
type Dream struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Date  string `json:"date"`
	Color string `json:"color"`
}

// Progress is the gamification state of the logged-in student
type Progress struct {
	StudentCode        string        `json:"studentCode"`
	StudentID          string        `json:"studentId"`
	StudentName        string        `json:"studentName"`
	RemoteID           string        `json:"remoteId,omitempty"`
	LocalOnly          bool          `json:"localOnly"`
	Points             int           `json:"points"`
	Level              int           `json:"level"`
	ExploredItems      []int         `json:"exploredCareers"`
	Achievements       []Achievement `json:"achievements"`
	Dreams             []Dream       `json:"dreams"`
	QuoteCount         int           `json:"quoteCount"`
	ChatCount          int           `json:"chatCount"`
	QuizCompleted      bool          `json:"quizCompleted"`
	QuizAnswers        []string      `json:"quizAnswers"`
	PersonalMotivation string        `json:"personalMotivation"`
}

// LevelFor derives the level for a point total
func LevelFor(points int) int {
	if points < 0 {
		points = 0
	}
	return points/100 + 1
}

// Clone returns a deep copy so callers can compute the next state without touching this one
func (p *Progress) Clone() *Progress {
	if p == nil {
		return nil
	}
	c := *p
	c.ExploredItems = append([]int(nil), p.ExploredItems...)
	c.Achievements = append([]Achievement(nil), p.Achievements...)
	c.Dreams = append([]Dream(nil), p.Dreams...)
	c.QuizAnswers = append([]string(nil), p.QuizAnswers...)
	return &c
}

// HasExplored reports whether the item id is already in the explored set
func (p *Progress) HasExplored(id int) bool {
	for _, existing := range p.ExploredItems {
		if existing == id {
			return true
		}
	}
	return false
}

// IsUnlocked reports whether the achievement id is unlocked
func (p *Progress) IsUnlocked(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return a.Unlocked
		}
	}
	return false
}

// LevelProgress is the fraction of the way to the next level
func (p *Progress) LevelProgress() float64 {
	if p == nil {
		return 0
	}
	return float64(p.Points%100) / 100
}

// UnlockedAchievements returns the unlocked subset in catalogue order
func (p *Progress) UnlockedAchievements() []Achievement {
	if p == nil {
		return nil
	}
	var unlocked []Achievement
	for _, a := range p.Achievements {
		if a.Unlocked {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}
