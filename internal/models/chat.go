package models

import "time"

// Chat message authors
const (
	ChatTypeUser = "user"
	ChatTypeBot  = "bot"
)

// ChatMessage is one line of a student's chat transcript
type ChatMessage struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentInsight holds aggregate interest signals for one student
type StudentInsight struct {
	ID             string             `json:"id"`
	StudentID      string             `json:"student_id"`
	Topics         map[string]float64 `json:"topics"`
	LearningStyle  string             `json:"learning_style"`
	CompletionRate float64            `json:"completion_rate"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
