package models

import "time"

// StudentIdentity is an entry of the fixed class directory
type StudentIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Student is the remote record for a student
type Student struct {
	ID          string    `json:"id"`
	StudentCode string    `json:"student_code"`
	StudentName string    `json:"student_name"`
	Points      int       `json:"points"`
	Level       int       `json:"level"`
	Kelas       string    `json:"kelas,omitempty"`
	Rombel      string    `json:"rombel,omitempty"`
	Angkatan    string    `json:"angkatan,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StudentUpdate carries the fields of a partial remote update. Nil fields are left untouched.
type StudentUpdate struct {
	Points   *int    `json:"points,omitempty"`
	Level    *int    `json:"level,omitempty"`
	Kelas    *string `json:"kelas,omitempty"`
	Rombel   *string `json:"rombel,omitempty"`
	Angkatan *string `json:"angkatan,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u StudentUpdate) IsEmpty() bool {
	return u.Points == nil && u.Level == nil && u.Kelas == nil && u.Rombel == nil && u.Angkatan == nil
}

// StudentFilter narrows the admin student listing
type StudentFilter struct {
	Kelas    string
	Rombel   string
	Angkatan string
	Search   string
	Limit    int
	Offset   int
}

// StudentPage is one page of a filtered student listing
type StudentPage struct {
	Students []Student `json:"students"`
	Total    int       `json:"total"`
}

// StudentAnalytics aggregates everything the admin view shows about one student
type StudentAnalytics struct {
	Student      *Student            `json:"student"`
	Insights     *StudentInsight     `json:"insights"`
	Chats        []ChatMessage       `json:"chats"`
	Achievements []AchievementUnlock `json:"achievements"`
}

// AchievementUnlock is the remote append-only record of an unlocked achievement
type AchievementUnlock struct {
	ID            string    `json:"id"`
	StudentID     string    `json:"student_id"`
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
