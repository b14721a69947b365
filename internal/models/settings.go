package models

// AISettings configures the optional external chat provider
type AISettings struct {
	Provider    string  `json:"provider"`
	APIKey      string  `json:"apiKey"`
	CustomURL   string  `json:"customUrl,omitempty"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
}

// NotificationSettings toggles notification kinds
type NotificationSettings struct {
	Enabled         bool `json:"enabled"`
	StudyReminders  bool `json:"studyReminders"`
	Achievements    bool `json:"achievements"`
	DailyMotivation bool `json:"dailyMotivation"`
}

// AppSettings is the device-level application settings blob
type AppSettings struct {
	AI            AISettings           `json:"ai"`
	Notifications NotificationSettings `json:"notifications"`
	Theme         string               `json:"theme"`
	Language      string               `json:"language"`
}
