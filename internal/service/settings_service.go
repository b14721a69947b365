package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"wewillshine/internal/models"
	"wewillshine/internal/storage"
	"wewillshine/internal/validation"
)

// SettingsKey is the local storage key holding the settings blob
const SettingsKey = "we-will-shine-settings"

// AI providers
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderGemini = "gemini"
	ProviderCustom = "custom"
)

// DefaultSettings returns the settings used when nothing is stored
func DefaultSettings() models.AppSettings {
	return models.AppSettings{
		AI: models.AISettings{
			Provider:    ProviderOpenAI,
			Model:       "gpt-4",
			Temperature: 0.7,
			MaxTokens:   500,
		},
		Notifications: models.NotificationSettings{
			Enabled:         true,
			StudyReminders:  true,
			Achievements:    true,
			DailyMotivation: true,
		},
		Theme:    "light",
		Language: "id",
	}
}

// AIUpdate is a partial update of the AI settings. Nil fields are left untouched.
type AIUpdate struct {
	Provider    *string  `json:"provider"`
	APIKey      *string  `json:"apiKey"`
	CustomURL   *string  `json:"customUrl"`
	Model       *string  `json:"model"`
	Temperature *float64 `json:"temperature"`
	MaxTokens   *int     `json:"maxTokens"`
}

// NotificationUpdate is a partial update of the notification toggles
type NotificationUpdate struct {
	Enabled         *bool `json:"enabled"`
	StudyReminders  *bool `json:"studyReminders"`
	Achievements    *bool `json:"achievements"`
	DailyMotivation *bool `json:"dailyMotivation"`
}

// SettingsService keeps the device-level settings blob
type SettingsService struct {
	store storage.Store
	mu    sync.Mutex
}

// NewSettingsService creates a settings service
func NewSettingsService(store storage.Store) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the stored settings merged over the defaults. A malformed blob
// yields the defaults.
func (s *SettingsService) Get() (models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SettingsService) load() (models.AppSettings, error) {
	settings := DefaultSettings()
	data, err := s.store.Get(SettingsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: failed to parse settings, using defaults: %v", err)
		return DefaultSettings(), nil
	}
	return settings, nil
}

func (s *SettingsService) save(settings models.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.Set(SettingsKey, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SettingsService) update(fn func(*models.AppSettings) error) (models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return settings, err
	}
	if err := fn(&settings); err != nil {
		return settings, err
	}
	if err := s.save(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// SettingsUpdate changes several sections at once. Reset is applied first,
// then every non-nil section on top of it.
type SettingsUpdate struct {
	Reset         bool                `json:"reset"`
	AI            *AIUpdate           `json:"ai"`
	Notifications *NotificationUpdate `json:"notifications"`
	Theme         *string             `json:"theme"`
	Language      *string             `json:"language"`
}

// Apply validates every section of u and writes them in a single save. A
// rejected section leaves the stored settings untouched.
func (s *SettingsService) Apply(u SettingsUpdate) (models.AppSettings, error) {
	if u.AI != nil {
		if err := validateAI(*u.AI); err != nil {
			return models.AppSettings{}, err
		}
	}
	if u.Theme != nil {
		if err := validateTheme(*u.Theme); err != nil {
			return models.AppSettings{}, err
		}
	}
	if u.Language != nil {
		if err := validateLanguage(*u.Language); err != nil {
			return models.AppSettings{}, err
		}
	}

	return s.update(func(settings *models.AppSettings) error {
		if u.Reset {
			*settings = DefaultSettings()
		}
		if u.AI != nil {
			mergeAI(&settings.AI, *u.AI)
		}
		if u.Notifications != nil {
			mergeNotifications(&settings.Notifications, *u.Notifications)
		}
		setIf(&settings.Theme, u.Theme)
		setIf(&settings.Language, u.Language)
		return nil
	})
}

// UpdateAI merges a partial AI settings update
func (s *SettingsService) UpdateAI(u AIUpdate) (models.AppSettings, error) {
	return s.Apply(SettingsUpdate{AI: &u})
}

// UpdateNotifications merges a partial notification update
func (s *SettingsService) UpdateNotifications(u NotificationUpdate) (models.AppSettings, error) {
	return s.Apply(SettingsUpdate{Notifications: &u})
}

// UpdateTheme sets the theme: light, dark or auto
func (s *SettingsService) UpdateTheme(theme string) (models.AppSettings, error) {
	return s.Apply(SettingsUpdate{Theme: &theme})
}

// UpdateLanguage sets the interface language: id or en
func (s *SettingsService) UpdateLanguage(language string) (models.AppSettings, error) {
	return s.Apply(SettingsUpdate{Language: &language})
}

// Reset stores the defaults
func (s *SettingsService) Reset() (models.AppSettings, error) {
	return s.Apply(SettingsUpdate{Reset: true})
}

func validateAI(u AIUpdate) error {
	if u.Provider != nil && !validProvider(*u.Provider) {
		return validation.ValidationError{Field: "provider", Message: "provider must be openai, claude, gemini or custom"}
	}
	if u.Temperature != nil && (*u.Temperature < 0 || *u.Temperature > 2) {
		return validation.ValidationError{Field: "temperature", Message: "temperature must be between 0 and 2"}
	}
	if u.MaxTokens != nil && *u.MaxTokens <= 0 {
		return validation.ValidationError{Field: "maxTokens", Message: "maxTokens must be positive"}
	}
	return nil
}

func validateTheme(theme string) error {
	switch theme {
	case "light", "dark", "auto":
		return nil
	}
	return validation.ValidationError{Field: "theme", Message: "theme must be light, dark or auto"}
}

func validateLanguage(language string) error {
	if language != "id" && language != "en" {
		return validation.ValidationError{Field: "language", Message: "language must be id or en"}
	}
	return nil
}

func mergeAI(ai *models.AISettings, u AIUpdate) {
	setIf(&ai.Provider, u.Provider)
	setIf(&ai.APIKey, u.APIKey)
	setIf(&ai.CustomURL, u.CustomURL)
	setIf(&ai.Model, u.Model)
	setIf(&ai.Temperature, u.Temperature)
	setIf(&ai.MaxTokens, u.MaxTokens)
}

func mergeNotifications(n *models.NotificationSettings, u NotificationUpdate) {
	setIf(&n.Enabled, u.Enabled)
	setIf(&n.StudyReminders, u.StudyReminders)
	setIf(&n.Achievements, u.Achievements)
	setIf(&n.DailyMotivation, u.DailyMotivation)
}

func validProvider(p string) bool {
	switch p {
	case ProviderOpenAI, ProviderClaude, ProviderGemini, ProviderCustom:
		return true
	}
	return false
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
