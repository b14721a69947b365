package service

import (
	"reflect"
	"testing"

	"wewillshine/internal/storage"
	"wewillshine/internal/validation"
)

func TestSettingsDefaults(t *testing.T) {
	svc := NewSettingsService(storage.NewMemoryStore())
	got, err := svc.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, DefaultSettings()) {
		t.Errorf("Get() = %+v, want defaults", got)
	}
	if got.AI.Model != "gpt-4" || got.AI.MaxTokens != 500 || got.Theme != "light" || got.Language != "id" {
		t.Errorf("unexpected defaults: %+v", got)
	}
}

func TestSettingsPartialUpdates(t *testing.T) {
	svc := NewSettingsService(storage.NewMemoryStore())

	provider, key := ProviderClaude, "sk-test"
	if _, err := svc.UpdateAI(AIUpdate{Provider: &provider, APIKey: &key}); err != nil {
		t.Fatalf("UpdateAI() error = %v", err)
	}
	off := false
	if _, err := svc.UpdateNotifications(NotificationUpdate{StudyReminders: &off}); err != nil {
		t.Fatalf("UpdateNotifications() error = %v", err)
	}
	if _, err := svc.UpdateTheme("dark"); err != nil {
		t.Fatalf("UpdateTheme() error = %v", err)
	}
	got, err := svc.UpdateLanguage("en")
	if err != nil {
		t.Fatalf("UpdateLanguage() error = %v", err)
	}

	if got.AI.Provider != ProviderClaude || got.AI.APIKey != "sk-test" || got.AI.Model != "gpt-4" || got.AI.Temperature != 0.7 {
		t.Errorf("AI = %+v", got.AI)
	}
	if got.Notifications.StudyReminders || !got.Notifications.Enabled || !got.Notifications.Achievements {
		t.Errorf("Notifications = %+v", got.Notifications)
	}
	if got.Theme != "dark" || got.Language != "en" {
		t.Errorf("Theme/Language = %s/%s", got.Theme, got.Language)
	}

	reread, err := svc.Get()
	if err != nil || !reflect.DeepEqual(reread, got) {
		t.Errorf("Get() = %+v, %v; want persisted %+v", reread, err, got)
	}
}

func TestSettingsValidation(t *testing.T) {
	svc := NewSettingsService(storage.NewMemoryStore())
	badProvider := "skynet"
	hot := 3.5
	zero := 0

	tests := []struct {
		name string
		run  func() error
	}{
		{"provider", func() error { _, err := svc.UpdateAI(AIUpdate{Provider: &badProvider}); return err }},
		{"temperature", func() error { _, err := svc.UpdateAI(AIUpdate{Temperature: &hot}); return err }},
		{"max tokens", func() error { _, err := svc.UpdateAI(AIUpdate{MaxTokens: &zero}); return err }},
		{"theme", func() error { _, err := svc.UpdateTheme("neon"); return err }},
		{"language", func() error { _, err := svc.UpdateLanguage("fr"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !validation.IsValidationError(err) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}

	got, _ := svc.Get()
	if !reflect.DeepEqual(got, DefaultSettings()) {
		t.Errorf("rejected updates changed settings: %+v", got)
	}
}

func TestSettingsApplyIsAllOrNothing(t *testing.T) {
	svc := NewSettingsService(storage.NewMemoryStore())
	dark := "dark"
	bad := "fr"
	off := false

	_, err := svc.Apply(SettingsUpdate{
		Notifications: &NotificationUpdate{Enabled: &off},
		Theme:         &dark,
		Language:      &bad,
	})
	if !validation.IsValidationError(err) {
		t.Fatalf("Apply() error = %v, want validation error", err)
	}
	got, _ := svc.Get()
	if !reflect.DeepEqual(got, DefaultSettings()) {
		t.Errorf("rejected update saved some sections: %+v", got)
	}

	en := "en"
	got, err = svc.Apply(SettingsUpdate{Reset: true, Theme: &dark, Language: &en})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got.Theme != "dark" || got.Language != "en" || !got.Notifications.Enabled {
		t.Errorf("Apply() = %+v", got)
	}
}

func TestSettingsStoredBlob(t *testing.T) {
	tests := []struct {
		name  string
		blob  string
		check func(t *testing.T, svc *SettingsService)
	}{
		{
			name: "malformed falls back to defaults",
			blob: "{not json",
			check: func(t *testing.T, svc *SettingsService) {
				got, err := svc.Get()
				if err != nil || !reflect.DeepEqual(got, DefaultSettings()) {
					t.Errorf("Get() = %+v, %v", got, err)
				}
			},
		},
		{
			name: "partial blob merges over defaults",
			blob: `{"theme":"auto","ai":{"apiKey":"k"}}`,
			check: func(t *testing.T, svc *SettingsService) {
				got, err := svc.Get()
				if err != nil {
					t.Fatalf("Get() error = %v", err)
				}
				if got.Theme != "auto" || got.AI.APIKey != "k" || got.AI.Provider != ProviderOpenAI || got.Language != "id" {
					t.Errorf("Get() = %+v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := storage.NewMemoryStore()
			if err := kv.Set(SettingsKey, []byte(tt.blob)); err != nil {
				t.Fatal(err)
			}
			tt.check(t, NewSettingsService(kv))
		})
	}
}

func TestSettingsReset(t *testing.T) {
	svc := NewSettingsService(storage.NewMemoryStore())
	if _, err := svc.UpdateTheme("dark"); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Reset()
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if !reflect.DeepEqual(got, DefaultSettings()) {
		t.Errorf("Reset() = %+v", got)
	}
	if again, _ := svc.Get(); again.Theme != "light" {
		t.Errorf("theme after reset = %s", again.Theme)
	}
}
