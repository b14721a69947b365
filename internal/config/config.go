package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	MigrationsPath string
	Debug          bool

	// Local mirror ("memory" or "sqlite")
	LocalStoreType string
	LocalStorePath string

	// Remote record store: "sql", "rest" or "off"
	RemoteMode    string
	DatabaseType  string
	DatabaseURL   string
	DatabasePath  string
	RemoteURL     string
	RemoteAPIKey  string
	RemoteTimeout time.Duration

	SessionTTL    time.Duration
	OutboxSize    int
	AdminJWTKey   string
	AdminTokenTTL time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	TeacherEmail string
}

// fileConfig mirrors Config for the optional TOML overlay. Unset keys keep the env value.
type fileConfig struct {
	Server struct {
		Port       *string `toml:"port"`
		Migrations *string `toml:"migrations"`
		Debug      *bool   `toml:"debug"`
	} `toml:"server"`
	Local struct {
		Type *string `toml:"type"`
		Path *string `toml:"path"`
	} `toml:"local"`
	Remote struct {
		Mode         *string `toml:"mode"`
		DatabaseType *string `toml:"database-type"`
		DatabaseURL  *string `toml:"database-url"`
		DatabasePath *string `toml:"database-path"`
		URL          *string `toml:"url"`
		APIKey       *string `toml:"api-key"`
		Timeout      *string `toml:"timeout"`
	} `toml:"remote"`
	Session struct {
		TTL *string `toml:"ttl"`
	} `toml:"session"`
	Email struct {
		Region  *string `toml:"region"`
		From    *string `toml:"from"`
		Name    *string `toml:"name"`
		Teacher *string `toml:"teacher"`
	} `toml:"email"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		Debug:          getEnv("DEBUG", "false") == "true",
		LocalStoreType: getEnv("LOCAL_STORE", "sqlite"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./local.db"),
		RemoteMode:     getEnv("REMOTE_MODE", "sql"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./wewillshine.db"),
		RemoteURL:      getEnv("REMOTE_URL", ""),
		RemoteAPIKey:   getEnv("REMOTE_API_KEY", ""),
		RemoteTimeout:  getDuration("REMOTE_TIMEOUT", 5*time.Second),
		SessionTTL:     getDuration("SESSION_TTL", 7*24*time.Hour),
		OutboxSize:     getInt("OUTBOX_SIZE", 64),
		AdminJWTKey:    getEnv("ADMIN_JWT_KEY", ""),
		AdminTokenTTL:  getDuration("ADMIN_TOKEN_TTL", 12*time.Hour),
		AWSRegion:      getEnv("AWS_REGION", "ap-southeast-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "We Will Shine"),
		TeacherEmail:   getEnv("TEACHER_EMAIL", ""),
	}
}

// LoadWithFile loads the environment config and applies the TOML file named by
// CONFIG_FILE on top of it. A missing file is not an error.
func LoadWithFile() (*Config, error) {
	cfg := Load()
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return cfg, nil
	}
	if err := cfg.ApplyFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFile overlays values from a TOML config file
func (c *Config) ApplyFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat config: %w", err)
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}

	setString(&c.ServerPort, fc.Server.Port)
	setString(&c.MigrationsPath, fc.Server.Migrations)
	if fc.Server.Debug != nil {
		c.Debug = *fc.Server.Debug
	}
	setString(&c.LocalStoreType, fc.Local.Type)
	setString(&c.LocalStorePath, fc.Local.Path)
	setString(&c.RemoteMode, fc.Remote.Mode)
	setString(&c.DatabaseType, fc.Remote.DatabaseType)
	setString(&c.DatabaseURL, fc.Remote.DatabaseURL)
	setString(&c.DatabasePath, fc.Remote.DatabasePath)
	setString(&c.RemoteURL, fc.Remote.URL)
	setString(&c.RemoteAPIKey, fc.Remote.APIKey)
	setString(&c.AWSRegion, fc.Email.Region)
	setString(&c.SESFromEmail, fc.Email.From)
	setString(&c.SESFromName, fc.Email.Name)
	setString(&c.TeacherEmail, fc.Email.Teacher)

	if err := setDuration(&c.RemoteTimeout, fc.Remote.Timeout); err != nil {
		return fmt.Errorf("invalid remote.timeout: %w", err)
	}
	if err := setDuration(&c.SessionTTL, fc.Session.TTL); err != nil {
		return fmt.Errorf("invalid session.ttl: %w", err)
	}

	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
