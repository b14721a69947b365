package models

import "time"

// SessionRecord is the persisted student login
type SessionRecord struct {
	Code      string    `json:"code"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired checks if the session has expired at the given instant
func (s *SessionRecord) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// LoginSession is the remote row tracking one login on one device
type LoginSession struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id"`
	SessionToken string     `json:"session_token"`
	IsActive     bool       `json:"is_active"`
	DeviceType   string     `json:"device_type"`
	Browser      string     `json:"browser"`
	OS           string     `json:"os"`
	IPAddress    string     `json:"ip_address"`
	UserAgent    string     `json:"user_agent"`
	LoginAt      time.Time  `json:"login_at"`
	LogoutAt     *time.Time `json:"logout_at,omitempty"`
}

// DeviceInfo describes the client a login came from
type DeviceInfo struct {
	Browser    string `json:"browser"`
	OS         string `json:"os"`
	DeviceType string `json:"device_type"`
	IPAddress  string `json:"ip_address"`
	UserAgent  string `json:"user_agent"`
}
