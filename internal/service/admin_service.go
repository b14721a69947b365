package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"wewillshine/internal/models"
	"wewillshine/internal/remote"
	"wewillshine/internal/security"
	"wewillshine/internal/storage"
	"wewillshine/internal/validation"
)

// AdminKey is the local storage key holding the logged-in admin
const AdminKey = "we-will-shine-admin"

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Student listing bounds for the admin view
const (
	DefaultStudentPageSize = 50
	MaxStudentPageSize     = 200
	AnalyticsChatLimit     = 100
)

// AdminLogin is the result of a successful admin login
type AdminLogin struct {
	Admin     *models.Admin `json:"admin"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// AdminService handles staff authentication
type AdminService struct {
	gateway remote.Gateway
	store   storage.Store
	signer  *security.TokenSigner
	mu      sync.Mutex
}

// NewAdminService creates a new admin service
func NewAdminService(gateway remote.Gateway, store storage.Store, signer *security.TokenSigner) *AdminService {
	return &AdminService{gateway: gateway, store: store, signer: signer}
}

// DefaultPermissions returns the permissions granted to a role
func DefaultPermissions(role string) []string {
	switch role {
	case models.RoleSuperAdmin:
		return []string{"students:read", "students:write", "admins:write"}
	case models.RoleAdmin:
		return []string{"students:read", "students:write"}
	default:
		return []string{"students:read"}
	}
}

// CreateAdmin registers a staff account
func (s *AdminService) CreateAdmin(ctx context.Context, email, name, password, role string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if !models.ValidRole(role) {
		return nil, validation.ValidationError{Field: "role", Message: "role must be super_admin, admin or teacher"}
	}

	existing, err := s.gateway.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing admin: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := s.gateway.CreateAdmin(ctx, models.Admin{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Role:         role,
		Permissions:  DefaultPermissions(role),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// Login verifies the credentials, remembers the admin locally and issues a bearer token
func (s *AdminService) Login(ctx context.Context, email, password string) (*AdminLogin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	admin, err := s.gateway.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if admin == nil || !security.CheckPassword(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.signer.Issue(admin.ID, admin.Email, admin.Name, admin.Role)
	if err != nil {
		return nil, err
	}
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(storedAdmin{Admin: *admin, TokenID: claims.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode admin: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(AdminKey, data); err != nil {
		return nil, fmt.Errorf("failed to save admin: %w", err)
	}

	return &AdminLogin{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

// storedAdmin is the local admin record. TokenID is the jti of the one token
// that is currently valid; logging out or in again revokes older tokens.
type storedAdmin struct {
	models.Admin
	TokenID string `json:"token_id"`
}

// Validate checks a bearer token. Besides a good signature the token must be
// the one issued by the current login.
func (s *AdminService) Validate(token string) (*security.AdminClaims, error) {
	claims, err := s.signer.Parse(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.load()
	if rec == nil || rec.ID != claims.Subject || rec.TokenID != claims.ID {
		return nil, security.ErrInvalidToken
	}
	return claims, nil
}

// Current returns the locally remembered admin, or nil
func (s *AdminService) Current() *models.Admin {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.load()
	if rec == nil {
		return nil
	}
	return &rec.Admin
}

func (s *AdminService) load() *storedAdmin {
	data, err := s.store.Get(AdminKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Warning: failed to read admin: %v", err)
		}
		return nil
	}

	var rec storedAdmin
	if err := json.Unmarshal(data, &rec); err != nil || rec.Email == "" {
		log.Printf("Warning: discarding malformed admin record")
		if err := s.store.Delete(AdminKey); err != nil {
			log.Printf("Warning: failed to clear admin: %v", err)
		}
		return nil
	}
	return &rec
}

// Logout forgets the locally remembered admin, which revokes its token
func (s *AdminService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(AdminKey); err != nil {
		return fmt.Errorf("failed to clear admin: %w", err)
	}
	return nil
}

// ListStudents returns one page of the remote student roster
func (s *AdminService) ListStudents(ctx context.Context, f models.StudentFilter) (*models.StudentPage, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultStudentPageSize
	}
	if f.Limit > MaxStudentPageSize {
		f.Limit = MaxStudentPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Search = strings.TrimSpace(f.Search)

	page, err := s.gateway.ListStudents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return page, nil
}

// StudentAnalytics returns everything recorded remotely about one student, or nil
// when the student does not exist
func (s *AdminService) StudentAnalytics(ctx context.Context, studentID string) (*models.StudentAnalytics, error) {
	analytics, err := remote.Analytics(ctx, s.gateway, studentID, AnalyticsChatLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics: %w", err)
	}
	if analytics.Student == nil {
		return nil, nil
	}
	return analytics, nil
}
