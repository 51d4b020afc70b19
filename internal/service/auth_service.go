package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"task_tracker/internal/domain"
	"task_tracker/internal/repository"

	"github.com/google/uuid"
)

const MinPasswordLength = 6

// AuthService registers users and signs them in. It is the only place that
// touches credentials; everything downstream sees an opaque user id.
type AuthService struct {
	users  UserStore
	hasher *PasswordHasher
	tokens *JWTManager
	audit  *AuditService
}

func NewAuthService(users UserStore, hasher *PasswordHasher, tokens *JWTManager, audit *AuditService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, audit: audit}
}

// Session is returned by Signup and Signin.
type Session struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

// RequestInfo carries client details recorded in the audit log.
type RequestInfo struct {
	IP        string
	UserAgent string
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string, info RequestInfo) (*Session, error) {
	name = strings.TrimSpace(name)
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidUser)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidUser, MinPasswordLength)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUser)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:             uuid.NewString(),
		Email:          email,
		Name:           name,
		HashedPassword: hash,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.audit.LogWithRequest(ctx, u.ID, domain.AuditActionSignup, domain.AuditCategoryAuth, info.IP, info.UserAgent, nil)
	return s.session(u)
}

func (s *AuthService) Signin(ctx context.Context, email, password string, info RequestInfo) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !s.hasher.Verify(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	s.audit.LogWithRequest(ctx, u.ID, domain.AuditActionLogin, domain.AuditCategoryAuth, info.IP, info.UserAgent, nil)
	return s.session(u)
}

// Logout only records the event; tokens are dropped client side.
func (s *AuthService) Logout(ctx context.Context, userID string, info RequestInfo) {
	s.audit.LogWithRequest(ctx, userID, domain.AuditActionLogout, domain.AuditCategoryAuth, info.IP, info.UserAgent, nil)
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidUser
	}
	return u, err
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation: %w", err)
	}
	return &Session{AccessToken: token, TokenType: "bearer", User: u}, nil
}

// normalizeEmail keeps only the bare, lowercased address, so
// "Ann <Ann@Example.com>" and "ann@example.com" are the same account.
func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(addr.Address), nil
}
