package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"finance-tracker/api/auth"
	"finance-tracker/api/logger"
	"finance-tracker/api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs a token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	JWTToken string `json:"jwtToken"`
	UserID   string `json:"userId"`
}

type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
	now    func() time.Time
}

func NewAuthService(users UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		return nil, fmt.Errorf("%w: passwords do not match", ErrValidation)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: Email is already registered", ErrConflict)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: Email is already registered", ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	logger.Get().Info("user created", zap.String("user_id", user.ID))
	return s.issue(user.ID)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if user == nil || !auth.CheckPasswordHash(in.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: Invalid email or password", ErrAuth)
	}
	return s.issue(user.ID)
}

// UserExists reports whether the account behind a token is still present.
func (s *AuthService) UserExists(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStore, err)
	}
	return user != nil, nil
}

func (s *AuthService) issue(userID string) (*AuthResult, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{JWTToken: token, UserID: userID}, nil
}
