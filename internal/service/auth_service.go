package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"carrental/internal/apperr"
	"carrental/internal/db"
	"carrental/internal/entities"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on login with an unknown username or a
// wrong password; the handler maps it to 401 without leaking which.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserStore interface {
	Create(ctx context.Context, u *db.User) error
	GetByUsername(ctx context.Context, username string) (*db.User, error)
	GetByID(ctx context.Context, id int) (*db.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	repo UserStore
}

func NewAuthService(repo UserStore) *AuthService {
	return &AuthService{repo: repo}
}

// Register validates and creates a user account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, req entities.RegisterRequest) (*db.User, error) {
	verr := apperr.NewValidationError()

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if len(username) < 3 {
		verr.Add("username", "Username must be at least 3 characters.")
	}
	if email == "" || !strings.Contains(email, "@") {
		verr.Add("email", "Enter a valid email address.")
	}
	if req.Password == "" {
		verr.Add("password", "Password cannot be empty.")
	} else if req.Password != req.Password2 {
		verr.Add("password", "Password fields didn't match.")
	}

	if username != "" {
		exists, err := s.repo.UsernameExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if exists {
			verr.Add("username", "A user with that username already exists.")
		}
	}
	if email != "" {
		exists, err := s.repo.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			verr.Add("email", "A user with that email already exists.")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db.User{
		Username:     username,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password and issues an HS256 JWT with a one hour expiry.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *db.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// IssueToken signs an access token for the user.
func (s *AuthService) IssueToken(user *db.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
