package admin

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"guestbook/internal/common"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrPasswordRequired   = errors.New("password is required")
)

// AuthService authenticates operators and mints session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	repo AdminRepository
	now  func() time.Time
}

func NewAuthService(repo AdminRepository) AuthService {
	return &authService{repo: repo, now: time.Now}
}

// Login checks the credentials and returns a signed JWT. A wrong email and
// a wrong password produce the same error so the endpoint does not leak
// which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := common.ValidateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", ErrPasswordRequired
	}

	admin, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if admin.Status != "active" {
		return "", ErrAccountDisabled
	}
	if err := common.CheckPassword(password, admin.PasswordHash); err != nil {
		return "", ErrInvalidCredentials
	}

	// the timestamp is best effort, a failed update never blocks the login
	if err := s.repo.TouchLogin(ctx, admin.AdminID, s.now()); err != nil {
		log.Printf("⚠️ Failed to record last login for admin %d: %v", admin.AdminID, err)
	}

	return common.GenerateToken(admin.AdminID, admin.Email)
}
