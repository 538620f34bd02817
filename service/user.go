package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"pocketledger/logger"
	"pocketledger/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost bcrypt cost used for new passwords
const PasswordCost = 10

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	GenerateToken(userID uint) (string, error)
}

// WelcomeMailer sends the registration e-mail.
type WelcomeMailer interface {
	SendWelcomeEmail(to string) error
}

// UserService registers users and verifies credentials.
type UserService struct {
	db     *gorm.DB
	tokens TokenIssuer
	mailer WelcomeMailer
	log    *logger.Logger
	mails  sync.WaitGroup
}

// NewUserService creates the user service. mailer may be nil.
func NewUserService(db *gorm.DB, tokens TokenIssuer, mailer WelcomeMailer, log *logger.Logger) *UserService {
	if log == nil {
		log = logger.Discard()
	}
	return &UserService{db: db, tokens: tokens, mailer: mailer, log: log.WithComponent("users")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user and returns a session token.
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Email: email, Password: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID)
	if s.mailer != nil {
		s.mails.Add(1)
		go func(to string) {
			defer s.mails.Done()
			if err := s.mailer.SendWelcomeEmail(to); err != nil {
				s.log.Warn("welcome email failed", "user_id", user.ID, "error", err)
			}
		}(email)
	}
	return token, nil
}

// WaitMail blocks until pending welcome mails are sent or ctx is done.
func (s *UserService) WaitMail(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mails.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login checks the password and returns a session token. Unknown e-mail and wrong
// password are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrBadLogin
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrBadLogin
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
