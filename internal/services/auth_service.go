package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"memberportal/internal/domain"
	"memberportal/internal/validate"
)

const hashCost = bcrypt.DefaultCost

// compared against when the email is unknown so both paths pay for a bcrypt run
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), hashCost)

type SignupInput struct {
	DisplayName string `form:"username" json:"username" validate:"required,max=100"`
	Surname     string `form:"surname" json:"surname" validate:"max=100"`
	Email       string `form:"email" json:"email" validate:"required,email,max=254"`
	Phone       string `form:"phone" json:"phone" validate:"max=32"`
	Password    string `form:"password" json:"password" validate:"required"`
}

type resetInput struct {
	Email       string `json:"email" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type AuthService struct {
	Users    UserStore
	Sessions *SessionService
	Now      func() time.Time
}

func NewAuthService(users UserStore, sessions *SessionService) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, Now: utcNow}
}

// Signup creates a Member account and returns its id.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (int64, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.DisplayName = strings.TrimSpace(in.DisplayName)
	in.Surname = strings.TrimSpace(in.Surname)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validate.Struct(in); err != nil {
		return 0, err
	}

	_, err := s.Users.ByEmail(ctx, in.Email)
	if err == nil {
		return 0, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, persistence(err)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, err
	}
	id, err := s.Users.Create(ctx, &domain.User{
		DisplayName: in.DisplayName,
		Surname:     in.Surname,
		Email:       in.Email,
		Phone:       in.Phone,
		Password:    sql.NullString{String: hash, Valid: true},
		Role:        domain.RoleMember,
		CreatedAt:   s.Now(),
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return 0, err
	}
	if err != nil {
		return 0, persistence(err)
	}
	return id, nil
}

// Login checks the credentials and opens a session. Unknown email, a missing
// or malformed stored hash and a wrong password all return
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	u, err := s.Users.ByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, sql.ErrNoRows) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, persistence(err)
	}
	if !u.Password.Valid || u.Password.String == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password.String), []byte(password)) != nil {
		return domain.Session{}, domain.ErrInvalidCredentials
	}
	return s.Sessions.Create(ctx, u.Snapshot())
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Destroy(ctx, token)
}

// ResetPassword overwrites the password of the account registered under
// email. The previous password is not checked.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	in := resetInput{Email: strings.TrimSpace(email), NewPassword: newPassword}
	if err := validate.Struct(in); err != nil {
		return err
	}
	if _, err := s.Users.ByEmail(ctx, in.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrAccountNotFound
		}
		return persistence(err)
	}
	hash, err := hashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	ok, err := s.Users.UpdatePassword(ctx, in.Email, hash)
	if err != nil {
		return persistence(err)
	}
	if !ok {
		return domain.ErrAccountNotFound
	}
	return nil
}

func hashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
	}
	if err != nil {
		return "", err
	}
	return string(h), nil
}
