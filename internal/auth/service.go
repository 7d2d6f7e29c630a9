package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 14 * 24 * time.Hour

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
}

type TokenStore interface {
	Create(ctx context.Context, t *models.Token) error
	FindByID(ctx context.Context, id string) (*models.Token, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Claims is the payload of the session credential stored in the cookie.
type Claims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Service authenticates users and issues and resolves session credentials.
type Service struct {
	users  UserStore
	tokens TokenStore
	secret []byte
	now    func() time.Time
}

func NewService(users UserStore, tokens TokenStore, secret string) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type SignUpInput struct {
	Login    string          `json:"login" form:"login"`
	Username string          `json:"username" form:"username"`
	Password string          `json:"password" form:"password"`
	Role     models.UserRole `json:"role" form:"role"`
	Status   string          `json:"status" form:"status"`
}

// Session is an issued token together with its signed cookie value.
type Session struct {
	Token      *models.Token
	Credential string
}

// SignUp creates a user and issues its first session.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*models.User, *Session, error) {
	in.Login = strings.TrimSpace(in.Login)
	in.Username = strings.TrimSpace(in.Username)
	switch {
	case in.Login == "":
		return nil, nil, fmt.Errorf("%w: login is required", apperr.ErrValidation)
	case in.Password == "":
		return nil, nil, fmt.Errorf("%w: password is required", apperr.ErrValidation)
	case !in.Role.Valid():
		return nil, nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, in.Role)
	}
	if in.Username == "" {
		in.Username = in.Login
	}

	hash, err := EncodePassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Login:        in.Login,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Status:       in.Status,
		Efficiency:   0,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	sess, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Login checks the login/password pair and issues a session. Any mismatch
// yields apperr.ErrAuthenticationFailed.
func (s *Service) Login(ctx context.Context, login, password string) (*models.User, *Session, error) {
	user, err := s.users.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil, apperr.ErrAuthenticationFailed
		}
		return nil, nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) || !user.IsActive {
		return nil, nil, apperr.ErrAuthenticationFailed
	}

	sess, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// IssueToken persists a new token for user and signs the cookie credential for it.
func (s *Service) IssueToken(ctx context.Context, user *models.User) (*Session, error) {
	now := s.now().UTC()
	token := &models.Token{
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(TokenTTL),
		TokenType: models.TokenTypeBearer,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, err
	}

	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        token.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(token.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(token.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{Token: token, Credential: signed}, nil
}

// ParseCredential verifies the signature and expiry of a cookie credential.
func (s *Service) ParseCredential(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrAuthenticationFailed, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, fmt.Errorf("%w: incomplete claims", apperr.ErrAuthenticationFailed)
	}
	return claims, nil
}

// ResolveCurrentUser returns the user behind a cookie credential. The token
// named by the credential must still exist and belong to the same user.
func (s *Service) ResolveCurrentUser(ctx context.Context, raw string) (*models.User, error) {
	if raw == "" {
		return nil, apperr.ErrAuthenticationFailed
	}
	claims, err := s.ParseCredential(raw)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: token revoked", apperr.ErrAuthenticationFailed)
		}
		return nil, err
	}
	if token.UserID != claims.Subject {
		return nil, fmt.Errorf("%w: token owner mismatch", apperr.ErrAuthenticationFailed)
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: user gone", apperr.ErrAuthenticationFailed)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user inactive", apperr.ErrAuthenticationFailed)
	}
	return user, nil
}

// Revoke deletes the token behind a credential. Invalid credentials are ignored.
func (s *Service) Revoke(ctx context.Context, raw string) error {
	claims, err := s.ParseCredential(raw)
	if err != nil {
		return nil
	}
	_, err = s.tokens.Delete(ctx, claims.ID)
	return err
}
