package auth

import (
	"context"
	"testing"
	"time"

	"translation-tracker/internal/apperr"
	"translation-tracker/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserStore keeps users in memory keyed by id.
type mockUserStore struct {
	users map[string]*models.User
}

func (m *mockUserStore) Create(ctx context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Login == u.Login {
			return apperr.ErrDuplicateLogin
		}
	}
	if u.ID == "" {
		u.ID = "user-" + u.Login
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (m *mockUserStore) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	for _, u := range m.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

// mockTokenStore keeps tokens in memory and records deletions.
type mockTokenStore struct {
	tokens  map[string]*models.Token
	deleted []string
	seq     int
}

func (m *mockTokenStore) Create(ctx context.Context, t *models.Token) error {
	m.seq++
	t.ID = "token-" + string(rune('a'+m.seq))
	m.tokens[t.ID] = t
	return nil
}

func (m *mockTokenStore) FindByID(ctx context.Context, id string) (*models.Token, error) {
	t, ok := m.tokens[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return t, nil
}

func (m *mockTokenStore) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := m.tokens[id]; !ok {
		return 0, nil
	}
	delete(m.tokens, id)
	m.deleted = append(m.deleted, id)
	return 1, nil
}

func newTestService(t *testing.T) (*Service, *mockUserStore, *mockTokenStore) {
	t.Helper()
	users := &mockUserStore{users: map[string]*models.User{}}
	tokens := &mockTokenStore{tokens: map[string]*models.Token{}}
	return NewService(users, tokens, "test-secret"), users, tokens
}

func TestService_SignUp(t *testing.T) {
	ctx := context.Background()
	s, users, tokens := newTestService(t)

	user, sess, err := s.SignUp(ctx, SignUpInput{
		Login:    "anna",
		Username: "Anna",
		Password: "secret",
		Role:     models.RoleTranslator,
		Status:   "available",
	})
	require.NoError(t, err)

	assert.Equal(t, "Anna", user.Username)
	assert.True(t, user.IsActive)
	assert.Zero(t, user.Efficiency)
	assert.True(t, VerifyPassword("secret", user.PasswordHash))
	assert.Contains(t, users.users, user.ID)

	require.NotNil(t, sess)
	assert.Equal(t, user.ID, sess.Token.UserID)
	assert.Equal(t, models.TokenTypeBearer, sess.Token.TokenType)
	assert.Equal(t, TokenTTL, sess.Token.ExpiresAt.Sub(sess.Token.IssuedAt))
	assert.Contains(t, tokens.tokens, sess.Token.ID)
}

func TestService_SignUp_Errors(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestService(t)

	_, _, err := s.SignUp(ctx, SignUpInput{Login: "anna", Password: "x", Role: models.RoleTranslator})
	require.NoError(t, err)

	tests := []struct {
		wantErr error
		name    string
		in      SignUpInput
	}{
		{name: "duplicate login", in: SignUpInput{Login: "anna", Password: "y", Role: models.RoleChiefEditor}, wantErr: apperr.ErrDuplicateLogin},
		{name: "missing login", in: SignUpInput{Password: "y", Role: models.RoleTranslator}, wantErr: apperr.ErrValidation},
		{name: "missing password", in: SignUpInput{Login: "bob", Role: models.RoleTranslator}, wantErr: apperr.ErrValidation},
		{name: "unknown role", in: SignUpInput{Login: "bob", Password: "y", Role: "admin"}, wantErr: apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.SignUp(ctx, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	s, users, _ := newTestService(t)

	_, _, err := s.SignUp(ctx, SignUpInput{Login: "pm", Password: "secret", Role: models.RoleProjectManager})
	require.NoError(t, err)

	user, sess, err := s.Login(ctx, "pm", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleProjectManager, user.Role)
	assert.NotEmpty(t, sess.Credential)

	_, _, errLogin := s.Login(ctx, "nobody", "secret")
	_, _, errPassword := s.Login(ctx, "pm", "wrong")
	assert.ErrorIs(t, errLogin, apperr.ErrAuthenticationFailed)
	assert.ErrorIs(t, errPassword, apperr.ErrAuthenticationFailed)
	assert.Equal(t, errLogin.Error(), errPassword.Error(), "failures do not reveal which field was wrong")

	users.users[user.ID].IsActive = false
	_, _, err = s.Login(ctx, "pm", "secret")
	assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
}

func TestService_ResolveCurrentUser(t *testing.T) {
	ctx := context.Background()
	s, users, tokens := newTestService(t)

	_, _, err := s.SignUp(ctx, SignUpInput{Login: "ed", Password: "secret", Role: models.RoleChiefEditor})
	require.NoError(t, err)
	user, sess, err := s.Login(ctx, "ed", "secret")
	require.NoError(t, err)

	got, err := s.ResolveCurrentUser(ctx, sess.Credential)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := s.ParseCredential(sess.Credential)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, sess.Token.ID, claims.ID)
	assert.Equal(t, models.RoleChiefEditor, claims.Role)

	t.Run("empty credential", func(t *testing.T) {
		_, err := s.ResolveCurrentUser(ctx, "")
		assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
	})

	t.Run("tampered credential", func(t *testing.T) {
		_, err := s.ResolveCurrentUser(ctx, sess.Credential+"x")
		assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other := NewService(users, tokens, "other-secret")
		_, err := other.ResolveCurrentUser(ctx, sess.Credential)
		assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
	})

	t.Run("unsigned token", func(t *testing.T) {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        sess.Token.ID,
				Subject:   user.ID,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.ResolveCurrentUser(ctx, raw)
		assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewService(users, tokens, "test-secret").WithClock(func() time.Time {
			return time.Now().Add(TokenTTL + time.Hour)
		})
		_, err := late.ResolveCurrentUser(ctx, sess.Credential)
		assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
	})

	t.Run("revoked", func(t *testing.T) {
		require.NoError(t, s.Revoke(ctx, sess.Credential))
		assert.Contains(t, tokens.deleted, sess.Token.ID)
		_, err := s.ResolveCurrentUser(ctx, sess.Credential)
		assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
	})
}

func TestService_ResolveCurrentUser_DeletedUser(t *testing.T) {
	ctx := context.Background()
	s, users, _ := newTestService(t)

	user, sess, err := s.SignUp(ctx, SignUpInput{Login: "tr", Password: "secret", Role: models.RoleTranslator})
	require.NoError(t, err)

	delete(users.users, user.ID)
	_, err = s.ResolveCurrentUser(ctx, sess.Credential)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
}

func TestService_ResolveCurrentUser_DeactivatedUser(t *testing.T) {
	ctx := context.Background()
	s, users, _ := newTestService(t)

	user, sess, err := s.SignUp(ctx, SignUpInput{Login: "tr", Password: "secret", Role: models.RoleTranslator})
	require.NoError(t, err)

	_, err = s.ResolveCurrentUser(ctx, sess.Credential)
	require.NoError(t, err)

	users.users[user.ID].IsActive = false
	_, err = s.ResolveCurrentUser(ctx, sess.Credential)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationFailed)
}

func TestService_Revoke_IgnoresGarbage(t *testing.T) {
	s, _, tokens := newTestService(t)
	assert.NoError(t, s.Revoke(context.Background(), "garbage"))
	assert.Empty(t, tokens.deleted)
}
