package service

import (
	"context"
	"testing"
	"time"

	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/logger"
	"ai-querychat-be/internal/repository/store"
	"ai-querychat-be/pkg/events"
	"ai-querychat-be/pkg/revocation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newTestAuthService(t *testing.T) (*authService, *recordingActivity) {
	t.Helper()
	activity := &recordingActivity{}
	svc := NewAuthService(store.NewMemory(), revocation.NewMemoryList(), activity, logger.NewNopLogger(), AuthOptions{
		Secret:    testSecret,
		ExpiresIn: time.Hour,
	})
	return svc.(*authService), activity
}

func TestAuthService_SignupLoginVerify(t *testing.T) {
	svc, activity := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, &dto.SignupRequest{Username: "alice", Email: " A@X.com ", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.Email)

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	for i := 0; i < 3; i++ {
		userId, err := svc.Verify(ctx, login.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Id, userId)
	}

	assert.Equal(t, []string{events.UserSignedUp, events.UserLoggedIn}, activity.types())
}

func TestAuthService_SignupErrors(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{Username: "bob", Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.SignupRequest
		kind apperror.Kind
	}{
		{"missing username", dto.SignupRequest{Email: "c@x.com", Password: "pw"}, apperror.KindValidation},
		{"missing password", dto.SignupRequest{Username: "c", Email: "c@x.com"}, apperror.KindValidation},
		{"blank email", dto.SignupRequest{Username: "c", Email: "   ", Password: "pw"}, apperror.KindValidation},
		{"malformed email", dto.SignupRequest{Username: "c", Email: "not-an-email", Password: "pw"}, apperror.KindValidation},
		{"duplicate email", dto.SignupRequest{Username: "bob2", Email: "B@x.com", Password: "other"}, apperror.KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, &tt.req)
			assert.True(t, apperror.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.LoginRequest
		kind apperror.Kind
	}{
		{"wrong password", dto.LoginRequest{Email: "a@x.com", Password: "nope"}, apperror.KindAuth},
		{"unknown email", dto.LoginRequest{Email: "z@x.com", Password: "p1"}, apperror.KindAuth},
		{"missing password", dto.LoginRequest{Email: "a@x.com"}, apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, &tt.req)
			assert.Nil(t, res)
			assert.True(t, apperror.Is(err, tt.kind), "got %v", err)
		})
	}
}

func TestAuthService_VerifyRejects(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	userId := uuid.New()

	sign := func(method jwt.SigningMethod, key interface{}, claims Claims) string {
		tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return tok
	}
	valid := Claims{
		UserID: userId.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := Claims{UserID: userId.String()}
	badUser := valid
	badUser.UserID = "not-a-uuid"

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "abc.def.ghi"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), valid)},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, testSecret, valid)},
		{"expired", sign(jwt.SigningMethodHS256, testSecret, expired)},
		{"no expiry", sign(jwt.SigningMethodHS256, testSecret, noExpiry)},
		{"bad user id", sign(jwt.SigningMethodHS256, testSecret, badUser)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(ctx, tt.token)
			assert.True(t, apperror.Is(err, apperror.KindAuth), "got %v", err)
		})
	}

	_, err := svc.Verify(ctx, sign(jwt.SigningMethodHS256, testSecret, valid))
	assert.NoError(t, err)
}

func TestAuthService_Expiry(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Verify(ctx, login.Token)
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestAuthService_Logout(t *testing.T) {
	svc, activity := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &dto.SignupRequest{Username: "alice", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	first, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, first.Token))

	_, err = svc.Verify(ctx, first.Token)
	assert.True(t, apperror.Is(err, apperror.KindAuth))

	// other sessions of the same user stay valid
	_, err = svc.Verify(ctx, second.Token)
	assert.NoError(t, err)

	assert.Contains(t, activity.types(), events.UserLoggedOut)
}
