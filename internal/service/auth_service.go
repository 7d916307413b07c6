// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/entity"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/logger"
	"ai-querychat-be/internal/repository/contract"
	"ai-querychat-be/internal/repository/store"
	"ai-querychat-be/pkg/events"
	"ai-querychat-be/pkg/revocation"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgSignupFieldsRequired = "Username, email, and password are required"
	msgLoginFieldsRequired  = "Email and password are required"
	msgInvalidCredentials   = "Invalid credentials"
	msgInvalidToken         = "Invalid token"
)

var fieldValidator = validator.New()

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Verify(ctx context.Context, token string) (uuid.UUID, error)
	Logout(ctx context.Context, token string) error
}

// Claims is the token payload. user_id duplicates sub for older clients.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type AuthOptions struct {
	Secret    []byte
	ExpiresIn time.Duration
}

type authService struct {
	store    store.Store
	revoked  revocation.List
	activity IActivityPublisher
	logger   logger.ILogger
	opts     AuthOptions
	now      func() time.Time
}

func NewAuthService(st store.Store, revoked revocation.List, activity IActivityPublisher, log logger.ILogger, opts AuthOptions) IAuthService {
	if opts.ExpiresIn <= 0 {
		opts.ExpiresIn = time.Hour
	}
	return &authService{
		store:    st,
		revoked:  revoked,
		activity: activity,
		logger:   log,
		opts:     opts,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	const op = "AuthService.Signup"

	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, apperror.Validation(op, msgSignupFieldsRequired)
	}
	if err := fieldValidator.Var(email, "email"); err != nil {
		return nil, apperror.Validation(op, "Email must be a valid email address")
	}

	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Server(op, err)
	}
	if existing != nil {
		return nil, apperror.Conflict(op, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Server(op, err)
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, contract.ErrDuplicateEmail) {
			return nil, apperror.Conflict(op, "Email already registered")
		}
		return nil, apperror.Server(op, err)
	}

	s.activity.Publish(ctx, events.New(events.UserSignedUp, map[string]interface{}{
		"user_id": user.Id.String(),
	}))

	return &dto.SignupResponse{Id: user.Id, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	const op = "AuthService.Login"

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperror.Validation(op, msgLoginFieldsRequired)
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Server(op, err)
	}
	if user == nil {
		return nil, apperror.Auth(op, msgInvalidCredentials, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Auth(op, msgInvalidCredentials, err)
	}

	token, err := s.issueToken(user.Id)
	if err != nil {
		return nil, apperror.Server(op, err)
	}

	s.activity.Publish(ctx, events.New(events.UserLoggedIn, map[string]interface{}{
		"user_id": user.Id.String(),
	}))

	return &dto.LoginResponse{Token: token}, nil
}

func (s *authService) issueToken(userId uuid.UUID) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userId.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userId.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.ExpiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.opts.Secret)
}

func (s *authService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *authService) Verify(ctx context.Context, token string) (uuid.UUID, error) {
	const op = "AuthService.Verify"

	if token == "" {
		return uuid.Nil, apperror.Auth(op, "Missing token", nil)
	}

	claims, err := s.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, apperror.Auth(op, "Token expired", err)
		}
		return uuid.Nil, apperror.Auth(op, msgInvalidToken, err)
	}

	userId, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperror.Auth(op, msgInvalidToken, err)
	}

	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			// fail open: the signature and expiry already checked out
			s.logger.Warn(op, "Revocation lookup failed", map[string]interface{}{"error": err.Error()})
		} else if revoked {
			return uuid.Nil, apperror.Auth(op, "Token revoked", nil)
		}
	}

	return userId, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	const op = "AuthService.Logout"

	claims, err := s.parse(token)
	if err != nil {
		return apperror.Auth(op, msgInvalidToken, err)
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperror.Server(op, err)
	}

	s.activity.Publish(ctx, events.New(events.UserLoggedOut, map[string]interface{}{
		"user_id": claims.UserID,
	}))
	return nil
}
