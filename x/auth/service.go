package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	recaptcha "github.com/xinguang/go-recaptcha"
	"golang.org/x/crypto/bcrypt"

	"github.com/lorekeep/lorekeep/core"
	"github.com/lorekeep/lorekeep/util"
	"github.com/lorekeep/lorekeep/x/user"
)

// ErrInvalidCredentials is returned when the email is unknown or the
// password does not match. Callers must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service is the interface for auth service
type Service interface {
	Register(ctx context.Context, name, email, password, captcha string, age *int) (core.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, claims Claims) error
	ParseToken(ctx context.Context, token string) (Claims, error)
	Identify(next echo.HandlerFunc) echo.HandlerFunc
}

type service struct {
	repository Repository
	user       user.Service
	config     util.Config
	captcha    *recaptcha.ReCAPTCHA
}

// NewService creates a new auth service. Captcha verification is active
// only when a secret is configured.
func NewService(repository Repository, user user.Service, config util.Config) Service {

	var captcha *recaptcha.ReCAPTCHA
	if config.Lorekeep.CaptchaSecret != "" {
		c, err := recaptcha.NewWithSecert(config.Lorekeep.CaptchaSecret)
		if err != nil {
			slog.Error(
				"failed to initialize recaptcha verifier",
				slog.String("error", err.Error()),
			)
		} else {
			captcha = c
		}
	}

	return &service{repository, user, config, captcha}
}

// Register creates an account with a hashed credential and issues its
// first session token.
func (s *service) Register(ctx context.Context, name, email, password, captcha string, age *int) (core.User, string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Register")
	defer span.End()

	if s.captcha != nil {
		if err := s.captcha.Verify(captcha); err != nil {
			span.RecordError(err)
			return core.User{}, "", core.NewErrorValidation("captcha verification failed")
		}
	}

	if len(password) < 8 {
		return core.User{}, "", core.NewErrorValidation("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return core.User{}, "", err
	}

	created, err := s.user.Create(ctx, core.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Age:          age,
	})
	if err != nil {
		span.RecordError(err)
		return core.User{}, "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		span.RecordError(err)
		return core.User{}, "", err
	}

	return created, token, nil
}

// Login checks the credential and issues a session token
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	account, err := s.user.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return "", ErrInvalidCredentials
	}

	if account.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(account)
}

// Logout revokes the presented token for the remainder of its lifetime
func (s *service) Logout(ctx context.Context, claims Claims) error {
	ctx, span := tracer.Start(ctx, "Auth.Service.Logout")
	defer span.End()

	if claims.ID == "" || claims.ExpiresAt == nil {
		return core.NewErrorValidation("token has no revocable identity")
	}

	return s.repository.Deny(ctx, claims.ID, claims.ExpiresAt.Time)
}

// ParseToken validates a token's signature and lifetime, then checks the
// logout denylist.
func (s *service) ParseToken(ctx context.Context, token string) (Claims, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.ParseToken")
	defer span.End()

	claims, err := ParseToken(token, s.config.Lorekeep.JwtSecret)
	if err != nil {
		span.RecordError(err)
		return Claims{}, err
	}

	denied, err := s.repository.IsDenied(ctx, claims.ID)
	if err != nil {
		span.RecordError(err)
		return Claims{}, err
	}
	if denied {
		return Claims{}, errors.New("token has been revoked")
	}

	return *claims, nil
}

func (s *service) issueToken(account core.User) (string, error) {
	ttl := time.Duration(s.config.Lorekeep.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := Claims{
		Name:  account.Name,
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Lorekeep.FQDN,
			Subject:   account.ID,
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Lorekeep.JwtSecret))
}

// ParseToken validates a raw token against the shared secret. The gateway
// uses this directly since it keeps no denylist connection.
func ParseToken(token string, secret string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
