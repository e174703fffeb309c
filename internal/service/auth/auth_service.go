package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/internal/repository"
	"wolves-hub/internal/service"
	"wolves-hub/pkg/errors"
	"wolves-hub/pkg/logger"
	"wolves-hub/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// MaxFailedLogins is the number of failed logins allowed per email in the
// rate limit window
const MaxFailedLogins = 5

const adminName = "Administrator"

// tokenClaims is the JWT payload of an access token
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service implements the AuthService interface
type Service struct {
	users  repository.UserRepository
	cache  *service.CacheService
	secret []byte
	ttl    time.Duration
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a new auth service. cache may be nil, which disables
// the login rate limit.
func NewService(users repository.UserRepository, cache *service.CacheService, secret string, ttl time.Duration, logger *logger.Logger) service.AuthService {
	return newService(users, cache, secret, ttl, logger)
}

func newService(users repository.UserRepository, cache *service.CacheService, secret string, ttl time.Duration, logger *logger.Logger) *Service {
	return &Service{
		users:  users,
		cache:  cache,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Login checks the credentials and issues an access token
func (s *Service) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if appErr := validation.Struct(req); appErr != nil {
		return nil, errors.NewValidationError("Invalid credentials", appErr.Details)
	}

	log := s.logger.WithField("email", req.Email)

	if s.cache != nil {
		attempts, err := s.cache.FailedLogins(ctx, req.Email)
		if err != nil {
			log.WithError(err).Warn("Failed to read login attempts")
		} else if attempts >= MaxFailedLogins {
			log.Warn("Login rate limited")
			return nil, errors.NewRateLimitError("Too many failed login attempts, try again later")
		}
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewInternalError("Failed to load user", err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.registerFailure(ctx, req.Email)
		log.Info("Login failed")
		return nil, errors.NewAuthenticationError("Invalid email or password")
	}

	if s.cache != nil {
		s.cache.ResetFailedLogins(ctx, req.Email)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, errors.NewInternalError("Failed to issue token", err)
	}

	log.WithField("user_id", user.ID).Info("Login succeeded")
	return &domain.LoginResponse{
		Token: token,
		User: domain.UserSummary{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}

func (s *Service) registerFailure(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.RegisterFailedLogin(ctx, email); err != nil {
		s.logger.WithError(err).Warn("Failed to count login attempt")
	}
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken validates an access token and returns its claims
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.AuthClaims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if stderrors.Is(err, jwt.ErrTokenExpired) {
		return nil, errors.NewAuthenticationError("Token has expired")
	}
	if err != nil {
		s.logger.WithError(err).Debug("Rejected access token")
		return nil, errors.NewAuthenticationError("Invalid token")
	}

	sub, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.Email == "" {
		return nil, errors.NewAuthenticationError("Invalid token")
	}

	out := &domain.AuthClaims{Sub: sub, Email: claims.Email}
	if claims.IssuedAt != nil {
		out.Iat = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		out.Exp = claims.ExpiresAt.Unix()
	}
	return out, nil
}

// EnsureAdminUser creates the first operator account when no user exists
func (s *Service) EnsureAdminUser(ctx context.Context, email, password string) error {
	total, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &domain.User{
		Name:         adminName,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.WithField("email", user.Email).Info("Admin user created")
	return nil
}
