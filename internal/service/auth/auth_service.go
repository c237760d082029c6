package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/logging"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/validation"
	"github.com/cristalhq/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	ParseToken(ctx context.Context, token string) (domain.Caller, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error)
	EnsureUser(ctx context.Context, input RegisterInput, role domain.Role) (*domain.User, error)
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"max=100"`
}

// UserUpdate carries the admin-editable fields; nil leaves a field as is.
type UserUpdate struct {
	Enabled  *bool        `json:"enabled"`
	Role     *domain.Role `json:"role"`
	FullName *string      `json:"full_name"`
}

type Session struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

type Claims struct {
	UserID    int64       `json:"user_id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	ExpiresAt int64       `json:"exp"`
}

type AuthService struct {
	users      repository.UserRepository
	signer     jwt.Signer
	verifier   jwt.Verifier
	tokenTTL   time.Duration
	bcryptCost int
	validator  *validation.Validator
	logger     logrus.FieldLogger
	now        func() time.Time
}

type AuthServiceOption func(*AuthService)

func WithLogger(logger logrus.FieldLogger) AuthServiceOption {
	return func(s *AuthService) {
		s.logger = logger
	}
}

func WithBcryptCost(cost int) AuthServiceOption {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

func WithClock(now func() time.Time) AuthServiceOption {
	return func(s *AuthService) {
		s.now = now
	}
}

func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration, opts ...AuthServiceOption) (*AuthService, error) {
	key := []byte(secret)
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("create token signer: %w", err)
	}
	verifier, err := jwt.NewVerifierHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("create token verifier: %w", err)
	}

	s := &AuthService{
		users:      users,
		signer:     signer,
		verifier:   verifier,
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		validator:  validation.New(),
		logger:     logging.Discard(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "auth")
	return s, nil
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.create(ctx, input, domain.RoleUser)
}

func (s *AuthService) create(ctx context.Context, input RegisterInput, role domain.Role) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: string(hash),
		Role:         role,
		Enabled:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Enabled {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.tokenTTL)
	token, err := jwt.NewBuilder(s.signer).Build(&Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token.String(), ExpiresAt: expiresAt, User: user}, nil
}

// ParseToken verifies token and resolves it against the user it was issued
// to. Tokens of disabled or deleted users stop working at once, and the
// caller carries the user's current role rather than the one signed in.
func (s *AuthService) ParseToken(ctx context.Context, token string) (domain.Caller, error) {
	var claims Claims
	if err := jwt.ParseClaims([]byte(token), s.verifier, &claims); err != nil {
		return domain.Caller{}, ErrInvalidToken
	}
	if claims.UserID == 0 || !claims.Role.IsValid() || s.now().Unix() >= claims.ExpiresAt {
		return domain.Caller{}, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Caller{}, ErrInvalidToken
		}
		return domain.Caller{}, fmt.Errorf("token user: %w: %w", domain.ErrStorageUnavailable, err)
	}
	if !user.Enabled {
		return domain.Caller{}, ErrInvalidToken
	}
	return domain.Caller{UserID: user.ID, Role: user.Role}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Role != nil {
		if !update.Role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *update.Role)
		}
		user.Role = *update.Role
	}
	if update.Enabled != nil {
		user.Enabled = *update.Enabled
	}
	if update.FullName != nil {
		user.FullName = *update.FullName
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": id, "role": user.Role, "enabled": user.Enabled}).Info("user updated")
	return user, nil
}

// EnsureUser creates the account unless the username is taken already.
func (s *AuthService) EnsureUser(ctx context.Context, input RegisterInput, role domain.Role) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, input.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	return s.create(ctx, input, role)
}

var _ AuthUseCase = (*AuthService)(nil)
