package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/bookit/internal/common"
	"github.com/dmitrijs2005/bookit/internal/server/auth"
	"github.com/dmitrijs2005/bookit/internal/server/config"
)

const minPasswordLength = 8

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrRoleNotAllowed   = errors.New("role cannot be self-assigned")
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
)

// AuthResult is what login and registration hand back to the client.
type AuthResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

type Service struct {
	repo          Repository
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
	now           func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
		now:           time.Now,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.UserType == "" {
		in.UserType = RoleUser
	}

	switch {
	case in.Name == "" || in.Email == "" || in.Password == "":
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	case len(in.Password) < minPasswordLength:
		return nil, ErrPasswordTooShort
	case in.UserType != RoleUser && in.UserType != RoleVendor:
		return nil, ErrRoleNotAllowed
	}

	return s.create(ctx, in)
}

// SeedAdmin creates an admin account unless the email is already taken.
func (s *Service) SeedAdmin(ctx context.Context, name, email, password string) error {
	_, err := s.create(ctx, RegisterInput{Name: name, Email: email, Password: password, UserType: RoleAdmin})
	if err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	return nil
}

func (s *Service) create(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		UserType:     in.UserType,
		PasswordHash: hash,
		Notifications: []Notification{{
			ID:        uuid.NewString(),
			Message:   "Welcome to Bookit, " + in.Name + "!",
			CreatedAt: s.now().UTC(),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidLoginPassword
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorInvalidLoginPassword
	}

	return s.issue(user)
}

func (s *Service) issue(user *User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.UserType, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, User: user.Profile()}, nil
}

// Authenticate resolves a bearer token to its user ID.
func (s *Service) Authenticate(token string) (string, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*Profile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		if strings.TrimSpace(*upd.Email) == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
		}
		user.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	if upd.ProfilePicture != nil {
		user.ProfilePicture = *upd.ProfilePicture
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	p := user.Profile()
	return &p, nil
}

func (s *Service) ChangePassword(ctx context.Context, id, current, next string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(current)) != nil {
		return ErrWrongPassword
	}
	if len(next) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash

	return s.repo.Update(ctx, user)
}
