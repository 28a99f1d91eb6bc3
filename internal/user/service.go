package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/user/repo"
)

// PasswordHasher defines minimal hashing interface (abstract so tests can use a cheap cost).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service orchestrates signup and password login against the Users table.
type Service struct {
	repo   *userrepo.UserRepo
	hasher PasswordHasher
	logger *zap.SugaredLogger
}

func NewService(r *userrepo.UserRepo, hasher PasswordHasher, logger *zap.SugaredLogger) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{repo: r, hasher: hasher, logger: logger}
}

type SignupInput struct {
	Email        string
	Password     string
	Name         string
	MajorProgram string
	GradYear     string
	Role         string
}

// Signup validates the input, rejects an email already on file and stores
// the user with a bcrypt hash.
func (s *Service) Signup(ctx context.Context, actor identity.Actor, in SignupInput) (*entity.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, apperrors.NewValidationError("Email, password, and name are required")
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("Password must be at least 6 characters")
	}
	role := identity.RoleStudent
	if in.Role != "" {
		r, ok := identity.ParseRole(in.Role)
		if !ok {
			return nil, apperrors.NewValidationError("Invalid role selected")
		}
		role = r
	}

	_, err := s.repo.GetByEmail(ctx, actor, in.Email)
	switch {
	case err == nil:
		return nil, apperrors.ErrDuplicateUser
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, actor, entity.NewUser{
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		MajorProgram: in.MajorProgram,
		GradYear:     in.GradYear,
		Role:         string(role),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user signed up", "user_id", u.UserID, "role", u.Role)
	return u, nil
}

// Login checks email and password. Unknown email and wrong password fail the
// same way.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, identity.Anonymous, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" || !s.hasher.Verify(u.PasswordHash, password) {
		return nil, apperrors.ErrBadCredentials
	}
	return u, nil
}

// Lookup returns the user for email, or nil when there is none.
func (s *Service) Lookup(ctx context.Context, actor identity.Actor, email string) (*entity.User, error) {
	if err := actor.RequireFor(email); err != nil {
		return nil, err
	}
	u, err := s.repo.GetByEmail(ctx, actor, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// ActorOf is the identity a logged-in user acts as. Unknown stored roles
// degrade to Student.
func ActorOf(u *entity.User) identity.Actor {
	role, ok := identity.ParseRole(u.Role)
	if !ok {
		role = identity.RoleStudent
	}
	return identity.Actor{UserID: u.UserID, Email: u.Email, Name: u.Name, Role: role}
}
