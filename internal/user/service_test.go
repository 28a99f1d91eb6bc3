package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/user/repo"
)

func newService(t *testing.T) (*Service, *sheet.MemoryStore) {
	t.Helper()
	m := sheet.NewMemoryStore()
	m.Seed(entity.Users.Table, sheet.Grid{entity.Users.Columns})
	lg := zap.NewNop().Sugar()
	return NewService(userrepo.NewUserRepo(m, lg), BcryptHasher{Cost: bcrypt.MinCost}, lg), m
}

func TestSignup_Validation(t *testing.T) {
	svc, _ := newService(t)
	cases := []struct {
		name string
		in   SignupInput
		msg  string
	}{
		{"missing name", SignupInput{Email: "a@tamu.edu", Password: "secret1"}, "Email, password, and name are required"},
		{"bad email", SignupInput{Email: "a@tamu", Password: "secret1", Name: "A"}, "Invalid email format"},
		{"short password", SignupInput{Email: "a@tamu.edu", Password: "12345", Name: "A"}, "Password must be at least 6 characters"},
		{"bad role", SignupInput{Email: "a@tamu.edu", Password: "secret1", Name: "A", Role: "Dean"}, "Invalid role selected"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), identity.Anonymous, tc.in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.EqualError(t, err, tc.msg)
		})
	}
}

func TestSignup_StoresHashAndDefaultsRole(t *testing.T) {
	svc, m := newService(t)
	u, err := svc.Signup(context.Background(), identity.Anonymous, SignupInput{
		Email: "Ada@tamu.edu", Password: "secret1", Name: "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "Student", u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	grid, _ := m.ReadTable(context.Background(), entity.Users.Table)
	require.Len(t, grid, 2)
	assert.Equal(t, "Ada@tamu.edu", grid[1][1])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(grid[1][2]), []byte("secret1")))
}

func TestSignup_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, m := newService(t)
	_, err := svc.Signup(context.Background(), identity.Anonymous, SignupInput{Email: "ada@tamu.edu", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), identity.Anonymous, SignupInput{Email: "ADA@tamu.edu", Password: "secret2", Name: "Ada"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateUser)
	grid, _ := m.ReadTable(context.Background(), entity.Users.Table)
	assert.Len(t, grid, 2)
}

func TestLogin(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Signup(context.Background(), identity.Anonymous, SignupInput{
		Email: "ga@tamu.edu", Password: "secret1", Name: "Grace", Role: "Graduate Assistant (GA)",
	})
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "GA@tamu.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleGA, ActorOf(u).Role)

	_, err = svc.Login(context.Background(), "ga@tamu.edu", "wrong-pass")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)

	_, err = svc.Login(context.Background(), "nobody@tamu.edu", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrBadCredentials)
}

func TestLookup(t *testing.T) {
	svc, _ := newService(t)
	u, err := svc.Signup(context.Background(), identity.Anonymous, SignupInput{Email: "ada@tamu.edu", Password: "secret1", Name: "Ada"})
	require.NoError(t, err)
	ada := ActorOf(u)

	got, err := svc.Lookup(context.Background(), ada, "ada@tamu.edu")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, got.UserID)

	_, err = svc.Lookup(context.Background(), ada, "bob@tamu.edu")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	admin := identity.Actor{UserID: "USER-9", Role: identity.RoleAdmin}
	got, err = svc.Lookup(context.Background(), admin, "bob@tamu.edu")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestActorOf_UnknownRole(t *testing.T) {
	a := ActorOf(&entity.User{UserID: "USER-1", Role: "Alumni"})
	assert.Equal(t, identity.RoleStudent, a.Role)
}
