// Package session issues and verifies the bearer tokens that carry the
// caller's identity between requests.
package session

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/pkg/utilities"
)

type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// ConfigFromEnv reads SESSION_SECRET, SESSION_TTL and SESSION_ISSUER. Without
// a secret a random one is generated, so tokens do not survive a restart.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Secret: []byte(os.Getenv("SESSION_SECRET")),
		TTL:    24 * time.Hour,
		Issuer: os.Getenv("SESSION_ISSUER"),
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "engagement-portal"
	}
	if d, err := time.ParseDuration(os.Getenv("SESSION_TTL")); err == nil && d > 0 {
		cfg.TTL = d
	}
	if len(cfg.Secret) == 0 {
		cfg.Secret = make([]byte, 32)
		if _, err := rand.Read(cfg.Secret); err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return cfg, nil
}

type claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{secret: cfg.Secret, ttl: cfg.TTL, issuer: cfg.Issuer, now: time.Now}
}

// Issue returns a signed token for actor and its expiry.
func (i *Issuer) Issue(actor identity.Actor) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	c := claims{
		Email: actor.Email,
		Name:  actor.Name,
		Role:  string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utilities.NewSnowflakeID(),
			Issuer:    i.issuer,
			Subject:   actor.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse verifies token and returns the actor it was issued for.
func (i *Issuer) Parse(token string) (identity.Actor, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return identity.Anonymous, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
	}
	role, ok := identity.ParseRole(c.Role)
	if !ok || c.Subject == "" {
		return identity.Anonymous, fmt.Errorf("%w: malformed claims", apperrors.ErrUnauthenticated)
	}
	return identity.Actor{UserID: c.Subject, Email: c.Email, Name: c.Name, Role: role}, nil
}

type ctxKey struct{}

func WithActor(ctx context.Context, a identity.Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// ActorFrom returns the request's actor, or Anonymous.
func ActorFrom(ctx context.Context) identity.Actor {
	if a, ok := ctx.Value(ctxKey{}).(identity.Actor); ok {
		return a
	}
	return identity.Anonymous
}

// Middleware resolves the Bearer token, if any, into the request's actor.
// A missing, malformed or stale token leaves the request Anonymous; operations
// that need an identity reject it themselves.
func Middleware(i *Issuer, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(auth) < len("bearer ") || !strings.EqualFold(auth[:len("bearer ")], "bearer ") {
				logger.Debugw("authorization header ignored", "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}
			actor, err := i.Parse(strings.TrimSpace(auth[len("bearer "):]))
			if err != nil {
				logger.Debugw("session token rejected", "path", r.URL.Path, "err", err)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
