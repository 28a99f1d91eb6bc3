package router

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/event"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/registration"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/review"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/user"
)

// Handlers groups the domain handlers mounted by RegisterRoutes.
type Handlers struct {
	User         *user.Handler
	Event        *event.Handler
	Registration *registration.Handler
	Mentorship   *mentorship.Handler
	Review       *review.Handler
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, h Handlers, sessions *session.Issuer, limits RateLimitConfig) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/auth/signup", h.User.Signup)
	mux.HandleFunc("POST /api/auth/login", h.User.Login)
	mux.HandleFunc("GET /api/auth/me", h.User.Me)

	mux.HandleFunc("GET /api/events", h.Event.List)

	mux.HandleFunc("GET /api/registrations", h.Registration.List)
	mux.HandleFunc("POST /api/register", h.Registration.Register)

	mux.HandleFunc("GET /api/mentorship", h.Mentorship.Status)
	mux.HandleFunc("POST /api/mentorship", h.Mentorship.Create)
	mux.HandleFunc("GET /api/mentorship-status", h.Mentorship.Latest)

	mux.HandleFunc("GET /api/review-queue", h.Review.Queue)
	mux.HandleFunc("POST /api/review-queue/approve", h.Review.Decide)

	var handler http.Handler = mux
	handler = session.Middleware(sessions, logger)(handler)
	handler = NewRateLimiter(limits).Middleware(handler)
	handler = SecurityHeadersMiddleware()(handler)
	handler = LoggingMiddleware(logger)(handler)
	handler = RequestIDMiddleware()(handler)
	return handler
}
