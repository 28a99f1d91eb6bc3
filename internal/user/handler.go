package user

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/respond"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/session"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/user/entity"
)

// TokenIssuer signs session tokens for logged-in users.
type TokenIssuer interface {
	Issue(actor identity.Actor) (string, time.Time, error)
}

// Handler exposes HTTP endpoints for user operations (signup / login).
type Handler struct {
	svc    *Service
	tokens TokenIssuer
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, tokens TokenIssuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

// SignupRequest request body for signup endpoint.
type SignupRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	MajorProgram string `json:"major_program"`
	GradYear     string `json:"grad_year"`
	Role         string `json:"role"`
}

// AuthResponse carries the user and a session token.
type AuthResponse struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	u, err := h.svc.Signup(r.Context(), session.ActorFrom(r.Context()), SignupInput(req))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	h.writeAuth(w, http.StatusCreated, u)
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	u, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debugw("login failed", "err", err)
		respond.Error(w, h.logger, err)
		return
	}
	h.writeAuth(w, http.StatusOK, u)
}

// Me returns the caller's own user row.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor := session.ActorFrom(r.Context())
	if !actor.Authenticated() {
		respond.Error(w, h.logger, apperrors.ErrUnauthenticated)
		return
	}
	u, err := h.svc.Lookup(r.Context(), actor, actor.Email)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	if u == nil {
		respond.Error(w, h.logger, apperrors.NewNotFoundError("User not found"))
		return
	}
	respond.OK(w, u)
}

func (h *Handler) writeAuth(w http.ResponseWriter, status int, u *entity.User) {
	token, exp, err := h.tokens.Issue(ActorOf(u))
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	respond.JSON(w, status, respond.Envelope{Success: true, Data: AuthResponse{User: u, Token: token, ExpiresAt: exp}})
}
