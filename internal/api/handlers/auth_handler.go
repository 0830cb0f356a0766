package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/casavia/casavia-be/internal/auth"
	"github.com/casavia/casavia-be/internal/metrics"
	"github.com/casavia/casavia-be/internal/models"
	"github.com/casavia/casavia-be/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// AuthHandler handles registration, login and role promotion.
type AuthHandler struct {
	users     services.UserServiceProvider
	events    services.EventServiceProvider
	collector *metrics.Collector
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, events services.EventServiceProvider, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{users: users, events: events, collector: collector}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is returned by register and login.
type authResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Token    string   `json:"token"`
}

// Register handles new user registration. The payload chooses the initial
// role (USER or HOST).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil || payload.Role == "" {
		respondError(w, http.StatusBadRequest, "All fields including role are required")
		return
	}

	h.register(w, payload, []string{payload.Role})
}

// RegisterHost handles the dedicated host signup route; the account starts
// with the HOST role only.
func (h *AuthHandler) RegisterHost(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(payload); err != nil {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	h.register(w, payload, []string{models.RoleHost})
}

func (h *AuthHandler) register(w http.ResponseWriter, payload RegisterPayload, roles []string) {
	user, err := h.users.CreateUser(payload.Username, payload.Password, payload.FirstName, payload.LastName, payload.Email, roles)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondError(w, http.StatusInternalServerError, "An internal server error occurred")
		return
	}

	h.collector.RecordRegistration()
	if err := h.events.CreateEvent("user.registered", "info", "User "+user.Username+" registered", &user.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to record registration event")
	}

	respondJSON(w, http.StatusCreated, authResponse{Username: user.Username, Roles: user.Roles, Token: token})
}

// Login handles user authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, false)
}

// HostLogin is the role-specific login variant: the account must carry the
// HOST role.
func (h *AuthHandler) HostLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, true)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, requireHost bool) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.AuthenticateUser(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		h.collector.RecordLogin("failed")
		respondServiceError(w, err)
		return
	}

	if requireHost && !user.HasRole(models.RoleHost) {
		h.collector.RecordLogin("failed")
		respondServiceError(w, services.ErrNotHost)
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		respondError(w, http.StatusInternalServerError, "An internal server error occurred")
		return
	}

	h.collector.RecordLogin("ok")
	respondJSON(w, http.StatusOK, authResponse{Username: user.Username, Roles: user.Roles, Token: token})
}

// BecomeHost widens the caller's role set with HOST. The operation is
// idempotent and does not re-issue a token; the caller re-authenticates to
// obtain credentials reflecting the new role.
func (h *AuthHandler) BecomeHost(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authorization header is missing or invalid")
		return
	}

	user, err := h.users.BecomeHost(claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.events.CreateEvent("user.became_host", "info", "User "+user.Username+" became a host", &user.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to record promotion event")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"username": user.Username,
		"roles":    user.Roles,
	})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authorization header is missing or invalid")
		return
	}

	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	user.PasswordHash = ""
	respondJSON(w, http.StatusOK, user)
}
