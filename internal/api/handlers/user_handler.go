package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kavr/tasktrack-be/internal/auth"
	"github.com/kavr/tasktrack-be/internal/models"
	"github.com/kavr/tasktrack-be/internal/services"
	"github.com/kavr/tasktrack-be/internal/validation"
)

// UserHandler handles registration and login requests.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload models.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Malformed request body")
		return
	}
	if fieldErrs := validation.Struct(&payload); fieldErrs != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fieldErrs)
		return
	}

	user, err := h.service.Register(r.Context(), &payload)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			// Combined message on purpose: the response must not reveal
			// which of the two fields collided.
			writeDetail(w, http.StatusBadRequest, "Username or email already exists")
			return
		}
		writeInternalError(w, err, "Failed to register user")
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

// loginForm mirrors the form-encoded credentials of a login request.
type loginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles user authentication and token issuance. Credentials come
// form-encoded, not as JSON.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Malformed form body")
		return
	}
	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if fieldErrs := validation.Struct(&form); fieldErrs != nil {
		writeDetail(w, http.StatusUnprocessableEntity, fieldErrs)
		return
	}

	user, err := h.service.Authenticate(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", form.Username).Msg("Failed authentication attempt")
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeInternalError(w, err, "Failed to authenticate user")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		writeInternalError(w, err, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
