package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"prizeladder/internal/models"
	"prizeladder/internal/security"
	"prizeladder/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	emailService         *service.EmailService
	tokens               *security.TokenManager
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, tokens *security.TokenManager, oauthProviders map[string]OAuthProvider, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		tokens:               tokens,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Balance int64  `json:"balance"`
	Token   string `json:"token,omitempty"`
	// Password is set only for freshly created guest accounts
	Password string `json:"password,omitempty"`
}

// Register handles account creation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "Email already taken", "", nil)
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "Registration failed", "registration error", err)
		}
		return
	}

	if h.emailService != nil && h.emailService.IsEnabled() {
		_ = h.emailService.SendWelcomeEmail(r.Context(), user.Email, user.Name)
	}

	h.respondWithSession(w, r, user, "")
}

// Login authenticates a player, sets a session cookie and returns a
// bearer token for API clients
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Login failed", "login error", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	h.respond(w, user, "")
}

// Guest creates a throwaway account and logs it in. The generated
// password is returned once so the player can come back later.
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	user, password, err := h.authService.RegisterGuest()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create guest account", "guest registration error", err)
		return
	}

	h.respondWithSession(w, r, user, password)
}

// Logout invalidates the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me returns the authenticated player's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}
	h.respond(w, user, "")
}

func (h *AuthHandler) respondWithSession(w http.ResponseWriter, r *http.Request, user *models.User, guestPassword string) {
	session, err := h.authService.CreateSessionFor(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create session", "session error", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	h.respond(w, user, guestPassword)
}

func (h *AuthHandler) respond(w http.ResponseWriter, user *models.User, guestPassword string) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to issue token", "token error", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Balance:  user.Balance,
		Token:    token,
		Password: guestPassword,
	})
}
