package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gncc/cricket-dashboard/dashboard"
	"github.com/gncc/cricket-dashboard/middleware"
	"github.com/gncc/cricket-dashboard/services"
)

const (
	SignUpSuccessMessage = "Account created successfully! You can now sign in."
	SignInSuccessMessage = "Welcome back!"
)

type AuthHandler struct {
	authService  services.AuthService
	secureCookie bool
	logger       *slog.Logger
}

func NewAuthHandler(authService services.AuthService, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Description Registers a captain or player. A confirmation link is issued but not required to sign in.
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "full_name, email, password, role and optional redirect_to"
// @Success 201 {object} map[string]interface{} "Account created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" || input.FullName == "" {
		badRequestResponse(w, r, errors.New("full name, email, and password are required"))
		return
	}

	user, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"user":    user,
		"message": SignUpSuccessMessage,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Description Verifies the credentials, sets the session cookie and returns the bearer token.
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "email and password"
// @Success 200 {object} map[string]interface{} "Signed in"
// @Failure 400 {object} map[string]string "Missing fields"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /api/auth/signin [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput

	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return
	}

	user, token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	h.logger.InfoContext(r.Context(), "user signed in", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))

	response := jsonResponse{
		"token":   token,
		"user":    user,
		"message": SignInSuccessMessage,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout godoc
// @Summary Sign out
// @Tags auth
// @Description Clears the session cookie.
// @Produce json
// @Success 200 {object} map[string]string "Signed out"
// @Router /api/auth/signout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": dashboard.SignedOutMessage}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Session godoc
// @Summary Current session
// @Tags auth
// @Description Returns the signed-in user's id, email, name and role.
// @Produce json
// @Success 200 {object} access.Session "Session"
// @Failure 401 {object} map[string]string "No session"
// @Security BearerAuth
// @Router /api/auth/session [get]
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		unauthorizedResponse(w, r, "not signed in")
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ConfirmEmail godoc
// @Summary Confirm an email address
// @Tags auth
// @Description Consumes the confirmation token and redirects to the stored destination.
// @Param token query string true "Confirmation token"
// @Success 303 "Redirect to the dashboard or the requested page"
// @Failure 400 {object} map[string]string "Invalid or used token"
// @Router /auth/confirm [get]
func (h *AuthHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		badRequestResponse(w, r, errors.New("confirmation token is required"))
		return
	}

	target, err := h.authService.ConfirmEmail(r.Context(), token)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(services.SessionTTL),
		MaxAge:   int(services.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
