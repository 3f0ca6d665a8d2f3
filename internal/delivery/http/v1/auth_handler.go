package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	"github.com/yab-g4u/Ablack/internal/domain"
	"github.com/yab-g4u/Ablack/internal/usecase"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

type AuthHandler struct {
	usecase            *usecase.AuthUsecase
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	secureCookies      bool
}

func NewAuthHandler(u *usecase.AuthUsecase, atExpiry, rtExpiry time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		usecase:            u,
		accessTokenExpiry:  atExpiry,
		refreshTokenExpiry: rtExpiry,
		secureCookies:      secureCookies,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.usecase.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.setAuthCookies(w, result)
	utils.WriteJSON(w, http.StatusCreated, result)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	result, err := h.usecase.SignIn(r.Context(), req.Email, req.Password)
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		utils.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Sign in failed")
		return
	}

	h.setAuthCookies(w, result)
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if c, err := r.Cookie("refreshToken"); err == nil {
		refreshToken = c.Value
	}

	if err := h.usecase.SignOut(r.Context(), refreshToken); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Sign out failed")
		return
	}

	h.clearAuthCookies(w)
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if c, err := r.Cookie("refreshToken"); err == nil {
		refreshToken = c.Value
	} else {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		utils.WriteError(w, http.StatusUnauthorized, "No refresh token")
		return
	}

	result, err := h.usecase.Refresh(r.Context(), refreshToken)
	if err != nil {
		h.clearAuthCookies(w)
		utils.WriteError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.setAuthCookies(w, result)
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	account, profile, err := h.usecase.Me(r.Context(), user.ID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load account")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":    account,
		"profile": profile,
	})
}

// AuthGate reports whether the one-time sign-in prompt should be shown
// to this client. The first call per client returns true, every call
// after that false.
func (h *AuthHandler) AuthGate(w http.ResponseWriter, r *http.Request) {
	if _, signedIn := middleware.UserFromContext(r.Context()); signedIn {
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"showGate": false})
		return
	}

	show := h.usecase.ShouldShowAuthGate(r.Context(), middleware.ClientIDFromContext(r.Context()))
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"showGate": show})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.usecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to process request")
		return
	}

	// Same response whether or not the account exists.
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.usecase.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := h.usecase.GetProfile(r.Context(), user.ID)
	if errors.Is(err, domain.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var profile domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	profile.ID = user.ID

	updated, err := h.usecase.UpdateProfile(r.Context(), &profile)
	if errors.Is(err, domain.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Profile not found")
		return
	}
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, result *usecase.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(h.accessTokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    result.RefreshToken,
		Path:     "/api/v1/auth",
		MaxAge:   int(h.refreshTokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "accessToken", Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "", Path: "/api/v1/auth", MaxAge: -1, HttpOnly: true})
}
