package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	tokenTTL     time.Duration
	cookieDomain string
	cookieSecure bool
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenTTL:     tokenTTL,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type loginResponse struct {
	Customer    *domain.Customer `json:"customer"`
	AccessToken string           `json:"access_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	customer, accessToken, err := h.authService.Login(r.Context(), req.PhoneNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setAccessTokenCookie(w, accessToken)
	writeJSON(w, http.StatusOK, loginResponse{Customer: customer, AccessToken: accessToken})
}

// Logout only clears the cookie; tokens are stateless and expire on their own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.expireCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})
}

func (h *AuthHandler) expireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessTokenCookie, MaxAge: -1, Path: "/", Domain: h.cookieDomain})
}
