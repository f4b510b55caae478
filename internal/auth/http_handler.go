package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"libraryapi/internal/httpx"
	"libraryapi/internal/user"
)

const tokenTTL = 12 * time.Hour

type HTTPHandler struct {
	users  *user.Service
	secret string
}

func NewHTTPHandler(users *user.Service, secret string) *HTTPHandler {
	return &HTTPHandler{users: users, secret: secret}
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// Register handles POST /api/users/register.
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if violations := httpx.ValidateStruct(req); violations != nil {
		httpx.JSONErrorList(w, http.StatusBadRequest, violations)
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			httpx.JSONErrors(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.JSONCreated(w, u)
}

// Login handles POST /api/users/login.
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if violations := httpx.ValidateStruct(req); violations != nil {
		httpx.JSONErrorList(w, http.StatusBadRequest, violations)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			httpx.JSONErrors(w, http.StatusUnauthorized, err.Error())
			return
		}
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := GenerateToken(h.secret, u.ID, tokenTTL)
	if err != nil {
		httpx.JSONErrors(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpx.JSONOK(w, tokenResponse{Token: token, ExpiresIn: int(tokenTTL.Seconds())})
}
