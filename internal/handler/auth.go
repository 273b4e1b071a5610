package handler

import (
	"log/slog"
	"net/http"

	"github.com/joblane/joblane/internal/auth"
	"github.com/joblane/joblane/internal/handler/dto"
	"github.com/joblane/joblane/internal/model"
	"github.com/joblane/joblane/internal/service"
)

// AuthHandler handles login and self-service registration.
type AuthHandler struct {
	svc    *service.UserService
	issuer *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.UserService, issuer *auth.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, issuer: issuer, logger: logger}
}

// Token handles POST /auth/token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	user, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.issuer.Issue(model.Identity{Username: user.Username, IsAdmin: user.IsAdmin})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("login", "username", user.Username)

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

// Register handles POST /auth/register. Always creates a non-admin.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), service.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.issuer.Issue(model.Identity{Username: user.Username})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("user_registered", "username", user.Username)

	writeJSON(w, http.StatusCreated, dto.TokenResponse{Token: token})
}
