package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joblane/joblane/internal/auth"
	"github.com/joblane/joblane/internal/handler/dto"
	"github.com/joblane/joblane/internal/model"
	"github.com/joblane/joblane/internal/service"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    *service.UserService
	issuer *auth.TokenIssuer
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, issuer *auth.TokenIssuer, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, issuer: issuer, logger: logger}
}

// Create handles POST /users. Admin-only: unlike registration, this
// route may create other admins.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	user, err := h.svc.CreateUser(r.Context(), service.CreateUserInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := h.issuer.Issue(model.Identity{Username: user.Username, IsAdmin: user.IsAdmin})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("user_created", "username", user.Username, "is_admin", user.IsAdmin)

	writeJSON(w, http.StatusCreated, dto.UserWithTokenResponse{User: user, Token: token})
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserListResponse{Users: users})
}

// Get handles GET /users/{username}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.svc.GetUser(r.Context(), username)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserResponse{User: user})
}

// Update handles PATCH /users/{username}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req dto.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), username, service.UpdateUserInput{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("user_updated", "username", username)

	writeJSON(w, http.StatusOK, dto.UserResponse{User: user})
}

// Delete handles DELETE /users/{username}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.svc.DeleteUser(r.Context(), username); err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("user_deleted", "username", username)

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: username})
}

// Apply handles POST /users/{username}/jobs/{id}.
func (h *UserHandler) Apply(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	id, err := jobID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	// The body is optional; the state defaults to "applied".
	var req dto.ApplyRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
			return
		}
	}

	app, err := h.svc.ApplyToJob(r.Context(), username, id, model.ApplicationState(req.State))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("application_recorded",
		"username", username,
		"job_id", id,
		"state", string(app.State),
	)

	writeJSON(w, http.StatusCreated, dto.ApplicationResponse{Application: app})
}
