package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joblane/joblane/internal/handler/dto"
	"github.com/joblane/joblane/internal/repository"
	"github.com/joblane/joblane/internal/service"
)

// CompanyHandler handles HTTP requests for company operations.
type CompanyHandler struct {
	svc    *service.CompanyService
	logger *slog.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(svc *service.CompanyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{svc: svc, logger: logger}
}

// Create handles POST /companies.
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	company, err := h.svc.CreateCompany(r.Context(), service.CreateCompanyInput{
		Handle:       req.Handle,
		Name:         req.Name,
		NumEmployees: req.NumEmployees,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("company_created", "handle", company.Handle)

	writeJSON(w, http.StatusCreated, dto.CompanyResponse{Company: company})
}

// Get handles GET /companies/{handle}.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	company, err := h.svc.GetCompany(r.Context(), handle)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CompanyResponse{Company: company})
}

// List handles GET /companies.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCompanyFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	companies, err := h.svc.ListCompanies(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CompanyListResponse{Companies: companies})
}

// Update handles PATCH /companies/{handle}.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	var req dto.UpdateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	company, err := h.svc.UpdateCompany(r.Context(), handle, service.UpdateCompanyInput{
		Name:         req.Name,
		NumEmployees: req.NumEmployees,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("company_updated", "handle", handle)

	writeJSON(w, http.StatusOK, dto.CompanyResponse{Company: company})
}

// Delete handles DELETE /companies/{handle}.
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	if err := h.svc.DeleteCompany(r.Context(), handle); err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("company_deleted", "handle", handle)

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: handle})
}

// parseCompanyFilter reads list filters from the query string.
func parseCompanyFilter(r *http.Request) (repository.CompanyFilter, error) {
	var filter repository.CompanyFilter
	query := r.URL.Query()

	if v := query.Get("minEmployees"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errInvalidQueryInt("minEmployees")
		}
		filter.MinEmployees = &n
	}
	if v := query.Get("maxEmployees"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errInvalidQueryInt("maxEmployees")
		}
		filter.MaxEmployees = &n
	}
	filter.Name = query.Get("name")

	return filter, nil
}
