package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joblane/joblane/internal/handler/dto"
	"github.com/joblane/joblane/internal/repository"
	"github.com/joblane/joblane/internal/service"
)

// JobHandler handles HTTP requests for job operations.
type JobHandler struct {
	svc    *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{svc: svc, logger: logger}
}

// Create handles POST /jobs.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	job, err := h.svc.CreateJob(r.Context(), service.CreateJobInput{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        req.Equity,
		CompanyHandle: req.CompanyHandle,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("job_created", "job_id", job.ID, "company_handle", job.CompanyHandle)

	writeJSON(w, http.StatusCreated, dto.JobResponse{Job: job})
}

// Get handles GET /jobs/{id}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	job, err := h.svc.GetJob(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JobResponse{Job: job})
}

// List handles GET /jobs.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJobFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	jobs, err := h.svc.ListJobs(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JobListResponse{Jobs: jobs})
}

// Update handles PATCH /jobs/{id}.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req dto.UpdateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	job, err := h.svc.UpdateJob(r.Context(), id, service.UpdateJobInput{
		Title:  req.Title,
		Salary: req.Salary,
		Equity: req.Equity,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("job_updated", "job_id", id)

	writeJSON(w, http.StatusOK, dto.JobResponse{Job: job})
}

// Delete handles DELETE /jobs/{id}.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := jobID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := h.svc.DeleteJob(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	h.logger.Info("job_deleted", "job_id", id)

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: strconv.FormatInt(id, 10)})
}

// jobID parses the {id} URL parameter.
func jobID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job id")
	}
	return id, nil
}

// parseJobFilter reads list filters from the query string.
func parseJobFilter(r *http.Request) (repository.JobFilter, error) {
	var filter repository.JobFilter
	query := r.URL.Query()

	if v := query.Get("minSalary"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, errInvalidQueryInt("minSalary")
		}
		filter.MinSalary = &n
	}
	if v := query.Get("hasEquity"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("hasEquity must be a boolean")
		}
		filter.HasEquity = b
	}
	filter.Title = query.Get("title")

	return filter, nil
}

// errInvalidQueryInt reports a non-numeric query parameter.
func errInvalidQueryInt(name string) error {
	return fmt.Errorf("%s must be an integer", name)
}
