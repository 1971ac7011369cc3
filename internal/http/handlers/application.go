package handlers

import (
	"net/http"
	"strings"
	"time"

	"ats/internal/app"
	"ats/internal/common"
	"ats/internal/domain/application"
	"ats/internal/http/middleware"
	"ats/internal/http/response"
	"ats/internal/storage"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

// Apply handles the multipart apply request: a "job_id" form value and a
// "file" part carrying the resume PDF.
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := r.ParseMultipartForm(storage.MaxResumeSize + 1<<20); err != nil {
		response.Error(w, common.NewError(common.CodeValidation, "invalid multipart request", err))
		return
	}
	jobID, err := common.ParseUUID(r.FormValue("job_id"))
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "valid job_id is required"}))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, common.NewValidationError("invalid resume", map[string]string{"file": "resume file is required"}))
		return
	}
	defer file.Close()
	if h.limiter != nil {
		key := "apply:" + candidateID.String()
		if !h.limiter.Allow(key, 5, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	receipt, err := h.applications.Apply(r.Context(), candidateID, jobID, storage.ResumeUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, receipt)
}

func (h *ApplicationHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	entries, err := h.applications.Dashboard(r.Context(), candidateID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, entries)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"status": "status is required"}))
		return
	}
	next, err := application.ParseStatus(req.Status)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), recruiterID, applicationID, next)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}
