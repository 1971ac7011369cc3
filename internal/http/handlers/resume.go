package handlers

import (
	"fmt"
	"io"
	"net/http"

	"ats/internal/app"
	"ats/internal/http/middleware"
	"ats/internal/http/response"
)

type ResumeHandler struct {
	resumes *app.ResumeService
}

func NewResumeHandler(resumes *app.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes}
}

func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	resumeID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	res, body, err := h.resumes.Download(r.Context(), recruiterID, resumeID)
	if err != nil {
		response.Error(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}
