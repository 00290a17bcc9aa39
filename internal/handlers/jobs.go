package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/govjobs/apiserver/internal/services"
)

// JobsHandler proxies keyword searches to the external job API.
type JobsHandler struct {
	jobsService *services.JobsService
}

// NewJobsHandler constructs a JobsHandler.
func NewJobsHandler(jobsService *services.JobsService) *JobsHandler {
	return &JobsHandler{jobsService: jobsService}
}

// JobsRouter registers job-search routes on the given router.
func JobsRouter(r chi.Router, jobsService *services.JobsService) {
	handler := NewJobsHandler(jobsService)

	r.Get("/", handler.Search)
}

// Search proxies GET /jobs?keyword= to USAJOBS and returns the normalized
// list of postings.
func (h *JobsHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	jobs, err := h.jobsService.Search(r.Context(), keyword)
	if err != nil {
		writeError(w, http.StatusBadGateway, "job search failed")
		return
	}

	writeJSON(w, http.StatusOK, jobs)
}
