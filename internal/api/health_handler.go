package api

import (
	"net/http"
	"time"

	"github.com/easybiz/easybiz-api/internal/api/shared"
	"github.com/easybiz/easybiz-api/internal/service"
)

// HealthHandler serves the root and health endpoints.
type HealthHandler struct {
	contentService service.ContentService
	projectName    string
	version        string
	now            func() time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(contentService service.ContentService, projectName, version string) *HealthHandler {
	return &HealthHandler{
		contentService: contentService,
		projectName:    projectName,
		version:        version,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Root handles GET /.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, RootResponse{
		Message: h.projectName,
		Status:  "running",
	})
}

// Health handles GET /api/v1/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:            "healthy",
		Timestamp:         h.now(),
		Version:           h.version,
		AvailableServices: h.contentService.AvailableServices(),
		Tasks:             h.contentService.TaskCounts(),
	})
}
