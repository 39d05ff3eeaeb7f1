package api

import (
	"net/http"

	"github.com/easybiz/easybiz-api/internal/api/shared"
	"github.com/easybiz/easybiz-api/internal/generation"
	"github.com/easybiz/easybiz-api/internal/platform/logger"
	"github.com/easybiz/easybiz-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// ContentHandler handles generation and task polling requests.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// Generate handles POST /api/v1/generate, taking the generation type from the body.
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	h.submit(w, r, req)
}

// GenerateType returns a handler for a route that fixes the generation type.
func (h *ContentHandler) GenerateType(t generation.GenerationType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
			return
		}
		req.GenerationType = t
		h.submit(w, r, req)
	}
}

func (h *ContentHandler) submit(w http.ResponseWriter, r *http.Request, req GenerateRequest) {
	created, err := h.contentService.Submit(r.Context(), req.toGeneration())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	logger.FromContext(r.Context()).Debug("generation accepted",
		"task_id", created.ID,
		"generation_type", req.GenerationType)

	shared.RespondWithJSON(w, r, http.StatusAccepted, SubmitResponse{
		TaskID:    created.ID,
		Status:    created.Status,
		CreatedAt: created.CreatedAt,
	})
}

// GetTask handles GET /api/v1/task/{id}.
func (h *ContentHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.contentService.GetTask(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(t))
}
