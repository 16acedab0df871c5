package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/nstepanova/onboard/internal/models"
)

// ComponentService defines the interface for component-configuration
// operations required by the HTTP handlers.
type ComponentService interface {
	// All returns every entry ordered by page ascending.
	All(ctx context.Context) ([]models.ComponentConfig, error)
	// Set validates and upserts a single entry keyed on its name.
	Set(ctx context.Context, name string, page int) (*models.ComponentConfig, error)
}

// ComponentHandler handles HTTP requests for reading and updating the
// onboarding component configuration.
type ComponentHandler struct {
	// ComponentService performs the underlying configuration operations.
	ComponentService ComponentService
	// Logger records store-layer failures.
	Logger *zap.Logger
}

// SetConfigRequest is the batch payload for POST /api/admin/config.
type SetConfigRequest struct {
	Components []models.ComponentConfig `json:"components"`
}

// BatchEntryResult reports the outcome for one entry of a batch update:
// either the upserted value or the error that rejected it.
type BatchEntryResult struct {
	Name  string `json:"name"`
	Page  int    `json:"page,omitempty"`
	Error string `json:"error,omitempty"`
}

// BatchResponse is the aggregate answer for a batch update.
type BatchResponse struct {
	Message string             `json:"message"`
	Updated int                `json:"updated"`
	Failed  int                `json:"failed"`
	Data    []BatchEntryResult `json:"data"`
}

// GetConfig handles GET /api/admin/config (and the legacy
// /api/components mount). Entries come back ordered by page ascending.
func (h *ComponentHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	configs, err := h.ComponentService.All(r.Context())
	if err != nil {
		h.Logger.Error("store error", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "failed to fetch config")
		return
	}
	if configs == nil {
		configs = []models.ComponentConfig{}
	}
	writeJSON(w, http.StatusOK, configs)
}

// SetConfig handles POST /api/admin/config. Every entry is upserted
// independently and concurrently; one entry failing rolls nothing back,
// and the response reports the outcome per entry.
func (h *ComponentHandler) SetConfig(w http.ResponseWriter, r *http.Request) {
	var req SetConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Components == nil {
		writeJSONError(w, http.StatusBadRequest, "invalid input: components must be an array")
		return
	}

	results := make([]BatchEntryResult, len(req.Components))
	var wg sync.WaitGroup
	for i, entry := range req.Components {
		wg.Add(1)
		go func(i int, entry models.ComponentConfig) {
			defer wg.Done()
			cfg, err := h.ComponentService.Set(r.Context(), entry.Name, entry.Page)
			if err != nil {
				results[i] = BatchEntryResult{Name: entry.Name, Error: err.Error()}
				return
			}
			results[i] = BatchEntryResult{Name: cfg.Name, Page: cfg.Page}
		}(i, entry)
	}
	wg.Wait()

	resp := BatchResponse{Data: results}
	for _, res := range results {
		if res.Error != "" {
			resp.Failed++
		} else {
			resp.Updated++
		}
	}
	resp.Message = "configuration updated"
	if resp.Failed > 0 {
		resp.Message = "configuration partially updated"
	}
	writeJSON(w, http.StatusOK, resp)
}
