package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
	"github.com/donaldgifford/markdown-pricer/internal/inventory"
)

// Importer defines the interface for triggering an inventory import.
type Importer interface {
	RunImport(ctx context.Context) (int, error)
}

// ExpiryRefresher defines the interface for triggering an expiry refresh.
type ExpiryRefresher interface {
	RunExpiryRefresh(ctx context.Context) (int, error)
}

// TriggerHandler handles manual job trigger requests.
type TriggerHandler struct {
	importer  Importer
	refresher ExpiryRefresher
}

// NewTriggerHandler creates a new TriggerHandler.
func NewTriggerHandler(imp Importer, ref ExpiryRefresher) *TriggerHandler {
	return &TriggerHandler{importer: imp, refresher: ref}
}

// JobOutput is the response body for a triggered job.
type JobOutput struct {
	Body struct {
		Status string `json:"status" example:"import completed" doc:"Job status"`
		Rows   int    `json:"rows"   example:"1200"             doc:"Rows written"`
	}
}

// Import reads the configured source and replaces the stored inventory.
func (h *TriggerHandler) Import(ctx context.Context, _ *struct{}) (*JobOutput, error) {
	n, err := h.importer.RunImport(ctx)
	switch {
	case errors.Is(err, engine.ErrNoSource):
		return nil, huma.Error503ServiceUnavailable("import unavailable: " + err.Error())
	case errors.Is(err, inventory.ErrMalformedRow),
		errors.Is(err, inventory.ErrMissingColumn),
		errors.Is(err, inventory.ErrEmpty):
		return nil, huma.Error422UnprocessableEntity("import rejected: " + err.Error())
	case err != nil:
		return nil, huma.Error500InternalServerError("import failed: " + err.Error())
	}

	resp := &JobOutput{}
	resp.Body.Status = "import completed"
	resp.Body.Rows = n
	return resp, nil
}

// RefreshExpiry recomputes days to expiry and the expired flag.
func (h *TriggerHandler) RefreshExpiry(ctx context.Context, _ *struct{}) (*JobOutput, error) {
	n, err := h.refresher.RunExpiryRefresh(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("expiry refresh failed: " + err.Error())
	}

	resp := &JobOutput{}
	resp.Body.Status = "expiry refresh completed"
	resp.Body.Rows = n
	return resp, nil
}

// RegisterTriggerRoutes registers job trigger endpoints with the Huma API.
func RegisterTriggerRoutes(api huma.API, h *TriggerHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-import",
		Method:      http.MethodPost,
		Path:        "/api/v1/import",
		Summary:     "Trigger inventory import",
		Description: "Reads the configured inventory source and replaces the stored inventory. " +
			"A malformed file is rejected and nothing is written.",
		Tags: []string{"jobs"},
		Errors: []int{
			http.StatusServiceUnavailable,
			http.StatusUnprocessableEntity,
			http.StatusInternalServerError,
		},
	}, h.Import)

	huma.Register(api, huma.Operation{
		OperationID: "trigger-expiry-refresh",
		Method:      http.MethodPost,
		Path:        "/api/v1/expiry/refresh",
		Summary:     "Trigger expiry refresh",
		Description: "Recomputes days to expiry and the expired flag from each item's expiration date.",
		Tags:        []string{"jobs"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.RefreshExpiry)
}
