package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
	domain "github.com/donaldgifford/markdown-pricer/pkg/types"
)

// PricingProvider defines the engine operations behind the pricing endpoints.
type PricingProvider interface {
	Simulate(ctx context.Context, in engine.SimulationInput, mode domain.Mode) engine.SimulationResult
	Model() engine.ModelInfo
}

// PricingHandler serves the interactive predictor and model description.
type PricingHandler struct {
	engine PricingProvider
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(e PricingProvider) *PricingHandler {
	return &PricingHandler{engine: e}
}

// SimulateInput describes a hypothetical item to price.
type SimulateInput struct {
	Mode string `query:"mode" doc:"greedy or ml; anything else means greedy"`
	Body struct {
		DaysToExpiry  float64 `json:"days_to_expiry"           doc:"Days until expiry; negative once expired"`
		StockPressure float64 `json:"stock_pressure"           doc:"Stock relative to expected demand"                 minimum:"0"`
		TurnoverRatio float64 `json:"turnover_ratio"           doc:"Sell-through ratio; below 1.0 counts as slow"      minimum:"0"`
		UnitPrice     float64 `json:"unit_price"               doc:"Undiscounted unit price"                           exclusiveMinimum:"0"`
		StockQuantity int     `json:"stock_quantity,omitempty" doc:"Units on hand"                                     minimum:"0"`
	}
}

// SimulateOutput is the interactive predictor's answer.
type SimulateOutput struct {
	Body engine.SimulationResult
}

// ModelOutput describes the loaded model.
type ModelOutput struct {
	Body engine.ModelInfo
}

// Simulate prices a hypothetical item. A failed ml prediction still returns
// 200 with the safe default discount and the failure reason.
func (h *PricingHandler) Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error) {
	in := engine.SimulationInput{
		DaysToExpiry:  input.Body.DaysToExpiry,
		StockPressure: input.Body.StockPressure,
		TurnoverRatio: input.Body.TurnoverRatio,
		UnitPrice:     input.Body.UnitPrice,
		StockQuantity: input.Body.StockQuantity,
	}
	return &SimulateOutput{Body: h.engine.Simulate(ctx, in, domain.ParseMode(input.Mode))}, nil
}

// Model returns the loaded model's name and feature importance.
func (h *PricingHandler) Model(_ context.Context, _ *struct{}) (*ModelOutput, error) {
	return &ModelOutput{Body: h.engine.Model()}, nil
}

// RegisterPricingRoutes registers pricing endpoints with the Huma API.
func RegisterPricingRoutes(api huma.API, h *PricingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "simulate-discount",
		Method:      http.MethodPost,
		Path:        "/api/v1/simulate",
		Summary:     "Price a hypothetical item",
		Description: "Returns the discount and final price for the given inputs, " +
			"with the greedy factor breakdown.",
		Tags:   []string{"pricing"},
		Errors: []int{http.StatusUnprocessableEntity},
	}, h.Simulate)

	huma.Register(api, huma.Operation{
		OperationID: "get-model",
		Method:      http.MethodGet,
		Path:        "/api/v1/model",
		Summary:     "Describe the loaded model",
		Description: "Returns the model backend name and, when available, feature importance.",
		Tags:        []string{"pricing"},
	}, h.Model)
}
