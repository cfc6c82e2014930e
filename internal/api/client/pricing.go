package client

import (
	"context"

	"github.com/donaldgifford/markdown-pricer/internal/engine"
)

// Simulate prices a hypothetical item.
func (c *Client) Simulate(
	ctx context.Context,
	in engine.SimulationInput,
	mode string,
) (*engine.SimulationResult, error) {
	var res engine.SimulationResult
	if err := c.post(ctx, withQuery("/api/v1/simulate", "mode", mode), in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Model describes the server's loaded model.
func (c *Client) Model(ctx context.Context) (*engine.ModelInfo, error) {
	var info engine.ModelInfo
	if err := c.get(ctx, "/api/v1/model", &info); err != nil {
		return nil, err
	}
	return &info, nil
}
