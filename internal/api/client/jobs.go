package client

import (
	"context"
)

// JobResult is the response to a triggered job.
type JobResult struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// Import triggers an inventory import from the server's configured source.
func (c *Client) Import(ctx context.Context) (*JobResult, error) {
	var res JobResult
	if err := c.post(ctx, "/api/v1/import", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RefreshExpiry triggers an expiry refresh.
func (c *Client) RefreshExpiry(ctx context.Context) (*JobResult, error) {
	var res JobResult
	if err := c.post(ctx, "/api/v1/expiry/refresh", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
