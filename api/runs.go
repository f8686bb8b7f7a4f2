// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

func runsPath(graphID int64) string { return graphPath(graphID) + "/tsp/runs" }

func runPath(graphID, runID int64) string { return fmt.Sprintf("%s/%d", runsPath(graphID), runID) }

// RunOptimization asks the service to solve graphID with algo and store the
// run. The algorithm is validated before any request is sent.
func (c *Client) RunOptimization(ctx context.Context, graphID int64, algo Algorithm) (*RunResult, error) {
	if err := algo.Validate(); err != nil {
		return nil, err
	}
	q := url.Values{"algo": []string{string(algo)}}

	var out RunResult
	if err := c.do(ctx, http.MethodGet, graphPath(graphID)+"/tsp", q, nil, &out); err != nil {
		return nil, err
	}
	c.logger.Info("api: optimization finished",
		zap.Int64("graph_id", graphID),
		zap.String("algorithm", string(algo)),
		zap.Float64("cost", out.Cost),
		zap.Float64("seconds", out.TimeToCalculate),
	)

	return &out, nil
}

// ListRuns returns the stored runs of a graph in service order.
func (c *Client) ListRuns(ctx context.Context, graphID int64) ([]Run, error) {
	var out []Run
	if err := c.do(ctx, http.MethodGet, runsPath(graphID), nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetRun fetches one stored run.
func (c *Client) GetRun(ctx context.Context, graphID, runID int64) (*Run, error) {
	var r Run
	if err := c.do(ctx, http.MethodGet, runPath(graphID, runID), nil, nil, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// DeleteRun removes one stored run.
func (c *Client) DeleteRun(ctx context.Context, graphID, runID int64) error {
	return c.do(ctx, http.MethodDelete, runPath(graphID, runID), nil, nil, nil)
}

// DeleteAllRuns removes every stored run of a graph.
func (c *Client) DeleteAllRuns(ctx context.Context, graphID int64) error {
	return c.do(ctx, http.MethodDelete, runsPath(graphID), nil, nil, nil)
}
