// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func graphPath(id int64) string { return fmt.Sprintf("/api/graphs/%d", id) }

// ListGraphIDs returns the IDs of the caller's graphs.
func (c *Client) ListGraphIDs(ctx context.Context) ([]int64, error) {
	var out graphIDsResponse
	if err := c.do(ctx, http.MethodGet, "/api/graphs", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.GraphIDs, nil
}

// GetGraph fetches one stored graph.
func (c *Client) GetGraph(ctx context.Context, id int64) (*Graph, error) {
	var g Graph
	if err := c.do(ctx, http.MethodGet, graphPath(id), nil, nil, &g); err != nil {
		return nil, err
	}

	return &g, nil
}

// CreateGraph stores a new graph and returns its assigned ID.
func (c *Client) CreateGraph(ctx context.Context, req CreateGraphRequest) (int64, error) {
	var out CreateGraphResponse
	if err := c.do(ctx, http.MethodPost, "/api/graphs", nil, req, &out); err != nil {
		return 0, err
	}
	if out.GraphID == 0 {
		return 0, fmt.Errorf("api: create graph: response lacks graph_id")
	}
	c.logger.Info("api: graph created", zap.Int64("graph_id", out.GraphID))

	return out.GraphID, nil
}

// UpdateGraph replaces a stored graph. The service drops the graph's runs.
func (c *Client) UpdateGraph(ctx context.Context, id int64, req UpdateGraphRequest) error {
	return c.do(ctx, http.MethodPut, graphPath(id), nil, req, &messageResponse{})
}

// DeleteGraph removes a stored graph and its runs.
func (c *Client) DeleteGraph(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, graphPath(id), nil, nil, nil)
}

// ListGraphSummaries lists every graph with its details, fetched
// concurrently. Order follows ListGraphIDs. The first failure cancels the
// remaining fetches.
func (c *Client) ListGraphSummaries(ctx context.Context) ([]GraphSummary, error) {
	ids, err := c.ListGraphIDs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]GraphSummary, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.summaryPar)
	for i, id := range ids {
		g.Go(func() error {
			graph, err := c.GetGraph(gctx, id)
			if err != nil {
				return fmt.Errorf("api: graph %d: %w", id, err)
			}
			out[i] = graph.Summary()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
