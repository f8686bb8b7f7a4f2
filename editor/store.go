// SPDX-License-Identifier: MIT

package editor

import (
	"context"

	"github.com/katalvlaran/tourcanvas/api"
)

// Store persists graphs. *api.Client satisfies it.
type Store interface {
	CreateGraph(ctx context.Context, req api.CreateGraphRequest) (int64, error)
	UpdateGraph(ctx context.Context, id int64, req api.UpdateGraphRequest) error
	GetGraph(ctx context.Context, id int64) (*api.Graph, error)
}

// RunStore reads graphs and manages their optimization runs.
// *api.Client satisfies it.
type RunStore interface {
	GetGraph(ctx context.Context, id int64) (*api.Graph, error)
	RunOptimization(ctx context.Context, graphID int64, algo api.Algorithm) (*api.RunResult, error)
	ListRuns(ctx context.Context, graphID int64) ([]api.Run, error)
	DeleteRun(ctx context.Context, graphID, runID int64) error
	DeleteAllRuns(ctx context.Context, graphID int64) error
}

var (
	_ Store    = (*api.Client)(nil)
	_ RunStore = (*api.Client)(nil)
)
