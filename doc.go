// SPDX-License-Identifier: MIT

// Package tourcanvas is an interactive graph-editing engine for building
// directed weighted graphs and inspecting optimized tours over them.
//
// The engine is split into small packages:
//
//	core/        Document: nodes, directed edges keyed "from-to", validation
//	history/     undo stack of reversible edit entries
//	connect/     connect-mode state machine (draw, then weigh, an edge)
//	importer/    bulk (From, To, Cost) row import, CSV source
//	overlay/     projection of a tour onto the rendered edge set
//	tour/        local tour cost, reachability, solvability checks
//	api/         client of the persistence and optimization service
//	editor/      screen state: Editor (build/edit) and Viewer (results)
//
// cmd/tourcanvas wires them into a line-oriented shell.
//
// Quick start:
//
//	d := core.NewDocument("depots")
//	d.AddNode("A")
//	d.AddNode("B")
//	d.AddEdge("A", "B", 2.5)
//	res, _ := overlay.Compute(d, []string{"A", "B", "A"})
//	// res.Styles highlights A-B; res.Synthetic holds a visual B-A edge.
package tourcanvas
