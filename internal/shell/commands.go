// SPDX-License-Identifier: MIT

package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/core"
	"github.com/katalvlaran/tourcanvas/importer"
)

func (s *Shell) cmdNew(_ context.Context, args []string) error {
	s.ed = s.newEditor(strings.Join(args, " "))
	fmt.Fprintln(s.out, "new graph")
	return nil
}

func (s *Shell) cmdTitle(_ context.Context, args []string) error {
	s.ed.SetTitle(strings.Join(args, " "))
	return nil
}

func (s *Shell) cmdNode(_ context.Context, args []string) error {
	n, err := s.ed.AddNode(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "node %s\n", n.ID)
	return nil
}

func (s *Shell) cmdConnect(context.Context, []string) error {
	fmt.Fprintf(s.out, "connect mode: %s\n", s.ed.ToggleConnect())
	return nil
}

func (s *Shell) cmdDraw(_ context.Context, args []string) error {
	if err := s.ed.DrawEdge(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "weight for %s? (weight <value> | cancel)\n", core.EdgeKey(args[0], args[1]))
	return nil
}

func (s *Shell) cmdWeight(_ context.Context, args []string) error {
	e, err := s.ed.ProvideWeight(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "edge %s (%s)\n", e.ID, e.Label())
	return nil
}

func (s *Shell) cmdCancel(context.Context, []string) error { return s.ed.CancelWeight() }

func (s *Shell) cmdEscape(context.Context, []string) error {
	s.ed.Escape()
	fmt.Fprintf(s.out, "connect mode: %s\n", s.ed.ConnectState())
	return nil
}

func (s *Shell) cmdSelect(_ context.Context, args []string) error {
	switch {
	case args[0] == "none" && len(args) == 1:
		s.ed.ClearSelection()
		return nil
	case args[0] == "node" && len(args) == 2:
		return s.ed.SelectNode(args[1])
	case args[0] == "edge" && len(args) == 3:
		return s.ed.SelectEdge(args[1], args[2])
	}
	return fmt.Errorf("%w: select %s", ErrUsage, commands["select"].usage)
}

func (s *Shell) cmdDelete(context.Context, []string) error { return s.ed.DeleteSelected() }

func (s *Shell) cmdClear(context.Context, []string) error { return s.ed.Clear() }

func (s *Shell) cmdUndo(context.Context, []string) error {
	entry, err := s.ed.Undo()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "undid %s\n", entry.Kind())
	return nil
}

func (s *Shell) cmdImport(_ context.Context, args []string) error {
	f, err := s.open(args[0])
	if err != nil {
		s.Notify("Import failed", err)
		return err
	}
	defer f.Close()

	rep, err := s.ed.Import(importer.NewCSVSource(f))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "imported %d rows: %d nodes, %d edges\n", rep.Rows, rep.Nodes, rep.Edges)
	for _, w := range append(rep.Skipped, rep.Adjusted...) {
		fmt.Fprintf(s.out, "  row %d: %s\n", w.Index+1, w.Reason)
	}
	return nil
}

func (s *Shell) cmdShow(context.Context, []string) error {
	d := s.ed.Document()
	title := d.Title()
	if title == "" {
		title = "(untitled)"
	}
	if id, ok := d.GraphID(); ok {
		fmt.Fprintf(s.out, "%s [#%d]\n", title, id)
	} else {
		fmt.Fprintf(s.out, "%s [unsaved]\n", title)
	}
	for _, n := range d.Nodes() {
		fmt.Fprintf(s.out, "  node %s\n", n.ID)
	}
	for _, e := range d.Edges() {
		fmt.Fprintf(s.out, "  edge %s -> %s  %s\n", e.From, e.To, e.Label())
	}
	if id, ok := s.ed.Selection().Node(); ok {
		fmt.Fprintf(s.out, "  selected node %s\n", id)
	} else if e, ok := s.ed.Selection().Edge(); ok {
		fmt.Fprintf(s.out, "  selected edge %s\n", e.ID)
	}
	fmt.Fprintf(s.out, "  connect mode: %s, undo depth: %d\n", s.ed.ConnectState(), s.ed.UndoDepth())
	return nil
}

func (s *Shell) cmdSave(ctx context.Context, _ []string) error {
	id, err := s.ed.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "graph #%d\n", id)
	return nil
}

func (s *Shell) cmdLoad(ctx context.Context, args []string) error {
	id, err := parseID("graph-id", args[0])
	if err != nil {
		return err
	}
	if err := s.ed.Load(ctx, id); err != nil {
		return err
	}
	return s.cmdShow(ctx, nil)
}

func (s *Shell) cmdGraphs(ctx context.Context, _ []string) error {
	sums, err := s.client.ListGraphSummaries(ctx)
	if err != nil {
		s.Notify("Failed to list graphs", err)
		return err
	}
	if len(sums) == 0 {
		fmt.Fprintln(s.out, "no graphs")
	}
	for _, g := range sums {
		fmt.Fprintf(s.out, "  #%d %s (%d nodes, %d edges)\n", g.ID, g.Name, g.Nodes, g.Edges)
	}
	return nil
}

func (s *Shell) cmdRmGraph(ctx context.Context, args []string) error {
	id, err := parseID("graph-id", args[0])
	if err != nil {
		return err
	}
	if err := s.client.DeleteGraph(ctx, id); err != nil {
		s.Notify("Failed to delete graph", err)
		return err
	}
	if cur, ok := s.ed.Document().GraphID(); ok && cur == id {
		s.ed.Document().ClearGraphID()
	}
	s.Notify("Graph deleted successfully", nil)
	return nil
}

func (s *Shell) cmdView(ctx context.Context, args []string) error {
	id, err := parseID("graph-id", args[0])
	if err != nil {
		return err
	}
	if err := s.viewer.Load(ctx, id); err != nil {
		return err
	}
	return s.cmdRuns(ctx, nil)
}

func (s *Shell) cmdRuns(context.Context, []string) error {
	runs := s.viewer.Runs()
	if len(runs) == 0 {
		fmt.Fprintln(s.out, "no runs")
		return nil
	}
	selected, _ := s.viewer.Selected()
	for _, r := range runs {
		mark := " "
		if r.ID == selected {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s #%d %s cost=%s time=%s at %s\n",
			mark, r.ID, r.Algorithm, core.FormatWeight(r.Cost), r.Duration(), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (s *Shell) cmdRun(ctx context.Context, args []string) error {
	algo := s.algorithm
	if len(args) == 1 {
		parsed, err := api.ParseAlgorithm(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		algo = parsed
	}
	res, err := s.viewer.Run(ctx, algo)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: cost=%s path=%s\n", algo, core.FormatWeight(res.Cost), strings.Join(res.Path, " → "))
	return s.cmdRuns(ctx, nil)
}

func (s *Shell) cmdPick(_ context.Context, args []string) error {
	id, err := parseID("run-id", args[0])
	if err != nil {
		return err
	}
	if err := s.viewer.Select(id); err != nil {
		return err
	}
	if _, ok := s.viewer.Selected(); ok {
		sum, err := s.viewer.Summary(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "run #%d: %d hops, %s\n", id, sum.Hops, sum.Path)
		if !sum.Cycle {
			fmt.Fprintln(s.out, "  not a closed tour over every node")
		}
		if sum.HasLocalCost {
			fmt.Fprintf(s.out, "  reported cost %s, edge sum %s\n", core.FormatWeight(sum.Run.Cost), core.FormatWeight(sum.LocalCost))
		}
	} else {
		fmt.Fprintf(s.out, "run #%d hidden\n", id)
	}
	s.viewer.Apply(s.applier)
	return nil
}

func (s *Shell) cmdRmRun(ctx context.Context, args []string) error {
	id, err := parseID("run-id", args[0])
	if err != nil {
		return err
	}
	return s.viewer.DeleteRun(ctx, id)
}

func (s *Shell) cmdRmRuns(ctx context.Context, _ []string) error {
	return s.viewer.DeleteAllRuns(ctx)
}
