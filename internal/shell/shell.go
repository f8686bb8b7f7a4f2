// SPDX-License-Identifier: MIT

// Package shell is a line-oriented front end over an Editor and a Viewer.
//
// Each input line is one command; words are split on whitespace. Failures
// are printed and the loop continues. "quit" or end of input stops it.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/editor"
	"github.com/katalvlaran/tourcanvas/overlay"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("shell: usage")

// Client is the service surface the shell needs. *api.Client satisfies it.
type Client interface {
	editor.Store
	editor.RunStore
	ListGraphSummaries(ctx context.Context) ([]api.GraphSummary, error)
	DeleteGraph(ctx context.Context, id int64) error
}

// Shell holds one editing session and one viewing session.
type Shell struct {
	out       io.Writer
	client    Client
	log       *zap.Logger
	algorithm api.Algorithm
	open      func(name string) (io.ReadCloser, error)

	ed      *editor.Editor
	viewer  *editor.Viewer
	applier *overlay.Applier
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger handed to every component.
func WithLogger(l *zap.Logger) Option {
	return func(s *Shell) { s.log = l }
}

// WithAlgorithm sets the algorithm "run" uses without an argument.
func WithAlgorithm(a api.Algorithm) Option {
	return func(s *Shell) { s.algorithm = a }
}

// WithOpener replaces how "import" opens files.
func WithOpener(open func(name string) (io.ReadCloser, error)) Option {
	return func(s *Shell) { s.open = open }
}

// New returns a shell writing to out.
func New(out io.Writer, client Client, opts ...Option) *Shell {
	s := &Shell{
		out:       out,
		client:    client,
		log:       zap.NewNop(),
		algorithm: api.SimulatedAnnealing,
		open:      func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ed = s.newEditor("")
	s.viewer = editor.NewViewer(client, editor.WithLogger(s.log), editor.WithNotifier(s))
	s.applier = overlay.NewApplier(&textRenderer{out: out}, overlay.WithLogger(s.log))

	return s
}

func (s *Shell) newEditor(title string) *editor.Editor {
	return editor.New(title, s.client, editor.WithLogger(s.log), editor.WithNotifier(s))
}

// Notify prints a notice. It makes Shell an editor.Notifier.
func (s *Shell) Notify(msg string, err error) {
	if err != nil {
		fmt.Fprintf(s.out, "! %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(s.out, "* %s\n", msg)
}

// Run reads commands from in until "quit", end of input or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		words := strings.Fields(sc.Text())
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		if words[0] == "quit" || words[0] == "exit" {
			return nil
		}
		if err := s.Exec(ctx, words[0], words[1:]); err != nil && errors.Is(err, ErrUsage) {
			fmt.Fprintf(s.out, "! %v\n", err)
		}
	}

	return sc.Err()
}

// Exec runs one command. Errors from user actions have already been
// printed through Notify; usage errors have not.
func (s *Shell) Exec(ctx context.Context, name string, args []string) error {
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q, try \"help\"", ErrUsage, name)
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		return fmt.Errorf("%w: %s %s", ErrUsage, name, cmd.usage)
	}

	return cmd.run(s, ctx, args)
}

type command struct {
	usage   string
	help    string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(s *Shell, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":    {"", "list commands", 0, 0, (*Shell).help},
		"new":     {"[title...]", "start an empty graph", 0, -1, (*Shell).cmdNew},
		"title":   {"<title...>", "rename the graph", 1, -1, (*Shell).cmdTitle},
		"node":    {"<name...>", "add a node", 1, -1, (*Shell).cmdNode},
		"connect": {"", "toggle connect mode", 0, 0, (*Shell).cmdConnect},
		"draw":    {"<from> <to>", "draw an edge in connect mode", 2, 2, (*Shell).cmdDraw},
		"weight":  {"<value>", "answer the weight prompt", 1, 1, (*Shell).cmdWeight},
		"cancel":  {"", "dismiss the weight prompt", 0, 0, (*Shell).cmdCancel},
		"escape":  {"", "leave connect mode", 0, 0, (*Shell).cmdEscape},
		"select":  {"node <id> | edge <from> <to> | none", "change the selection", 1, 3, (*Shell).cmdSelect},
		"delete":  {"", "delete the selection", 0, 0, (*Shell).cmdDelete},
		"clear":   {"", "remove everything", 0, 0, (*Shell).cmdClear},
		"undo":    {"", "undo the last change", 0, 0, (*Shell).cmdUndo},
		"import":  {"<file.csv>", "replace the graph from CSV", 1, 1, (*Shell).cmdImport},
		"show":    {"", "print the graph", 0, 0, (*Shell).cmdShow},
		"save":    {"", "store the graph", 0, 0, (*Shell).cmdSave},
		"load":    {"<graph-id>", "edit a stored graph", 1, 1, (*Shell).cmdLoad},
		"graphs":  {"", "list stored graphs", 0, 0, (*Shell).cmdGraphs},
		"rmgraph": {"<graph-id>", "delete a stored graph", 1, 1, (*Shell).cmdRmGraph},
		"view":    {"<graph-id>", "open a graph's runs", 1, 1, (*Shell).cmdView},
		"runs":    {"", "list runs, newest first", 0, 0, (*Shell).cmdRuns},
		"run":     {"[algorithm]", "optimize the viewed graph", 0, 1, (*Shell).cmdRun},
		"pick":    {"<run-id>", "toggle a run's overlay", 1, 1, (*Shell).cmdPick},
		"rmrun":   {"<run-id>", "delete a run", 1, 1, (*Shell).cmdRmRun},
		"rmruns":  {"", "delete every run", 0, 0, (*Shell).cmdRmRuns},
	}
}

func (s *Shell) help(context.Context, []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(s.out, "  %-8s %-36s %s\n", name, c.usage, c.help)
	}
	fmt.Fprintln(s.out, "  quit")

	return nil
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrUsage, name, raw)
	}
	return id, nil
}
