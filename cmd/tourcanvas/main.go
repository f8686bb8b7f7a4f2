// SPDX-License-Identifier: MIT

// Command tourcanvas is an interactive shell for building graphs, storing
// them with the optimization service and inspecting tour results.
//
// Configuration comes from TOURCANVAS_* environment variables or a .env
// file. Commands are read from stdin, or from the files named as arguments.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/katalvlaran/tourcanvas/api"
	"github.com/katalvlaran/tourcanvas/internal/config"
	"github.com/katalvlaran/tourcanvas/internal/logger"
	"github.com/katalvlaran/tourcanvas/internal/shell"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run wires configuration, logging, the service client and the shell.
func run(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync(log)

	client, err := api.New(cfg.APIURL,
		api.WithToken(cfg.Token),
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log.Named("api")),
	)
	if err != nil {
		return err
	}
	log.Info("tourcanvas starting",
		zap.String("api_url", cfg.APIURL),
		zap.String("env", cfg.Env),
		zap.String("algorithm", string(cfg.Algorithm)),
	)

	sh := shell.New(out, client, shell.WithLogger(log), shell.WithAlgorithm(cfg.Algorithm))
	if len(args) == 0 {
		return sh.Run(ctx, in)
	}
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = sh.Run(ctx, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}
