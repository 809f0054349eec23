// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dalzilio/robdd"
	"github.com/dalzilio/robdd/internal/truthtable"
	"github.com/dalzilio/robdd/internal/watch"
)

var (
	buildFlags outputFlags
	buildWatch bool
)

var buildCmd = &cobra.Command{
	Use:   "build <table-file>",
	Short: "Build the diagram of a truth table",
	Long: `Reads a truth table, builds its reduced ordered binary decision diagram and
exports it in DOT format. The first line of the table names the input
variables, in order, followed by the name of the output. Each other line
gives a value (0 or 1) for each column. Missing rows are false.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildFlags.register(buildCmd)
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "Rebuild each time the table file changes")
}

func runBuild(cmd *cobra.Command, args []string) error {
	filename := args[0]
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	if !buildWatch {
		return buildTable(cmd.Context(), filename, base)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := buildTable(ctx, filename, base); err != nil {
		logger.Error("build failed", zap.Error(err))
	}
	w, err := watch.New(filename, watch.DefaultDebounce, func(ctx context.Context) {
		if err := buildTable(ctx, filename, base); err != nil {
			logger.Error("build failed", zap.Error(err))
		}
	}, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// buildTable builds the diagram of the table in filename with a new session.
func buildTable(ctx context.Context, filename, base string) error {
	tbl, err := truthtable.ParseFile(filename)
	if err != nil {
		return err
	}
	opts := append(cfg.Options(), robdd.Logger(logger))
	b, err := robdd.New(tbl.Inputs, opts...)
	if err != nil {
		return err
	}
	f, err := b.BuildFromTable(tbl)
	if err != nil {
		return err
	}
	logger.Debug("built diagram", zap.String("table", filename), zap.Int("rows", len(tbl.Rows)))
	return buildFlags.emit(ctx, b, base, robdd.Root{Node: f, Label: tbl.Output})
}
