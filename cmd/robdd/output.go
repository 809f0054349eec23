// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dalzilio/robdd"
	"github.com/dalzilio/robdd/internal/metrics"
	"github.com/dalzilio/robdd/internal/render"
)

// outputFlags are the flags shared by the commands producing a diagram.
type outputFlags struct {
	out         string
	formats     []string
	metricsFile string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "DOT output file, - for stdout (default <base>.dot)")
	cmd.Flags().StringSliceVar(&o.formats, "format", nil, "Render the DOT file with dot -T<format> (e.g. png,svg)")
	cmd.Flags().StringVar(&o.metricsFile, "metrics-file", "", "Write session statistics in Prometheus textfile format")
}

// dotfile returns the name of the DOT file for a diagram called base.
func (o *outputFlags) dotfile(base string) string {
	if o.out != "" {
		return o.out
	}
	return base + ".dot"
}

// emit exports the diagrams of b, renders them if asked to, and writes the
// statistics of b. Render failures are only reported, since the DOT file is
// already written.
func (o *outputFlags) emit(ctx context.Context, b *robdd.Session, base string, roots ...robdd.Root) error {
	filename := o.dotfile(base)
	if err := b.ExportFile(filename, roots...); err != nil {
		return err
	}
	if filename != "-" {
		logger.Info("wrote diagram", zap.String("file", filename), zap.Int("nodes", b.Stats().Used))
	}

	formats := o.formats
	if len(formats) == 0 {
		formats = cfg.Output.Formats
	}
	if len(formats) > 0 {
		if filename == "-" {
			logger.Warn("cannot render a diagram written to stdout")
		} else {
			r := render.New(cfg.Output.Dot, logger)
			files, err := r.Render(ctx, filename, formats...)
			switch {
			case errors.Is(err, robdd.ErrIOFailure):
				logger.Warn("rendering failed", zap.Error(err))
			case err != nil:
				return err
			default:
				logger.Info("rendered diagram", zap.String("files", strings.Join(files, ",")))
			}
		}
	}

	if o.metricsFile != "" {
		if err := metrics.WriteTextfile(o.metricsFile, b); err != nil {
			return err
		}
	}
	logger.Debug("session statistics\n" + b.Stats().String())
	return nil
}
