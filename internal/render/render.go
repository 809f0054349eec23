// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package render turns DOT files into images with the external dot tool of
// Graphviz.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dalzilio/robdd"
)

// Renderer runs the dot binary. The zero value is not usable, use New.
type Renderer struct {
	dot    string
	logger *zap.Logger
}

// New returns a Renderer using the given dot binary (a name looked up in PATH
// or a path).
func New(dot string, logger *zap.Logger) *Renderer {
	if dot == "" {
		dot = "dot"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{dot: dot, logger: logger}
}

// Output returns the name of the image generated from dotfile for format,
// that is dotfile with its extension replaced by format.
func Output(dotfile, format string) string {
	base := strings.TrimSuffix(dotfile, ".dot")
	return base + "." + format
}

// Render generates one image per format from dotfile, running the dot processes
// concurrently. It returns the files written. Errors wrap robdd.ErrIOFailure.
func (r *Renderer) Render(ctx context.Context, dotfile string, formats ...string) ([]string, error) {
	if len(formats) == 0 {
		return nil, nil
	}
	bin, err := exec.LookPath(r.dot)
	if err != nil {
		return nil, fmt.Errorf("renderer %q unavailable: %w: %w", r.dot, robdd.ErrIOFailure, err)
	}
	outputs := make([]string, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for k, format := range formats {
		out := Output(dotfile, format)
		outputs[k] = out
		g.Go(func() error {
			var stderr bytes.Buffer
			cmd := exec.CommandContext(ctx, bin, "-T"+format, dotfile, "-o", out)
			cmd.Stderr = &stderr
			if err := cmd.Run(); err != nil {
				return fmt.Errorf("render %s: %w: %w: %s", out, robdd.ErrIOFailure, err, strings.TrimSpace(stderr.String()))
			}
			r.logger.Debug("rendered diagram", zap.String("format", format), zap.String("file", out))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
