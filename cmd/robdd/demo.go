// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"github.com/spf13/cobra"

	"github.com/dalzilio/robdd"
)

var demoFlags outputFlags

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build the diagram of a xor b xor c xor d",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, f, err := demo()
		if err != nil {
			return err
		}
		return demoFlags.emit(cmd.Context(), b, "demo", robdd.Root{Node: f, Label: "f"})
	},
}

func init() {
	demoFlags.register(demoCmd)
}

// demo returns the parity function of four variables.
func demo() (*robdd.Session, robdd.Node, error) {
	opts := append(cfg.Options(), robdd.Logger(logger))
	b, err := robdd.New([]string{"a", "b", "c", "d"}, opts...)
	if err != nil {
		return nil, robdd.Node{}, err
	}
	f := b.False()
	for _, name := range b.Varnames() {
		v, err := b.Variable(name)
		if err != nil {
			return nil, robdd.Node{}, err
		}
		if f, err = b.Xor(f, v); err != nil {
			return nil, robdd.Node{}, err
		}
	}
	return b, f, nil
}
