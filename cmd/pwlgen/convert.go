// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-pwl/pwl/transform"
	"github.com/ajroetker/go-pwl/pwl/workerpool"
)

type convertOptions struct {
	search  searchOptions
	workers int
	format  string
}

// convertRow is the outcome for one node.
type convertRow struct {
	Name        string                 `json:"name"`
	Op          string                 `json:"op"`
	Converted   bool                   `json:"converted"`
	Failure     string                 `json:"failure,omitempty"`
	Replacement *transform.Replacement `json:"replacement,omitempty"`
}

func newConvertCommand() *cobra.Command {
	var opts convertOptions
	cmd := &cobra.Command{
		Use:   "convert --config FILE [OPTIONS]",
		Short: "Convert the activation nodes listed in a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, &opts)
		},
	}
	flags := cmd.Flags()
	opts.search.install(flags)
	flags.IntVarP(&opts.workers, "workers", "w", 0, "Nodes converted concurrently (default: workers from the file, else GOMAXPROCS)")
	flags.StringVarP(&opts.format, "format", "f", formatTable, `Output format ("table"|"json")`)
	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	if opts.search.configFile == "" {
		return errors.New("convert needs --config")
	}
	cfg, fc, err := opts.search.config(cmd.Flags())
	if err != nil {
		return err
	}
	nodes := make([]transform.Node, 0, len(fc.Nodes))
	for _, nc := range fc.Nodes {
		n, err := nc.node()
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
	}

	workers := opts.workers
	if workers == 0 {
		workers = fc.Workers
	}
	pool := workerpool.New(workers)
	defer pool.Close()

	pass := &transform.Pass{AllowedError: cfg.AllowedError, Config: cfg, Pool: pool}
	outcomes := pass.Run(cmd.Context(), nodes)

	rows := make([]convertRow, len(outcomes))
	for i, o := range outcomes {
		rows[i] = convertRow{
			Name:        o.Node.Name(),
			Op:          o.Node.Op().String(),
			Converted:   o.Converted(),
			Replacement: o.Replacement,
		}
		if o.Err != nil {
			rows[i].Failure = o.Err.Error()
		}
	}

	out := cmd.OutOrStdout()
	if opts.format == formatJSON {
		return writeJSON(out, rows)
	}
	tw := newTabWriter(out)
	fmt.Fprintln(tw, "NODE\tOP\tSEGMENTS\tERROR\tSTATUS")
	for _, r := range rows {
		switch {
		case r.Failure != "":
			fmt.Fprintf(tw, "%s\t%s\t-\t-\tfailed: %s\n", r.Name, r.Op, r.Failure)
		case !r.Converted:
			fmt.Fprintf(tw, "%s\t%s\t-\t-\tkept\n", r.Name, r.Op)
		default:
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.6g\tconverted\n", r.Name, r.Op, len(r.Replacement.Slopes), r.Replacement.Error)
		}
	}
	return tw.Flush()
}
