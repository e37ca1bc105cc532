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
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/containerd/errdefs"
	"github.com/containerd/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-pwl/pwl/activation"
	"github.com/ajroetker/go-pwl/pwl/design"
)

type sweepOptions struct {
	function functionOptions
	search   searchOptions
	from, to int
	jobs     int
	format   string
}

// sweepRow is the fit for one segment count. Counts are per side of the
// break point, so a split domain has twice as many segments.
type sweepRow struct {
	N        int     `json:"n"`
	Segments int     `json:"segments"`
	Error    float64 `json:"error,omitempty"`
	Epsilon  float64 `json:"epsilon,omitempty"`
	Failure  string  `json:"failure,omitempty"`
}

func newSweepCommand() *cobra.Command {
	var opts sweepOptions
	cmd := &cobra.Command{
		Use:   "sweep [OPTIONS] KIND",
		Short: "Report the error of every segment count in a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, args[0], &opts)
		},
	}
	flags := cmd.Flags()
	opts.function.install(flags)
	opts.search.install(flags)
	flags.IntVar(&opts.from, "from", 1, "First segment count")
	flags.IntVar(&opts.to, "to", 16, "Last segment count")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Segment counts fitted concurrently")
	flags.StringVarP(&opts.format, "format", "f", formatTable, `Output format ("table"|"json")`)
	return cmd
}

func runSweep(cmd *cobra.Command, kind string, opts *sweepOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	if opts.from < 1 || opts.to < opts.from {
		return fmt.Errorf("invalid segment count range [%d, %d]", opts.from, opts.to)
	}
	flags := cmd.Flags()
	fn, lower, upper, err := opts.function.function(flags, kind)
	if err != nil {
		return err
	}
	cfg, _, err := opts.search.config(flags)
	if err != nil {
		return err
	}

	rows, err := sweep(cmd.Context(), fn, lower, upper, cfg, opts.from, opts.to, opts.jobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == formatJSON {
		return writeJSON(out, rows)
	}
	fmt.Fprintf(out, "%s on [%g, %g]\n", displayName(fn), lower, upper)
	tw := newTabWriter(out)
	fmt.Fprintln(tw, "N\tSEGMENTS\tERROR\tEPSILON")
	for _, r := range rows {
		if r.Failure != "" {
			fmt.Fprintf(tw, "%d\t-\t%s\t\n", r.N, r.Failure)
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%.6g\t%.6g\n", r.N, r.Segments, r.Error, r.Epsilon)
	}
	return tw.Flush()
}

// sweep fits every count in [from, to] with at most jobs fits in flight.
// A count whose search fails is reported in its row; only invalid settings
// abort the sweep.
func sweep(ctx context.Context, fn activation.Function, lower, upper float64, cfg design.Config, from, to, jobs int) ([]sweepRow, error) {
	rows := make([]sweepRow, to-from+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i := range rows {
		i := i
		n := from + i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := design.Fit(ctx, fn, n, lower, upper, cfg)
			if err != nil {
				if errdefs.IsInvalidArgument(err) {
					return err
				}
				log.G(ctx).WithError(err).WithField("n", n).Debug("pwl: sweep fit failed")
				rows[i] = sweepRow{N: n, Failure: failure(err)}
				return nil
			}
			rows[i] = sweepRow{N: n, Segments: res.Segments.Count(), Error: res.Error, Epsilon: res.Epsilon}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// failure names the error class of a failed fit.
func failure(err error) string {
	switch {
	case errdefs.IsOutOfRange(err):
		return "domain error"
	case errdefs.IsAborted(err):
		return "no convergence"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return err.Error()
	}
}
