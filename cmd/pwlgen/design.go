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
	"fmt"
	"io"

	"github.com/containerd/log"
	"github.com/spf13/cobra"

	"github.com/ajroetker/go-pwl/pwl/activation"
	"github.com/ajroetker/go-pwl/pwl/design"
)

type designOptions struct {
	function functionOptions
	search   searchOptions
	format   string
}

// designReport is the output of the design command.
type designReport struct {
	Function    string            `json:"function"`
	Lower       float64           `json:"lower"`
	Upper       float64           `json:"upper"`
	Segments    int               `json:"segments"`
	Slopes      []float64         `json:"slopes"`
	Intercepts  []float64         `json:"intercepts"`
	Breakpoints []float64         `json:"breakpoints"`
	Error       float64           `json:"error"`
	Epsilon     float64           `json:"epsilon"`
	Stats       design.ErrorStats `json:"stats"`
}

func newDesignCommand() *cobra.Command {
	var opts designOptions
	cmd := &cobra.Command{
		Use:   "design [OPTIONS] KIND",
		Short: "Design the segments of one activation function",
		Long: `Design the fewest segments that approximate KIND within --max-error.

KIND is one of sigmoid, tanh, exp, log, softsign, power, relu, leakyrelu or
clamp. The domain defaults to the kind's hardware input range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesign(cmd, args[0], &opts)
		},
	}
	flags := cmd.Flags()
	opts.function.install(flags)
	opts.search.install(flags)
	flags.StringVarP(&opts.format, "format", "f", formatTable, `Output format ("table"|"json")`)
	return cmd
}

func runDesign(cmd *cobra.Command, kind string, opts *designOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
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

	ctx := log.WithLogger(cmd.Context(), log.G(cmd.Context()).WithField("command", "design"))
	res, err := design.Search(ctx, fn, lower, upper, cfg)
	if err != nil {
		return err
	}
	report := designReport{
		Function: fn.String(),
		Lower:    lower,
		Upper:    upper,
		Segments: res.Segments.Count(),
		Error:    res.Error,
		Epsilon:  res.Epsilon,
	}
	report.Slopes, report.Intercepts, report.Breakpoints = res.Segments.Split()
	if !fn.Kind.Exact() {
		samples := cfg.Resolve(fn).Samples
		if report.Stats, err = design.Measure(fn, res.Segments, lower, upper, samples); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.format == formatJSON {
		return writeJSON(out, report)
	}
	return writeDesignTable(out, fn, report)
}

func writeDesignTable(w io.Writer, fn activation.Function, r designReport) error {
	fmt.Fprintf(w, "%s on [%g, %g]: %d segments, error %.6g\n", displayName(fn), r.Lower, r.Upper, r.Segments, r.Error)
	if r.Stats.Samples > 0 {
		fmt.Fprintf(w, "measured: max %.6g, mean %.6g, p99 %.6g over %d samples\n",
			r.Stats.Max, r.Stats.Mean, r.Stats.P99, r.Stats.Samples)
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "#\tFROM\tTO\tSLOPE\tINTERCEPT")
	for i := range r.Slopes {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t%.9g\t%.9g\n", i, r.Breakpoints[i], r.Breakpoints[i+1], r.Slopes[i], r.Intercepts[i])
	}
	return tw.Flush()
}
