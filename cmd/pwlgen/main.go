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

// pwlgen designs piecewise-linear approximations of activation functions and
// converts graphs of activation nodes.
//
// Usage:
//
//	pwlgen design sigmoid --max-error 0.005
//	pwlgen design power --exponent 0.5 --format json
//	pwlgen sweep tanh --from 1 --to 16
//	pwlgen convert --config graph.toml --workers 8
//	pwlgen env
package main

import (
	"fmt"
	"os"

	"github.com/containerd/log"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	logLevel  string
	logFormat string
}

func newRootCommand() *cobra.Command {
	var opts globalOptions
	cmd := &cobra.Command{
		Use:           "pwlgen [OPTIONS] COMMAND",
		Short:         "Design piecewise-linear approximations of activation functions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.L.Logger.SetOutput(cmd.ErrOrStderr())
			if err := log.SetFormat(log.OutputFormat(opts.logFormat)); err != nil {
				return err
			}
			return log.SetLevel(opts.logLevel)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.logLevel, "log-level", "l", "info", `Set the logging level ("trace"|"debug"|"info"|"warn"|"error"|"fatal"|"panic")`)
	flags.StringVar(&opts.logFormat, "log-format", string(log.TextFormat), `Set the logging format ("text"|"json")`)

	cmd.AddCommand(
		newDesignCommand(),
		newSweepCommand(),
		newConvertCommand(),
		newEnvCommand(),
	)
	return cmd
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pwlgen: %v\n", err)
		os.Exit(1)
	}
}
