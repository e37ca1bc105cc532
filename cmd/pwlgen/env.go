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
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-pwl/pwl"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print how segments are evaluated on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintf(tw, "dispatch\t%s\n", pwl.DispatchName())
			fmt.Fprintf(tw, "fused multiply-add\t%t\n", pwl.FusedMultiplyAdd())
			fmt.Fprintf(tw, "PWL_NO_FMA\t%q\n", os.Getenv("PWL_NO_FMA"))
			fmt.Fprintf(tw, "GOARCH\t%s\n", runtime.GOARCH)
			fmt.Fprintf(tw, "GOMAXPROCS\t%d\n", runtime.GOMAXPROCS(0))
			return tw.Flush()
		},
	}
}
