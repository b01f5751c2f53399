// Copyright © 2022 Alibaba Group Holding Ltd.
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

package alpha

import (
	"fmt"

	"github.com/spf13/cobra"
)

var longAlphaCmdDescription = `Alpha commands are experimental. They are usually excluded from cooldowns
so that they can be exercised freely while they incubate.`

// NewCmdAlpha returns "cooldownctl alpha" command.
func NewCmdAlpha() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alpha",
		Short: "experimental sub-commands",
		Long:  longAlphaCmdDescription,
	}

	cmd.AddCommand(NewDebugCmd())
	cmd.AddCommand(NewGenCmd())
	return cmd
}

func NewDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug",
		Short: "create debugging sessions for nodes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "list all debugging sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "no debugging sessions")
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "clean all debugging sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "debugging sessions cleaned")
			return err
		},
	})
	return cmd
}

func NewGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "generate a Clusterfile from a running cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Clusterfile generated")
			return err
		},
	}
}
