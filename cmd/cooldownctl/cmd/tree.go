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

package cmd

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sealerio/cooldown/pkg/cmdtree"
)

func NewTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print every runnable command and the number of cooldowns bound to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printTree(cmd.OutOrStdout(), cmd.Root())
			return nil
		},
	}
}

func printTree(w io.Writer, root *cobra.Command) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"COMMAND", "COOLDOWNS"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, leaf := range cmdtree.Leaves(cmdtree.FromCobraCommands(root.Commands())) {
		c, ok := cmdtree.CobraCommand(leaf)
		if !ok || c.Hidden {
			continue
		}
		table.Append([]string{c.CommandPath(), strconv.Itoa(len(cmdtree.CobraChecks(c)))})
	}
	table.Render()
}
