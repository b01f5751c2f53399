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

package cluster

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var longClusterCmdDescription = `cluster commands run and delete clusters built from images.
They are expensive, so they usually carry a stricter cooldown than the rest.`

// NewCmdCluster returns "cooldownctl cluster" command.
func NewCmdCluster() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "run and delete clusters",
		Long:  longClusterCmdDescription,
	}
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewDeleteCmd())
	return cmd
}

func NewRunCmd() *cobra.Command {
	var masters string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "start to run a cluster from an image",
		Args:  cobra.ExactArgs(1),
		Example: `
  cooldownctl cluster run docker.io/sealerio/kubernetes:v1.22.15 --masters 192.168.0.2
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if masters == "" {
				return fmt.Errorf("--masters must be set")
			}
			logrus.Infof("start to run cluster of %s on %s", args[0], masters)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cluster of %s is running on %s\n", args[0], masters)
			return err
		},
	}
	runCmd.Flags().StringVarP(&masters, "masters", "m", "", "set count or IPList to masters")
	return runCmd
}

func NewDeleteCmd() *cobra.Command {
	var all bool
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "delete an existing cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.Infof("start to delete cluster, all nodes: %v", all)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "cluster deleted")
			return err
		},
	}
	deleteCmd.Flags().BoolVarP(&all, "all", "a", false, "delete all nodes of the cluster")
	return deleteCmd
}
