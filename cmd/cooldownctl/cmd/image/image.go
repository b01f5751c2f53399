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

package image

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewCmdImage returns "cooldownctl image" command.
func NewCmdImage() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "manage images of the local node",
	}
	cmd.AddCommand(NewPullCmd())
	cmd.AddCommand(NewPushCmd())
	cmd.AddCommand(NewListCmd())
	return cmd
}

var exampleForPullCmd = `
  cooldownctl image pull docker.io/sealerio/kubernetes:v1.22.15
`

func NewPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "pull",
		Short:   "pull an image from a registry",
		Args:    cobra.ExactArgs(1),
		Example: exampleForPullCmd,
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.Infof("start to pull image %s", args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pulled %s\n", args[0])
			return err
		},
	}
}

func NewPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "push",
		Short:   "push an image to a registry",
		Args:    cobra.ExactArgs(1),
		Example: `cooldownctl image push registry.cn-qingdao.aliyuncs.com/sealer-io/kubernetes:v1.22.15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.Infof("start to push image %s", args[0])
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pushed %s\n", args[0])
			return err
		},
	}
}

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list all images on the local node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "no images")
			return err
		},
	}
}
