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
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/sealerio/cooldown/pkg/version"
)

func NewVersionCmd() *cobra.Command {
	var (
		shortPrint bool
		output     string
	)
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print version info",
		Args:    cobra.NoArgs,
		Example: `cooldownctl version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "json" {
				return fmt.Errorf("output format must be yaml or json")
			}
			if shortPrint {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
				return err
			}
			return printVersion(cmd.OutOrStdout(), output)
		},
	}
	versionCmd.Flags().BoolVar(&shortPrint, "short", false, "If true, print just the version number.")
	versionCmd.Flags().StringVarP(&output, "output", "o", "yaml", "choose `yaml` or `json` format to print version info")
	return versionCmd
}

func printVersion(w io.Writer, output string) error {
	info := &version.Output{CooldownVersion: version.Get()}

	var (
		marshalled []byte
		err        error
	)
	switch output {
	case "yaml":
		marshalled, err = yaml.Marshal(info)
		if err != nil {
			return fmt.Errorf("fail to marshal yaml: %w", err)
		}
	case "json":
		marshalled, err = json.Marshal(info)
		if err != nil {
			return fmt.Errorf("fail to marshal json: %w", err)
		}
	default:
		return fmt.Errorf("versionOptions were not validated: --output=%q should have been rejected", output)
	}
	_, err = fmt.Fprintln(w, string(marshalled))
	return err
}
