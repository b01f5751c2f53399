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
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sealerio/cooldown/cmd/cooldownctl/cmd/alpha"
	"github.com/sealerio/cooldown/cmd/cooldownctl/cmd/cluster"
	"github.com/sealerio/cooldown/cmd/cooldownctl/cmd/image"
	"github.com/sealerio/cooldown/common"
	"github.com/sealerio/cooldown/pkg/cmdtree"
	"github.com/sealerio/cooldown/pkg/logger"
	"github.com/sealerio/cooldown/pkg/policy"
	"github.com/sealerio/cooldown/pkg/version"
)

type rootOpts struct {
	cfgFile              string
	debugModeOn          bool
	hideLogTime          bool
	hideLogPath          bool
	logToFile            bool
	colorMode            string
	remoteLoggerURL      string
	remoteLoggerTaskName string
	user                 string
}

var rootOpt rootOpts

const (
	colorModeNever  = "never"
	colorModeAlways = "always"
)

var supportedColorModes = []string{
	colorModeNever,
	colorModeAlways,
}

var longRootCmdDescription = `cooldownctl binds cooldowns to whole groups of commands.
Every cooldown in the config file is shared by all runnable commands below the root,
except those inside the groups it excludes.
`

var (
	bindOnce sync.Once
	bindErr  error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "cooldownctl",
	Short:         "A tool to share cooldowns across groups of commands.",
	Long:          longRootCmdDescription,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bindErr
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("cooldownctl-%s: %v", version.Get(), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(alpha.NewCmdAlpha(), image.NewCmdImage(), cluster.NewCmdCluster())
	rootCmd.AddCommand(NewCompletionCmd(), NewVersionCmd(), NewTreeCmd())

	rootCmd.PersistentFlags().StringVar(&rootOpt.cfgFile, "config", "", "config file of cooldownctl (default is $HOME/.cooldown.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootOpt.user, cmdtree.UserFlag, "", "run the command as this user, cooldowns are counted per user by default (default is $USER)")
	rootCmd.PersistentFlags().BoolVarP(&rootOpt.debugModeOn, "debug", "d", false, "turn on debug mode")
	rootCmd.PersistentFlags().BoolVarP(&rootCmd.SilenceUsage, "quiet", "q", false, "silence the usage when fail")
	rootCmd.PersistentFlags().BoolVar(&rootOpt.hideLogTime, "hide-time", false, "hide the log time")
	rootCmd.PersistentFlags().BoolVar(&rootOpt.hideLogPath, "hide-path", false, "hide the log path")
	rootCmd.PersistentFlags().BoolVar(&rootOpt.logToFile, "log-to-file", false, "write log message to disk")
	rootCmd.PersistentFlags().StringVar(&rootOpt.colorMode, "color", colorModeAlways, fmt.Sprintf("set the log color mode, the possible values can be %v", supportedColorModes))
	rootCmd.PersistentFlags().StringVar(&rootOpt.remoteLoggerURL, "remote-logger-url", "", "remote logger url, if not empty, will send log to this url")
	rootCmd.PersistentFlags().StringVar(&rootOpt.remoteLoggerTaskName, "task-name", "", "task name which will embedded in the remote logger header, only valid when --remote-logger-url is set")
	rootCmd.DisableAutoGenTag = true
}

// initConfig reads in config file and ENV variables if set, then binds the
// configured cooldowns to the command tree.
func initConfig() {
	if rootOpt.cfgFile == "" {
		rootOpt.cfgFile = common.DefaultConfigFile()
	}
	viper.SetConfigFile(rootOpt.cfgFile)
	viper.SetEnvPrefix("COOLDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := logger.Init(logger.LogOptions{
		LogToFile:            rootOpt.logToFile,
		Verbose:              rootOpt.debugModeOn,
		HideLogTime:          rootOpt.hideLogTime,
		HideLogPath:          rootOpt.hideLogPath,
		RemoteLoggerURL:      rootOpt.remoteLoggerURL,
		RemoteLoggerTaskName: rootOpt.remoteLoggerTaskName,
		DisableColor:         rootOpt.colorMode == colorModeNever,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v\n", err))
	}

	bindOnce.Do(func() {
		bindErr = bindCooldowns(rootCmd, viper.GetViper(), rootOpt.cfgFile)
	})
}

func bindCooldowns(root *cobra.Command, v *viper.Viper, cfgFile string) error {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) {
			logrus.Debugf("config file %s does not exist, no cooldown is bound", cfgFile)
			return nil
		}
		return fmt.Errorf("failed to stat config file %s: %w", cfgFile, err)
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	cfg, err := policy.Load(v)
	if err != nil {
		return err
	}
	return policy.Bind(root, cfg)
}
