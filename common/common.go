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

package common

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLogDir         = "/var/lib/cooldown/log"
	DefaultConfigFileName = ".cooldown.yaml"
	DefaultLogFileName    = "cooldown.log"
)

// GetHomeDir returns the home directory of the current user, "/root" if it can not be found.
func GetHomeDir() string {
	home, err := homedir.Dir()
	if err != nil {
		logrus.Warnf("failed to get home dir: %v", err)
		return "/root"
	}
	return home
}

// DefaultConfigFile is the config file used when --config is not set.
func DefaultConfigFile() string {
	return filepath.Join(GetHomeDir(), DefaultConfigFileName)
}
