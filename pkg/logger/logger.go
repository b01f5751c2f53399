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

package logger

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LogOptions configures the standard logrus logger used by cooldownctl.
type LogOptions struct {
	// OutputPath is the log directory, default is `/var/lib/cooldown/log`.
	OutputPath string
	// Verbose turns on debug level, cooldown bindings and attached checks
	// are only logged in debug mode.
	Verbose      bool
	DisableColor bool
	HideLogTime  bool
	HideLogPath  bool
	// LogToFile writes log entries to OutputPath as well.
	LogToFile bool
	// RemoteLoggerURL receives every entry as a JSON event, tagged with
	// RemoteLoggerTaskName.
	RemoteLoggerURL      string
	RemoteLoggerTaskName string
}

func (o LogOptions) level() logrus.Level {
	if o.Verbose {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

func (o LogOptions) hooks() (logrus.LevelHooks, error) {
	if o.RemoteLoggerTaskName != "" && o.RemoteLoggerURL == "" {
		return nil, errors.New("remote logger task name is set without a remote logger url")
	}

	hooks := logrus.LevelHooks{}
	if o.LogToFile {
		fh, err := NewFileHook(o.OutputPath)
		if err != nil {
			return nil, errors.Wrap(err, "failed to init log file hook")
		}
		hooks.Add(fh)
	}
	if o.RemoteLoggerURL != "" {
		rl, err := NewRemoteLogHook(o.RemoteLoggerURL, o.RemoteLoggerTaskName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to init log remote hook")
		}
		hooks.Add(rl)
	}
	return hooks, nil
}

// Init configures the standard logger. Hooks of a previous Init are
// replaced, so cooldownctl can call it once per command execution.
func Init(options LogOptions) error {
	hooks, err := options.hooks()
	if err != nil {
		return err
	}

	logrus.SetLevel(options.level())
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&Formatter{
		DisableColor: options.DisableColor,
		HideLogTime:  options.HideLogTime,
		HideLogPath:  options.HideLogPath,
	})
	logrus.StandardLogger().ReplaceHooks(hooks)
	return nil
}
