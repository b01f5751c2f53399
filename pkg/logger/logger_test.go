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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Print(t *testing.T) {
	require.NoError(t, Init(LogOptions{
		LogToFile:    false,
		Verbose:      true,
		DisableColor: false,
	}))
	defer logrus.SetLevel(logrus.InfoLevel)

	wg := &sync.WaitGroup{}
	for i := 0; i < 3; i++ {
		logrus.Info("start to test log")
		for j := 0; j < 3; j++ {
			wg.Add(1)
			go func(x int) {
				defer wg.Done()
				time.Sleep(10 * time.Millisecond)
				logrus.Debugf("i am the true entry %d", x)
			}(j)
		}
		wg.Wait()
	}
}

func TestFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Level:   logrus.WarnLevel,
		Message: "on cooldown",
		Time:    time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC),
		Caller:  &runtime.Frame{File: "/src/walk.go", Line: 42},
	}

	tests := []struct {
		name      string
		formatter *Formatter
		want      string
	}{
		{
			name:      "plain",
			formatter: &Formatter{DisableColor: true},
			want:      "2022-06-01 08:00:00 [WARNING] on cooldown\n",
		},
		{
			name:      "hide time",
			formatter: &Formatter{DisableColor: true, HideLogTime: true},
			want:      " [WARNING] on cooldown\n",
		},
		{
			name:      "colored",
			formatter: &Formatter{HideLogTime: true},
			want:      "\033[33m [WARNING] on cooldown\033[0m\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.formatter.Format(entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestRemoteLogHook(t *testing.T) {
	var got remoteEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	hook, err := NewRemoteLogHook(srv.URL, "bind")
	require.NoError(t, err)

	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.ErrorLevel
	entry.Message = "failed to bind cooldown"
	require.NoError(t, hook.Fire(entry))

	assert.Equal(t, "bind", got.TaskName)
	assert.Equal(t, "Error", got.Type)
	assert.NotEmpty(t, got.ID)
	assert.Contains(t, got.Message, "failed to bind cooldown")
}

func TestFileHook(t *testing.T) {
	dir := t.TempDir()
	hook, err := NewFileHook(dir)
	require.NoError(t, err)

	log := logrus.New()
	log.AddHook(hook)
	log.Info("cooldown bound")

	data, err := os.ReadFile(filepath.Join(dir, "cooldown.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "cooldown bound")
}

func TestInitReplacesHooks(t *testing.T) {
	defer logrus.StandardLogger().ReplaceHooks(logrus.LevelHooks{})
	opts := LogOptions{OutputPath: t.TempDir(), LogToFile: true}

	for i := 0; i < 3; i++ {
		require.NoError(t, Init(opts))
	}
	assert.Len(t, logrus.StandardLogger().Hooks[logrus.InfoLevel], 1)

	require.NoError(t, Init(LogOptions{}))
	assert.Empty(t, logrus.StandardLogger().Hooks[logrus.InfoLevel])
}

func TestInitRejectsTaskNameWithoutURL(t *testing.T) {
	err := Init(LogOptions{RemoteLoggerTaskName: "bind"})
	assert.Error(t, err)
}
