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
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RemoteLogHook posts log entries as JSON events to URL.
type RemoteLogHook struct {
	sync.Mutex

	TaskName string
	URL      string
	Client   *http.Client
}

type remoteEvent struct {
	ID        string    `json:"id"`
	TaskName  string    `json:"taskName,omitempty"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRemoteLogHook(remoteURL, taskName string) (*RemoteLogHook, error) {
	reqURL, err := url.Parse(remoteURL)
	if err != nil {
		return nil, err
	}

	return &RemoteLogHook{
		TaskName: taskName,
		URL:      reqURL.String(),
		Client:   &http.Client{Timeout: 5 * time.Second},
	}, nil
}

func (hook *RemoteLogHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Unable to read entry, %v", err)
		return err
	}

	t := "Info"
	if entry.Level <= logrus.ErrorLevel {
		t = "Error"
	}

	body, err := json.Marshal(&remoteEvent{
		ID:        uuid.New().String(),
		TaskName:  hook.TaskName,
		Type:      t,
		Message:   line,
		Timestamp: entry.Time,
	})
	if err != nil {
		return err
	}

	hook.Lock()
	defer hook.Unlock()

	return hook.post(body)
}

// #nosec
func (hook *RemoteLogHook) post(body []byte) error {
	resp, err := hook.Client.Post(hook.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("bad POST request to server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from server: [%d] %s", resp.StatusCode, resp.Status)
	}
	return nil
}

func (hook *RemoteLogHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
	}
}
