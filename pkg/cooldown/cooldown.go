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

package cooldown

import (
	"fmt"
	"math"
	"time"

	"github.com/sealerio/cooldown/pkg/cmdtree"
)

// Cooldown allows Rate invocations every Per.
type Cooldown struct {
	Rate float64
	Per  time.Duration
}

// FromSeconds builds a Cooldown from a rate and a period in seconds.
// Periods too long for a time.Duration are clamped.
func FromSeconds(rate, per float64) Cooldown {
	cd := Cooldown{Rate: rate}
	switch d := per * float64(time.Second); {
	case math.IsNaN(d):
	case d >= math.MaxInt64:
		cd.Per = math.MaxInt64
	case d <= math.MinInt64:
		cd.Per = math.MinInt64
	default:
		cd.Per = time.Duration(d)
	}
	return cd
}

// maxBurst bounds the bucket size, rates at or above it are not limited.
const maxBurst = math.MaxInt32

// burst returns the bucket size of c and false when c allows too many
// invocations to be limited at all.
func (c Cooldown) burst() (int, bool) {
	if c.Rate >= maxBurst {
		return 0, false
	}
	return int(math.Ceil(c.Rate)), true
}

func (c Cooldown) String() string {
	return fmt.Sprintf("%g/%s", c.Rate, c.Per)
}

// Factory returns the cooldown of a single invocation, nil disables the
// cooldown for that invocation.
type Factory func(inv *cmdtree.Invocation) *Cooldown

// KeyFunc maps an invocation to the key its bucket is stored under.
type KeyFunc func(inv *cmdtree.Invocation) string

// UserKey shares one bucket per user, it is the default key.
func UserKey(inv *cmdtree.Invocation) string {
	return "user:" + inv.User
}

// GlobalKey shares one bucket between every caller.
func GlobalKey(*cmdtree.Invocation) string {
	return "global"
}

// CommandKey shares one bucket per command between every caller.
func CommandKey(inv *cmdtree.Invocation) string {
	return "command:" + inv.Command
}

// UserCommandKey gives every user its own bucket per command.
func UserCommandKey(inv *cmdtree.Invocation) string {
	return "user:" + inv.User + "/command:" + inv.Command
}

var keyFuncs = map[string]KeyFunc{
	"user":         UserKey,
	"global":       GlobalKey,
	"command":      CommandKey,
	"user-command": UserCommandKey,
}

// KeyByName resolves the name of a builtin KeyFunc, "" resolves to UserKey.
func KeyByName(name string) (KeyFunc, error) {
	if name == "" {
		return UserKey, nil
	}
	key, ok := keyFuncs[name]
	if !ok {
		return nil, fmt.Errorf("unknown cooldown key %q", name)
	}
	return key, nil
}
