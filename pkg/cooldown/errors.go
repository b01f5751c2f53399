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
	"errors"
	"fmt"
	"time"
)

// OnCooldownError is returned by a check when the invocation exceeds its cooldown.
type OnCooldownError struct {
	Cooldown   Cooldown
	RetryAfter time.Duration
}

func (e *OnCooldownError) Error() string {
	return fmt.Sprintf("command is on cooldown, try again in %.2fs", e.RetryAfter.Seconds())
}

// IsOnCooldown reports whether err, or any error it wraps, is an OnCooldownError.
func IsOnCooldown(err error) bool {
	var e *OnCooldownError
	return errors.As(err, &e)
}
