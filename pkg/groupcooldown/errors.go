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

package groupcooldown

import (
	"fmt"
	"reflect"
)

// ConfigurationError reports an invalid cooldown declaration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

// TargetTypeError is returned when a decorator is applied to something that
// is neither a Group nor a Container.
type TargetTypeError struct {
	// Kind is "Class" for a reflect.Type target, "Function" for a func value
	// and "Value" for anything else.
	Kind     string
	TypeName string
}

func (e *TargetTypeError) Error() string {
	return fmt.Sprintf("This decorator can only be applied to a Group-Container or a Group, not (%s) %s", e.Kind, e.TypeName)
}

func newTargetTypeError(target interface{}) *TargetTypeError {
	if t, ok := target.(reflect.Type); ok {
		return &TargetTypeError{Kind: "Class", TypeName: t.String()}
	}
	if target == nil {
		return &TargetTypeError{Kind: "Value", TypeName: "<nil>"}
	}

	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Func {
		return &TargetTypeError{Kind: "Function", TypeName: t.String()}
	}
	return &TargetTypeError{Kind: "Value", TypeName: t.String()}
}
