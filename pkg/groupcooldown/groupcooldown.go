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

// Package groupcooldown shares one cooldown between every command of a
// command group.
//
//	d, err := groupcooldown.Fixed(1, 5, cooldown.UserKey, sets.NewString("alpha"))
//	if err != nil {
//		return err
//	}
//	if _, err := d(rootCmd); err != nil {
//		return err
//	}
//
// Every runnable command below rootCmd, except those inside the "alpha"
// group, now allows each user one invocation every five seconds, counted
// across all of them.
package groupcooldown

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/sealerio/cooldown/pkg/cmdtree"
	"github.com/sealerio/cooldown/pkg/cooldown"
)

// Decorator attaches a check to the commands of target and returns target
// unchanged. target may be a cmdtree.Group, a cmdtree.Container or a
// *cobra.Command with sub commands.
type Decorator func(target interface{}) (interface{}, error)

// Fixed returns a Decorator sharing a cooldown of rate invocations every per
// seconds. Commands inside groups named in excluded are left alone.
func Fixed(rate, per float64, key cooldown.KeyFunc, excluded sets.String, opts ...cooldown.Option) (Decorator, error) {
	if rate == 0 && per == 0 {
		return nil, &ConfigurationError{Reason: "rate, per must be provided"}
	}
	if !finite(rate) || !finite(per) {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("rate, per must be finite, got %g, %g", rate, per)}
	}

	check := cooldown.NewFixedCheck(math.Abs(rate), math.Abs(per), key, opts...)
	return decorator(check, excluded), nil
}

// Dynamic returns a Decorator sharing a cooldown computed by factory for
// every invocation.
func Dynamic(factory cooldown.Factory, key cooldown.KeyFunc, excluded sets.String, opts ...cooldown.Option) (Decorator, error) {
	if factory == nil {
		return nil, &ConfigurationError{Reason: "factory must be provided"}
	}

	check := cooldown.NewDynamicCheck(factory, key, opts...)
	return decorator(check, excluded), nil
}

// Must applies d to target and panics on error, it is meant for package
// level declarations.
func Must(target interface{}, d Decorator) interface{} {
	out, err := d(target)
	if err != nil {
		panic(err)
	}
	return out
}

func decorator(check cmdtree.Check, excluded sets.String) Decorator {
	return func(target interface{}) (interface{}, error) {
		nodes, err := commandsOf(target)
		if err != nil {
			return nil, err
		}

		logrus.Debugf("bind cooldown to %d commands of %T, excluded groups: %v", len(nodes), target, excluded.List())
		cmdtree.Walk(check, nodes, excluded)
		return target, nil
	}
}

func commandsOf(target interface{}) ([]cmdtree.Node, error) {
	switch t := target.(type) {
	case *cobra.Command:
		if t != nil && t.HasSubCommands() {
			return cmdtree.FromCobraCommands(t.Commands()), nil
		}
	case cmdtree.Group:
		return t.Children(), nil
	case cmdtree.Container:
		return t.Commands(), nil
	}
	return nil, newTargetTypeError(target)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
