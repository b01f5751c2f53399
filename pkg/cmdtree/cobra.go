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

package cmdtree

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
)

const (
	// ChecksAnnotation records how many checks are attached to a cobra command.
	ChecksAnnotation = "cooldown.sealer.io/checks"
	// UserFlag is the flag consulted for the invoking user, $USER is used when it is not set.
	UserFlag = "as"
)

// cobra commands can not carry arbitrary values, so attached checks are kept here.
var cobraChecks = struct {
	sync.RWMutex
	m map[*cobra.Command][]Check
}{m: map[*cobra.Command][]Check{}}

// FromCobra adapts a cobra command to a Node. Commands with sub commands, or
// without any run function, are groups. Everything else is a leaf.
func FromCobra(cmd *cobra.Command) Node {
	if cmd.HasSubCommands() || !cmd.Runnable() {
		return &cobraGroup{cmd: cmd}
	}
	return &cobraLeaf{cmd: cmd}
}

// FromCobraCommands adapts every command in cmds. The help and shell
// completion request commands cobra adds to the root command are left out.
func FromCobraCommands(cmds []*cobra.Command) []Node {
	nodes := make([]Node, 0, len(cmds))
	for _, c := range cmds {
		if isCobraBuiltin(c) {
			continue
		}
		nodes = append(nodes, FromCobra(c))
	}
	return nodes
}

func isCobraBuiltin(cmd *cobra.Command) bool {
	if !cmd.HasParent() || cmd.Parent().HasParent() {
		return false
	}
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// CobraCommand returns the cobra command behind a node built by FromCobra.
func CobraCommand(n Node) (*cobra.Command, bool) {
	switch c := n.(type) {
	case *cobraLeaf:
		return c.cmd, true
	case *cobraGroup:
		return c.cmd, true
	}
	return nil, false
}

// CobraChecks returns the checks attached to cmd.
func CobraChecks(cmd *cobra.Command) []Check {
	cobraChecks.RLock()
	defer cobraChecks.RUnlock()
	return append([]Check(nil), cobraChecks.m[cmd]...)
}

type cobraGroup struct {
	cmd *cobra.Command
}

func (g *cobraGroup) Name() string {
	return g.cmd.Name()
}

func (g *cobraGroup) Children() []Node {
	return FromCobraCommands(g.cmd.Commands())
}

type cobraLeaf struct {
	cmd *cobra.Command
}

func (l *cobraLeaf) Name() string {
	return l.cmd.Name()
}

func (l *cobraLeaf) Attach(check Check) {
	cobraChecks.Lock()
	defer cobraChecks.Unlock()

	cmd := l.cmd
	checks, hooked := cobraChecks.m[cmd]
	cobraChecks.m[cmd] = append(checks, check)

	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[ChecksAnnotation] = strconv.Itoa(len(checks) + 1)

	if hooked {
		return
	}

	preRunE, preRun := cmd.PreRunE, cmd.PreRun
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		inv := NewCobraInvocation(c, args)
		for _, check := range CobraChecks(c) {
			if err := check(inv); err != nil {
				return err
			}
		}
		if preRunE != nil {
			return preRunE(c, args)
		}
		if preRun != nil {
			preRun(c, args)
		}
		return nil
	}
}

// NewCobraInvocation builds the Invocation of cmd called with args.
func NewCobraInvocation(cmd *cobra.Command, args []string) *Invocation {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	user := os.Getenv("USER")
	if f := cmd.Flags().Lookup(UserFlag); f != nil && f.Value.String() != "" {
		user = f.Value.String()
	}

	return &Invocation{
		Context: ctx,
		Command: cmd.CommandPath(),
		Args:    args,
		User:    user,
	}
}
