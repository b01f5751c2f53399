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

// Command is an in-memory Leaf.
type Command struct {
	Use    string
	checks []Check
}

func NewCommand(name string) *Command {
	return &Command{Use: name}
}

func (c *Command) Name() string {
	return c.Use
}

func (c *Command) Attach(check Check) {
	c.checks = append(c.checks, check)
}

// Checks returns the attached checks in attach order.
func (c *Command) Checks() []Check {
	return c.checks
}

// Run evaluates the attached checks and stops at the first error.
func (c *Command) Run(inv *Invocation) error {
	for _, check := range c.checks {
		if err := check(inv); err != nil {
			return err
		}
	}
	return nil
}

// CommandGroup is an in-memory Group.
type CommandGroup struct {
	Use   string
	Nodes []Node
}

func NewCommandGroup(name string, children ...Node) *CommandGroup {
	return &CommandGroup{Use: name, Nodes: children}
}

func (g *CommandGroup) Name() string {
	return g.Use
}

func (g *CommandGroup) Children() []Node {
	return g.Nodes
}

// Collection is an in-memory Container.
type Collection struct {
	Title string
	Items []Node
}

func NewCollection(title string, items ...Node) *Collection {
	return &Collection{Title: title, Items: items}
}

func (c *Collection) Commands() []Node {
	return c.Items
}
