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
)

// Invocation describes a single call of a leaf command, it is what a Check
// inspects before the command runs.
type Invocation struct {
	Context context.Context
	// Command is the full path of the invoked command, e.g. "cooldownctl image pull".
	Command string
	Args    []string
	// User identifies the caller, empty if unknown.
	User string
}

// Check is evaluated before a leaf command is invoked, a non-nil error
// aborts the invocation and is returned to the caller unchanged.
type Check func(inv *Invocation) error

// Node is any element of a command tree. A node is either a Leaf or a Group,
// see Walk.
type Node interface {
	// Name returns the identity of the node, groups may return "".
	Name() string
}

// Leaf is an invocable command.
type Leaf interface {
	Node
	// Attach appends check to the checks evaluated before invocation.
	// Attaching is additive, previously attached checks are kept.
	Attach(check Check)
}

// Group is a named container of child nodes.
type Group interface {
	Node
	// Children returns the child nodes in declaration order.
	Children() []Node
}

// Container is a collection of commands that is not itself a Group but can
// enumerate the commands declared in it.
type Container interface {
	Commands() []Node
}
