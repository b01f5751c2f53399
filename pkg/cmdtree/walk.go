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
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"
)

// Walk attaches check to every Leaf reachable from nodes, in declaration order.
//
// A Group whose non-empty name is in excluded is skipped together with its
// whole subtree. Unnamed groups can not be excluded. Nodes that are neither
// a Leaf nor a Group are ignored.
func Walk(check Check, nodes []Node, excluded sets.String) {
	if len(nodes) == 0 {
		return
	}

	for _, node := range nodes {
		switch n := node.(type) {
		case Leaf:
			n.Attach(check)
		case Group:
			name := n.Name()
			if name != "" && excluded.Len() > 0 && excluded.Has(name) {
				logrus.Debugf("skip excluded command group %q", name)
				continue
			}
			Walk(check, n.Children(), excluded)
		default:
			logrus.Debugf("skip unknown command tree node %T", node)
		}
	}
}

// Leaves returns every Leaf reachable from nodes in declaration order,
// ignoring exclusions.
func Leaves(nodes []Node) []Leaf {
	var leaves []Leaf
	for _, node := range nodes {
		switch n := node.(type) {
		case Leaf:
			leaves = append(leaves, n)
		case Group:
			leaves = append(leaves, Leaves(n.Children())...)
		}
	}
	return leaves
}
