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
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/util/sets"
)

func noopCheck(*Invocation) error {
	return nil
}

type strayNode struct{}

func (strayNode) Name() string { return "stray" }

func TestWalk(t *testing.T) {
	tests := []struct {
		name     string
		excluded sets.String
		want     map[string]int
	}{
		{
			name:     "exclude nothing",
			excluded: nil,
			want:     map[string]int{"x": 1, "y": 1, "z": 1, "w": 1},
		},
		{
			name:     "exclude group A",
			excluded: sets.NewString("A"),
			want:     map[string]int{"x": 0, "y": 1, "z": 0, "w": 1},
		},
		{
			name:     "exclude nested group only",
			excluded: sets.NewString("C"),
			want:     map[string]int{"x": 1, "y": 1, "z": 0, "w": 1},
		},
		{
			name:     "leaf names are never matched",
			excluded: sets.NewString("x", "y"),
			want:     map[string]int{"x": 1, "y": 1, "z": 1, "w": 1},
		},
		{
			name:     "empty name does not exclude unnamed groups",
			excluded: sets.NewString(""),
			want:     map[string]int{"x": 1, "y": 1, "z": 1, "w": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z, w := NewCommand("x"), NewCommand("y"), NewCommand("z"), NewCommand("w")
			root := NewCommandGroup("G",
				NewCommandGroup("A", x, NewCommandGroup("C", z)),
				NewCommandGroup("B", y),
				NewCommandGroup("", w),
			)

			Walk(noopCheck, root.Children(), tt.excluded)

			got := map[string]int{}
			for _, c := range []*Command{x, y, z, w} {
				got[c.Name()] = len(c.Checks())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalkAccumulates(t *testing.T) {
	x, y := NewCommand("x"), NewCommand("y")
	root := NewCommandGroup("G", NewCommandGroup("A", x), NewCommandGroup("B", y))

	Walk(noopCheck, root.Children(), sets.NewString())
	Walk(noopCheck, root.Children(), sets.NewString("B"))

	assert.Len(t, x.Checks(), 2)
	assert.Len(t, y.Checks(), 1)
}

func TestWalkEmptyAndUnknownNodes(t *testing.T) {
	Walk(noopCheck, nil, nil)
	Walk(noopCheck, []Node{}, sets.NewString("A"))

	x := NewCommand("x")
	Walk(noopCheck, []Node{strayNode{}, x, nil}, nil)
	assert.Len(t, x.Checks(), 1)
}

func TestWalkOrder(t *testing.T) {
	var order []string
	record := func(name string) Node {
		return &recordingLeaf{name: name, seen: &order}
	}

	nodes := []Node{
		record("a"),
		NewCommandGroup("g", record("b"), NewCommandGroup("h", record("c"))),
		record("d"),
	}
	Walk(noopCheck, nodes, nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, order)

	// permuting siblings changes the order but not the set of leaves
	order = nil
	permuted := []Node{nodes[2], nodes[1], nodes[0]}
	Walk(noopCheck, permuted, nil)
	assert.Equal(t, []string{"d", "b", "c", "a"}, order)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, order)
}

type recordingLeaf struct {
	name string
	seen *[]string
}

func (r *recordingLeaf) Name() string { return r.name }

func (r *recordingLeaf) Attach(Check) { *r.seen = append(*r.seen, r.name) }

func TestLeaves(t *testing.T) {
	x, y := NewCommand("x"), NewCommand("y")
	nodes := []Node{NewCommandGroup("A", x), strayNode{}, y}

	leaves := Leaves(nodes)
	assert.Equal(t, []Leaf{x, y}, leaves)
}

func TestCommandRun(t *testing.T) {
	c := NewCommand("x")
	assert.NoError(t, c.Run(&Invocation{}))

	calls := 0
	c.Attach(func(*Invocation) error { calls++; return nil })
	c.Attach(func(*Invocation) error { return assert.AnError })
	c.Attach(func(*Invocation) error { calls++; return nil })

	assert.ErrorIs(t, c.Run(&Invocation{}), assert.AnError)
	assert.Equal(t, 1, calls)
}
