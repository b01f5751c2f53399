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
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"
)

func newTestTree() (root, pull, list *cobra.Command) {
	root = &cobra.Command{Use: "demo", SilenceErrors: true, SilenceUsage: true}
	root.PersistentFlags().String(UserFlag, "", "")

	image := &cobra.Command{Use: "image"}
	pull = &cobra.Command{Use: "pull", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	list = &cobra.Command{Use: "list", Run: func(cmd *cobra.Command, args []string) {}}
	image.AddCommand(pull)

	alpha := &cobra.Command{Use: "alpha"}
	alpha.AddCommand(list)

	root.AddCommand(image, alpha)
	return root, pull, list
}

func TestFromCobra(t *testing.T) {
	root, pull, _ := newTestTree()

	g, ok := FromCobra(root).(Group)
	require.True(t, ok)
	assert.Equal(t, "demo", g.Name())
	assert.Len(t, g.Children(), 2)

	_, ok = FromCobra(pull).(Leaf)
	assert.True(t, ok)

	_, ok = FromCobra(&cobra.Command{Use: "bare"}).(Group)
	assert.True(t, ok, "a command without run function is a group")

	c, ok := CobraCommand(FromCobra(pull))
	assert.True(t, ok)
	assert.Same(t, pull, c)
	c, ok = CobraCommand(g)
	assert.True(t, ok)
	assert.Same(t, root, c)
	_, ok = CobraCommand(NewCommand("x"))
	assert.False(t, ok)
}

func TestCobraAttach(t *testing.T) {
	root, pull, list := newTestTree()

	var order []string
	first := func(inv *Invocation) error {
		order = append(order, "first:"+inv.Command+":"+inv.User)
		return nil
	}
	second := func(inv *Invocation) error {
		order = append(order, "second")
		return nil
	}

	Walk(first, FromCobra(root).(Group).Children(), sets.NewString("alpha"))
	Walk(second, FromCobra(root).(Group).Children(), nil)

	assert.Len(t, CobraChecks(pull), 2)
	assert.Len(t, CobraChecks(list), 1)
	assert.Equal(t, "2", pull.Annotations[ChecksAnnotation])
	assert.Equal(t, "1", list.Annotations[ChecksAnnotation])

	root.SetArgs([]string{"image", "pull", "--" + UserFlag, "alice"})
	require.NoError(t, root.Execute())
	assert.Equal(t, []string{"first:demo image pull:alice", "second"}, order)
}

func TestFromCobraSkipsBuiltins(t *testing.T) {
	root, pull, _ := newTestTree()
	root.InitDefaultHelpCmd()
	complete := &cobra.Command{Use: cobra.ShellCompRequestCmd, Hidden: true, Run: func(*cobra.Command, []string) {}}
	root.AddCommand(complete)
	// only the root's own help is cobra's
	nestedHelp := &cobra.Command{Use: "help", Run: func(*cobra.Command, []string) {}}
	pull.Parent().AddCommand(nestedHelp)

	var names []string
	for _, leaf := range Leaves(FromCobra(root).(Group).Children()) {
		names = append(names, leaf.Name())
	}
	assert.ElementsMatch(t, []string{"pull", "help", "list"}, names)

	Walk(noopCheck, FromCobra(root).(Group).Children(), nil)
	assert.Len(t, CobraChecks(nestedHelp), 1)
	assert.Empty(t, CobraChecks(complete))
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			assert.Empty(t, CobraChecks(c))
		}
	}
}

func TestCobraAttachKeepsPreRun(t *testing.T) {
	denied := errors.New("denied")

	t.Run("check error aborts the command", func(t *testing.T) {
		root, pull, _ := newTestTree()
		ran := false
		pull.RunE = func(cmd *cobra.Command, args []string) error { ran = true; return nil }

		FromCobra(pull).(Leaf).Attach(func(*Invocation) error { return denied })

		root.SetArgs([]string{"image", "pull"})
		assert.ErrorIs(t, root.Execute(), denied)
		assert.False(t, ran)
	})

	t.Run("original PreRunE runs after checks", func(t *testing.T) {
		root, pull, _ := newTestTree()
		var order []string
		pull.PreRunE = func(cmd *cobra.Command, args []string) error {
			order = append(order, "pre-run")
			return nil
		}

		FromCobra(pull).(Leaf).Attach(func(*Invocation) error {
			order = append(order, "check")
			return nil
		})

		root.SetArgs([]string{"image", "pull"})
		require.NoError(t, root.Execute())
		assert.Equal(t, []string{"check", "pre-run"}, order)
	})

	t.Run("original PreRun runs after checks", func(t *testing.T) {
		root, _, list := newTestTree()
		preRun := false
		list.PreRun = func(cmd *cobra.Command, args []string) { preRun = true }

		FromCobra(list).(Leaf).Attach(noopCheck)

		root.SetArgs([]string{"alpha", "list"})
		require.NoError(t, root.Execute())
		assert.True(t, preRun)
	})
}

func TestNewCobraInvocation(t *testing.T) {
	t.Setenv("USER", "bob")
	_, pull, _ := newTestTree()

	inv := NewCobraInvocation(pull, []string{"nginx"})
	assert.Equal(t, "demo image pull", inv.Command)
	assert.Equal(t, []string{"nginx"}, inv.Args)
	assert.Equal(t, "bob", inv.User)
	assert.NotNil(t, inv.Context)
}
