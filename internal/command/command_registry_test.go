package command

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedCommand struct {
	name    string
	aliases []string
}

func (c *namedCommand) Name() string              { return c.name }
func (c *namedCommand) Description() string       { return "a command" }
func (c *namedCommand) Aliases() []string         { return c.aliases }
func (c *namedCommand) Run(ctx interface{}) error { return nil }

func TestGetResolvesAliases(t *testing.T) {
	byName, ok := Get("uinfo")
	require.True(t, ok)
	byAlias, ok := Get("userinfo")
	require.True(t, ok)
	assert.Same(t, byName, byAlias)
}

func TestAllSortedAndDeduped(t *testing.T) {
	cmds := All()
	require.NotEmpty(t, cmds)

	assert.True(t, sort.SliceIsSorted(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	}))

	// Aliased commands appear once.
	seen := map[string]bool{}
	for _, cmd := range cmds {
		assert.False(t, seen[cmd.Name()], "command %s listed twice", cmd.Name())
		seen[cmd.Name()] = true
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	Register(&namedCommand{name: "zz-unclaimed"})
	assert.Panics(t, func() {
		Register(&namedCommand{name: "zz-unclaimed"})
	})
	assert.Panics(t, func() {
		Register(&namedCommand{name: "zz-other", aliases: []string{"help"}})
	})
}
