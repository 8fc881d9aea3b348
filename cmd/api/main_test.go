package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootAcceptsServeFlags(t *testing.T) {
	t.Cleanup(func() { migrateOnStart = false })

	root := newRootCommand()
	require.NoError(t, root.ParseFlags([]string{"--migrate", "--env-file", "test.env"}))
	assert.True(t, migrateOnStart)
	assert.Equal(t, "test.env", envFile)
}

func TestServeAndMigrateSubcommands(t *testing.T) {
	t.Cleanup(func() { migrateOnStart = false })
	root := newRootCommand()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.NoError(t, serve.ParseFlags([]string{"--migrate"}))
	assert.True(t, migrateOnStart)

	down, _, err := root.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	require.NoError(t, down.ParseFlags([]string{"-n", "3"}))
	assert.Equal(t, 3, steps)
}
