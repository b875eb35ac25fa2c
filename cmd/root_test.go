package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "cartload", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"setup":         false,
		"run":           false,
		"report [view]": false,
		"version":       false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Use]; ok {
			want[cmd.Use] = true
		}
	}

	for use, found := range want {
		assert.True(t, found, "command %q should be registered with root", use)
	}
}
