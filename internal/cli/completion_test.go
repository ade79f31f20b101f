package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionBash(t *testing.T) {
	output, err := executeCommand(t, "completion", "bash")
	require.NoError(t, err)

	assert.Contains(t, output, "# bash completion for ifmon")
	assert.Contains(t, output, "__start_ifmon")
}

func TestCompletionZsh(t *testing.T) {
	output, err := executeCommand(t, "completion", "zsh")
	require.NoError(t, err)

	assert.Contains(t, output, "#compdef ifmon")
}

func TestCompletionFish(t *testing.T) {
	output, err := executeCommand(t, "completion", "fish")
	require.NoError(t, err)

	assert.Contains(t, output, "complete -c ifmon")
}

func TestCompletionPowerShell(t *testing.T) {
	output, err := executeCommand(t, "completion", "powershell")
	require.NoError(t, err)

	assert.Contains(t, output, "Register-ArgumentCompleter")
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	_, err := executeCommand(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestCompletionRequiresShell(t *testing.T) {
	_, err := executeCommand(t, "completion")
	assert.Error(t, err)
}
