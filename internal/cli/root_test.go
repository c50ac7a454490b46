package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "appshelf", cmd.Use)
	assert.Contains(t, cmd.Long, "migrated")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"list", "add", "edit", "remove", "move", "tags", "export", "import"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "kv"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "flag %s", name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	isolateEnv(t)
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommand_EndToEnd(t *testing.T) {
	dir := isolateEnv(t)
	db := filepath.Join(dir, "e2e", "appshelf.db")
	kv := filepath.Join(dir, "e2e", "localstorage.db")

	execute := func(args ...string) string {
		t.Helper()
		out := &bytes.Buffer{}
		cmd := NewRootCommand()
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--db", db, "--kv", kv}, args...))
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	execute("add", "--name", "Signal", "--package", "org.thoughtcrime.securesms", "--category", "social")
	execute("add", "--title", "Check out 'F-Droid' on Google Play", "--package", "org.fdroid.fdroid")

	out := execute("list")
	assert.Contains(t, out, "Signal")
	assert.Contains(t, out, "F-Droid")
	assert.Less(t, bytes.Index([]byte(out), []byte("Signal")), bytes.Index([]byte(out), []byte("F-Droid")))

	assert.Equal(t, "social\n", execute("tags"))
}

func TestRootCommand_ConfigFileFlag(t *testing.T) {
	isolateEnv(t)
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
