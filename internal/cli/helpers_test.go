package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/appshelf/internal/testutil"
)

// isolateEnv keeps tests away from the real config directory and APPSHELF_*
// variables.
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	for _, key := range []string{"APPSHELF_DB", "APPSHELF_KV", "APPSHELF_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

// testRootOptions returns options pointing at a fresh catalog, with
// sequential ids and a fixed clock.
func testRootOptions(t *testing.T) *RootOptions {
	t.Helper()
	dir := isolateEnv(t)

	return &RootOptions{
		Format:   "text",
		Database: filepath.Join(dir, "data", "appshelf.db"),
		KVStore:  filepath.Join(dir, "data", "localstorage.db"),
		NewID:    testutil.NewSequentialIDs("id").Next,
		Now:      testutil.NewFixedClock(time.Time{}).Now,
	}
}

// run executes a subcommand built by newCmd against opts and returns stdout.
func run(t *testing.T, opts *RootOptions, newCmd func(*RootOptions) *cobra.Command, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, opts, newCmd, "", args...)
}

func runWithInput(t *testing.T, opts *RootOptions, newCmd func(*RootOptions) *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// mustRun is run that fails the test on error.
func mustRun(t *testing.T, opts *RootOptions, newCmd func(*RootOptions) *cobra.Command, args ...string) string {
	t.Helper()
	out, err := run(t, opts, newCmd, args...)
	require.NoError(t, err)
	return out
}

// seedApps adds apps named a, b, c... with package com.<name>.
func seedApps(t *testing.T, opts *RootOptions, names ...string) {
	t.Helper()
	for _, name := range names {
		mustRun(t, opts, NewAddCommand, "--name", name, "--package", "com."+name, "--category", "tag-"+name)
	}
}
