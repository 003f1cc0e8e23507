package cli

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{
		"update", "search", "info", "deps",
		"download", "files", "status",
	}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestRootCommandScopeFlags(t *testing.T) {
	root := newRootCommand()
	flags := []string{
		"os-id", "type", "distro", "component", "arch",
		"cache", "sources", "repo", "profiles", "profile",
		"http-timeout",
	}
	for _, name := range flags {
		flag := root.PersistentFlags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
	assert.Equal(t, "deb", root.PersistentFlags().Lookup("type").DefValue)
	assert.Equal(t, "main", root.PersistentFlags().Lookup("component").DefValue)
}

func TestDownloadCommandFlags(t *testing.T) {
	cmd := newDownloadCommand(&scopeOptions{})
	assert.NotNil(t, cmd.Flags().Lookup("dir"))
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestStatusCommandFlags(t *testing.T) {
	cmd := newStatusCommand(&scopeOptions{})
	assert.NotNil(t, cmd.Flags().Lookup("runs"))
}

// ---------- Scope plumbing tests ----------

func TestProfileScopeSplitsOverrides(t *testing.T) {
	opts := &scopeOptions{}
	cmd := &cobra.Command{Use: "test"}
	registerScopeFlags(cmd, opts)
	require.NoError(t, cmd.PersistentFlags().Set("arch", "arm64"))

	scope := profileScope(cmd, opts)
	// Only the flag the user touched lands in Overrides; untouched
	// fields stay in the configured baseline.
	assert.Equal(t, "arm64", scope.Overrides.Arch)
	assert.Empty(t, scope.Overrides.Component)
	assert.Equal(t, "main", scope.Defaults.Component)
	assert.Equal(t, "deb", string(scope.Defaults.Type))
}

func TestDebArchNotEmpty(t *testing.T) {
	assert.NotEmpty(t, debArch())
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	got := resolveString(nil, "explicit", "test_key", "test-flag")
	assert.Equal(t, "explicit", got)
}

func TestResolveInt(t *testing.T) {
	got := resolveInt(nil, 42, "test_key", "test-flag")
	assert.Equal(t, 42, got)
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("malformed index: no field separator at line 3"),
			expected: 2,
		},
		{
			name: "already exists",
			err: errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg("dup"),
			expected: 2,
		},
		{
			name: "profile not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("profile not found: incomplete scope, missing arch"),
			expected: 3,
		},
		{
			name: "not found generic",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("repository unavailable: http://repo.test"),
			expected: 5,
		},
		{
			name: "failed precondition",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("cache schema is newer than this binary"),
			expected: 4,
		},
		{
			name: "internal error",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("boom"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
