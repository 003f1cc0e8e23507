package e2e

import (
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"debdepot/tests/testutil"
)

// startFixtureServer serves the committed fixture indexes under
// /debian the way a mirror would.
func startFixtureServer(t *testing.T, root string) *httptest.Server {
	t.Helper()
	packages, err := os.ReadFile(filepath.Join(root, "fixtures", "Packages"))
	require.NoError(t, err)
	contents, err := os.ReadFile(filepath.Join(root, "fixtures", "Contents-amd64"))
	require.NoError(t, err)

	payloads := map[string][]byte{
		"/debian/dists/bookworm/main/binary-amd64/Packages.gz": testutil.GzipBytes(t, packages),
		"/debian/dists/bookworm/main/Contents-amd64.gz":        testutil.GzipBytes(t, contents),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := payloads[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUpdateDepsCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	server := startFixtureServer(t, root)

	workDir := t.TempDir()
	cachePath := filepath.Join(workDir, "packages.db")
	sourcesPath := filepath.Join(workDir, "sources.list")
	require.NoError(t, os.WriteFile(sourcesPath, []byte("deb "+server.URL+"/debian bookworm main\n"), 0644))

	scopeFlags := []string{
		"--cache", cachePath,
		"--sources", sourcesPath,
		"--os-id", "debian",
		"--distro", "bookworm",
		"--arch", "amd64",
	}

	update := exec.Command("go", append([]string{"run", "./cmd/debdepot", "update"}, scopeFlags...)...)
	update.Dir = root
	update.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := update.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "updated 1 repositories")
	require.FileExists(t, cachePath)

	deps := exec.Command("go", append([]string{"run", "./cmd/debdepot", "deps", "curl"}, scopeFlags...)...)
	deps.Dir = root
	deps.Env = append(os.Environ(), "GO111MODULE=on")
	out, err = deps.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "libssl3 3.0.11-1~deb12u2")
	require.Contains(t, string(out), "4 resolved, 0 missing")
}

func TestUpdateExitCodeWithoutMatchingRepositoriesE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	server := startFixtureServer(t, root)

	workDir := t.TempDir()
	sourcesPath := filepath.Join(workDir, "sources.list")
	require.NoError(t, os.WriteFile(sourcesPath, []byte("deb "+server.URL+"/debian bookworm main\n"), 0644))

	// go run reports child failures as its own exit status 1, so the
	// binary is built and invoked directly to observe the real code.
	binPath := filepath.Join(workDir, "debdepot")
	build := exec.Command("go", "build", "-o", binPath, "./cmd/debdepot")
	build.Dir = root
	build.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := build.CombinedOutput()
	require.NoError(t, err, string(out))

	// The sources list has no trixie entry, so the update has no
	// repositories to refresh and must exit with the scope code.
	update := exec.Command(binPath, "update",
		"--cache", filepath.Join(workDir, "packages.db"),
		"--sources", sourcesPath,
		"--os-id", "debian",
		"--distro", "trixie",
		"--arch", "amd64",
	)
	update.Dir = root
	out, err = update.CombinedOutput()
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 3, exitErr.ExitCode(), string(out))
	require.Contains(t, string(out), "profile not found")
}
