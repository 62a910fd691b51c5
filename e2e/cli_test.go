package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fleetbattle-console/internal/model"
	"github.com/mcoot/fleetbattle-console/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	apiURL     string
	sessionDir string
}

func newCLIRunner(t *testing.T, apiURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "fbconsole-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/fbconsole")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		apiURL:     apiURL,
		sessionDir: t.TempDir(),
	}
}

func (r *cliRunner) command(args ...string) *exec.Cmd {
	fullArgs := append([]string{
		"--api", r.apiURL,
		"--session-backend", "file",
		"--session-dir", r.sessionDir,
		"--env-file", filepath.Join(r.sessionDir, "none.env"),
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = withoutConsoleEnv(os.Environ())
	return cmd
}

func (r *cliRunner) run(args ...string) (string, error) {
	output, err := r.command(args...).CombinedOutput()
	return string(output), err
}

// withoutConsoleEnv drops FBCONSOLE_* variables so the flags alone decide
func withoutConsoleEnv(env []string) []string {
	out := env[:0:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, "FBCONSOLE_") {
			out = append(out, kv)
		}
	}
	return out
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(10 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type loginResponse struct {
	User struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
	Landing string `json:"landing"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	backend := testutil.NewBackend(t)
	cli := newCLIRunner(t, backend.URL())

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp model.Health
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "Healthy", resp.Status)
}

func TestCLI_AdminSession(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddAccount("admiral", "secret", model.RoleAdmin)
	sailor := backend.AddAccount("sailor", "secret", model.RolePlayer)
	cli := newCLIRunner(t, backend.URL())

	// Screens are closed until login
	output, err := cli.run("users", "list")
	require.Error(t, err)
	var errResp errorResponse
	require.NoError(t, json.Unmarshal([]byte(output), &errResp))
	assert.Contains(t, errResp.Error.Message, "not signed in")

	// Login persists the session for later invocations
	output, err = cli.run("login", "-u", "admiral", "-p", "secret")
	require.NoError(t, err, "output: %s", output)
	var login loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &login))
	assert.Equal(t, "admiral", login.User.Username)
	assert.Equal(t, "/", login.Landing)

	output, err = cli.run("users", "role", sailor.String(), "Admin")
	require.NoError(t, err, "output: %s", output)
	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "User updated successfully", msg.Message)

	user, ok := backend.User(sailor)
	require.True(t, ok)
	assert.Equal(t, model.RoleAdmin, user.Role)

	// An expired token clears the session
	backend.RevokeTokens()
	output, err = cli.run("levels", "list")
	require.Error(t, err)
	require.NoError(t, json.Unmarshal([]byte(output), &errResp))
	assert.Equal(t, "Your session has expired. Please log in again.", errResp.Error.Message)

	_, err = cli.run("whoami")
	require.Error(t, err)
}

func TestCLI_ServeSharesSession(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddAccount("admiral", "secret", model.RoleAdmin)
	backend.AddLevel("Harbor", 10, 120)
	cli := newCLIRunner(t, backend.URL())

	output, err := cli.run("login", "-u", "admiral", "-p", "secret")
	require.NoError(t, err, "output: %s", output)

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serve := cli.command("serve")
	serve.Env = append(serve.Env, "FBCONSOLE_LISTEN_ADDR="+addr)
	require.NoError(t, serve.Start())
	go func() {
		<-ctx.Done()
		_ = serve.Process.Signal(os.Interrupt)
	}()
	defer func() {
		cancel()
		_ = serve.Wait()
	}()

	base := fmt.Sprintf("http://%s", addr)
	waitForServer(t, base+"/healthz")

	// The web console picks up the session stored by the CLI login
	resp, err := http.Get(base + "/levels")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Harbor")
}
