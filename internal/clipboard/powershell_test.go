package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/berrythewa/clippaste/internal/types"
)

// helperCommand re-executes the test binary as a stand-in for PowerShell.
func helperCommand(mode string) func(ctx context.Context, name string, args ...string) *exec.Cmd {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	var script string
	for i, a := range args {
		if a == "-File" && i+1 < len(args) {
			script = args[i+1]
		}
	}

	data, err := os.ReadFile(script)
	if err != nil || !strings.Contains(string(data), "GetFileDropList") {
		fmt.Fprintf(os.Stderr, "query script not readable: %v", err)
		os.Exit(2)
	}

	switch os.Getenv("HELPER_MODE") {
	case "files":
		fmt.Print("TEMP\tC:\\Temp\\\r\nFILE\tC:\\a.txt\r\n")
	case "fail":
		fmt.Fprint(os.Stderr, "No image found in clipboard.")
		os.Exit(1)
	case "sleep":
		time.Sleep(5 * time.Second)
	}
}

func swapExec(t *testing.T, mode string) {
	t.Helper()
	orig := execCommand
	execCommand = helperCommand(mode)
	t.Cleanup(func() { execCommand = orig })
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch script should be removed")
}

func TestPowerShellRunnerSuccess(t *testing.T) {
	swapExec(t, "files")
	dir := t.TempDir()

	r := NewPowerShellRunner(types.EnvNativeWindows, RunnerOptions{Shell: "pwsh", ScriptDir: dir})
	out, err := r.RunQuery(context.Background(), 5*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 0, out.ExitCode)
	assert.Empty(t, out.Stderr)
	assert.Contains(t, string(out.Stdout), "FILE\tC:\\a.txt")
	assertDirEmpty(t, dir)
}

func TestPowerShellRunnerNonZeroExit(t *testing.T) {
	swapExec(t, "fail")
	dir := t.TempDir()

	r := NewPowerShellRunner(types.EnvNativeWindows, RunnerOptions{Shell: "pwsh", ScriptDir: dir})
	out, err := r.RunQuery(context.Background(), 5*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 1, out.ExitCode)
	assert.Equal(t, "No image found in clipboard.", string(out.Stderr))
	assertDirEmpty(t, dir)
}

func TestPowerShellRunnerTimeout(t *testing.T) {
	swapExec(t, "sleep")
	dir := t.TempDir()

	r := NewPowerShellRunner(types.EnvNativeWindows, RunnerOptions{Shell: "pwsh", ScriptDir: dir})
	_, err := r.RunQuery(context.Background(), 200*time.Millisecond)

	var delegateErr *DelegateError
	require.ErrorAs(t, err, &delegateErr)
	assert.Contains(t, delegateErr.Detail, "timed out")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assertDirEmpty(t, dir)
}

func TestPowerShellRunnerMissingShell(t *testing.T) {
	dir := t.TempDir()

	r := NewPowerShellRunner(types.EnvNativeWindows, RunnerOptions{Shell: "clippaste-no-such-shell", ScriptDir: dir})
	_, err := r.RunQuery(context.Background(), time.Second)

	var delegateErr *DelegateError
	require.ErrorAs(t, err, &delegateErr)
	assert.Contains(t, delegateErr.Detail, "clippaste-no-such-shell")
	assertDirEmpty(t, dir)
}

func TestPowerShellRunnerBadScriptDir(t *testing.T) {
	r := NewPowerShellRunner(types.EnvNativeWindows, RunnerOptions{Shell: "pwsh", ScriptDir: "/nonexistent/clippaste"})
	_, err := r.RunQuery(context.Background(), time.Second)

	var delegateErr *DelegateError
	require.ErrorAs(t, err, &delegateErr)
	assert.Equal(t, "failed to write query script", delegateErr.Detail)
}

func TestRemoveScriptLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewPowerShellRunner(types.EnvNativeWindows, RunnerOptions{Logger: zap.New(core)})

	// A non-empty directory cannot be removed with os.Remove.
	dir := t.TempDir()
	touch(t, dir+"/keep")
	r.removeScript(dir)

	assert.Equal(t, 1, logs.FilterMessage("Failed to clean up query script").Len())

	// Already gone is not worth a warning.
	r.removeScript(dir + "/missing.ps1")
	assert.Equal(t, 1, logs.Len())
}

func TestScriptArgument(t *testing.T) {
	orig := wslPath
	t.Cleanup(func() { wslPath = orig })

	native := NewPowerShellRunner(types.EnvNativeWindows, RunnerOptions{})
	assert.Equal(t, `C:\Temp\q.ps1`, native.scriptArgument(context.Background(), `C:\Temp\q.ps1`))

	wsl := NewPowerShellRunner(types.EnvLinuxSubsystem, RunnerOptions{})

	wslPath = func(context.Context, string) (string, error) {
		return `\\wsl.localhost\Ubuntu\tmp\q.ps1`, nil
	}
	assert.Equal(t, `\\wsl.localhost\Ubuntu\tmp\q.ps1`, wsl.scriptArgument(context.Background(), "/tmp/q.ps1"))

	wslPath = func(context.Context, string) (string, error) {
		return "", errors.New("wslpath: not found")
	}
	t.Setenv("WSL_DISTRO_NAME", "Debian")
	assert.Equal(t, `\\wsl.localhost\Debian\tmp\q.ps1`, wsl.scriptArgument(context.Background(), "/tmp/q.ps1"))

	t.Setenv("WSL_DISTRO_NAME", "")
	assert.Equal(t, "/tmp/q.ps1", wsl.scriptArgument(context.Background(), "/tmp/q.ps1"))
}

func TestQueryScriptEmbedded(t *testing.T) {
	for _, marker := range []string{"TEMP`t", "FILE`t", "IMAGE`t", "GetFileDropList", "GetImage"} {
		assert.Contains(t, queryScript, marker)
	}
}
