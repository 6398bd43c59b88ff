package clipboard

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/berrythewa/clippaste/internal/platform"
	"github.com/berrythewa/clippaste/internal/types"
)

//go:embed query.ps1
var queryScript string

const scriptPattern = "clippaste_query_*.ps1"

// Swapped in tests.
var (
	execCommand = exec.CommandContext
	wslPath     = func(ctx context.Context, path string) (string, error) {
		out, err := exec.CommandContext(ctx, "wslpath", "-w", path).Output()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(out)), nil
	}
)

// RunnerOptions configures a PowerShellRunner.
type RunnerOptions struct {
	// Shell overrides the PowerShell executable.
	Shell string
	// ScriptDir is where the scratch script is written. Defaults to os.TempDir().
	ScriptDir string
	Logger    *zap.Logger
}

// PowerShellRunner queries the Windows clipboard by running the embedded
// script through PowerShell, either natively or through WSL interop.
type PowerShellRunner struct {
	env       types.Environment
	shell     string
	scriptDir string
	logger    *zap.Logger
}

// NewPowerShellRunner creates a runner for env.
func NewPowerShellRunner(env types.Environment, opts RunnerOptions) *PowerShellRunner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PowerShellRunner{
		env:       env,
		shell:     opts.Shell,
		scriptDir: opts.ScriptDir,
		logger:    logger,
	}
}

// RunQuery implements QueryRunner.
func (r *PowerShellRunner) RunQuery(ctx context.Context, timeout time.Duration) (*QueryOutput, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scriptPath, err := r.writeScript()
	if err != nil {
		return nil, &DelegateError{Detail: "failed to write query script", Err: err}
	}
	defer r.removeScript(scriptPath)

	shell := platform.DelegateShell(r.env, r.shell)
	args := []string{
		"-NoProfile",
		"-NonInteractive",
		"-Sta",
		"-ExecutionPolicy", "Bypass",
		"-File", r.scriptArgument(ctx, scriptPath),
	}

	r.logger.Debug("Running clipboard query",
		zap.String("shell", shell),
		zap.String("environment", r.env.String()),
		zap.Duration("timeout", timeout))

	var stdout, stderr bytes.Buffer
	cmd := execCommand(ctx, shell, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, &DelegateError{Detail: fmt.Sprintf("timed out after %s", timeout), Err: ctxErr}
		}
		return nil, &DelegateError{Detail: "cancelled", Err: ctxErr}
	}

	out := &QueryOutput{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, &DelegateError{Detail: fmt.Sprintf("failed to run %s", shell), Err: runErr}
		}
		out.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug("Clipboard query finished",
		zap.Int("exit_code", out.ExitCode),
		zap.Int("stdout_bytes", len(out.Stdout)),
		zap.Duration("elapsed", time.Since(start)))

	return out, nil
}

func (r *PowerShellRunner) writeScript() (string, error) {
	f, err := os.CreateTemp(r.scriptDir, scriptPattern)
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(queryScript); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// removeScript deletes the scratch script. Failures are logged only.
func (r *PowerShellRunner) removeScript(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.logger.Warn("Failed to clean up query script",
			zap.String("path", path),
			zap.Error(err))
	}
}

// scriptArgument returns the script path as PowerShell will see it. From the
// Linux subsystem the Linux path has to be translated to a Windows one.
func (r *PowerShellRunner) scriptArgument(ctx context.Context, path string) string {
	if r.env != types.EnvLinuxSubsystem {
		return path
	}

	winPath, err := wslPath(ctx, path)
	if err == nil && winPath != "" {
		return winPath
	}

	distro := os.Getenv("WSL_DISTRO_NAME")
	if distro == "" {
		r.logger.Warn("Could not translate query script path for Windows",
			zap.String("path", path),
			zap.Error(err))
		return path
	}
	return `\\wsl.localhost\` + distro + strings.ReplaceAll(path, "/", `\`)
}
