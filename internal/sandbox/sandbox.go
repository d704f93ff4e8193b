// Package sandbox runs the generated project's test suite inside an
// isolated, resource-capped container. All container work goes through the
// docker binary via exec.Command with an explicit args slice — no shell eval
// on the host side.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Result is the outcome of one sandboxed test run: the container exit status
// and the combined stdout/stderr log.
type Result struct {
	ExitCode int
	Output   string
}

// Runner executes the full test suite against the on-disk workspace.
// Implementations own isolation and cleanup; separate invocations within a
// run must not leak state into each other.
type Runner interface {
	RunTests(ctx context.Context) (*Result, error)
}

// testScript is the fail-safe command run inside the container:
// upgrade pip, install the manifest if present, then force-install the
// minimal toolset so the suite runs even when requirements.txt is partial.
const testScript = "pip install --user --upgrade pip > /dev/null 2>&1 && " +
	"if [ -f requirements.txt ]; then pip install --user -r requirements.txt; fi && " +
	"pip install --user pytest httpx fastapi uvicorn pydantic > /dev/null 2>&1 && " +
	"python3 -m pytest -v"

// DockerRunner implements Runner using one throwaway container per test run.
// The workspace is bind-mounted read-write at /app; the container runs as the
// invoking uid:gid so generated files stay owned by the caller.
type DockerRunner struct {
	workspacePath string
	image         string
	memoryLimit   string
}

// NewDockerRunner creates a DockerRunner for the workspace at workspacePath.
func NewDockerRunner(workspacePath, image, memoryLimit string) *DockerRunner {
	return &DockerRunner{
		workspacePath: workspacePath,
		image:         image,
		memoryLimit:   memoryLimit,
	}
}

// RunTests runs the suite and returns its exit status and combined log.
// A nonzero test exit is a normal Result, not an error; an error means the
// container itself could not be started (docker missing, bad image).
func (d *DockerRunner) RunTests(ctx context.Context) (*Result, error) {
	abs, err := filepath.Abs(d.workspacePath)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace path: %w", err)
	}

	args := []string{
		"run", "--rm",
		"--network", "host",
		"--memory", d.memoryLimit,
		"--user", fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid()),
		"-v", abs + ":/app",
		"-w", "/app",
		"-e", "HOME=/app",
		"-e", "PATH=/app/.local/bin:/usr/local/bin:/usr/bin:/bin",
		"-e", "PYTHONPATH=/app:.",
		d.image,
		"bash", "-c", testScript,
	}

	cmd := exec.CommandContext(ctx, "docker", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The container ran and the suite failed; that is a check result.
			return &Result{ExitCode: exitErr.ExitCode(), Output: string(out)}, nil
		}
		return nil, fmt.Errorf("docker run: %w", err)
	}

	return &Result{ExitCode: 0, Output: string(out)}, nil
}
