// Package pacman wraps the pacman command line tooling used to inspect
// installed packages and pending updates.
package pacman

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

var (
	// ErrPacmanCommand indicates a pacman tool exited with an error
	ErrPacmanCommand = errors.New("pacman command failed")
	// ErrCheckUpdatesFailed indicates checkupdates exited with an error
	ErrCheckUpdatesFailed = errors.New("checkupdates failed")
)

// CLIRunner executes the real pacman command line tools.
type CLIRunner struct{}

// NewCLIRunner creates a Runner backed by the system pacman tools.
func NewCLIRunner() *CLIRunner {
	return &CLIRunner{}
}

// runCommand executes a command and returns its stdout.
// Stderr is folded into the returned error for context.
func runCommand(ctx context.Context, base error, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			return "", errors.Join(base, errors.New(stderr))
		}
		return "", errors.Join(base, err)
	}

	return stdoutBuf.String(), nil
}

// ForeignPackages returns the raw output of `pacman -Qm`.
func (r *CLIRunner) ForeignPackages(ctx context.Context) (string, error) {
	return runCommand(ctx, ErrPacmanCommand, "pacman", "-Qm")
}

// IgnoredPackages returns the raw output of `pacman-conf IgnorePkg`.
func (r *CLIRunner) IgnoredPackages(ctx context.Context) (string, error) {
	return runCommand(ctx, ErrPacmanCommand, "pacman-conf", "IgnorePkg")
}

// SyncList returns the raw output of `pacman -Sl`.
func (r *CLIRunner) SyncList(ctx context.Context) (string, error) {
	return runCommand(ctx, ErrPacmanCommand, "pacman", "-Sl")
}

// CheckUpdates returns the raw output of `checkupdates`.
// checkupdates exits 2 when no updates are pending, which is not an error
// for our purposes.
func (r *CLIRunner) CheckUpdates(ctx context.Context, sync bool) (string, error) {
	args := []string{}
	if !sync {
		args = append(args, "--nosync")
	}

	cmd := exec.CommandContext(ctx, "checkupdates", args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 2 {
			// No pending updates.
			return "", nil
		}
		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			return "", errors.Join(ErrCheckUpdatesFailed, errors.New(stderr))
		}
		return "", errors.Join(ErrCheckUpdatesFailed, err)
	}

	return stdoutBuf.String(), nil
}
