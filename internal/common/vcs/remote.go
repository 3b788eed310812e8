// Package vcs queries remote version control repositories for their
// current refs via the git command line.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

var (
	// ErrGitCommand indicates git exited with an error
	ErrGitCommand = errors.New("git command failed")
	// ErrRefTooShort is returned when ls-remote output is too short to
	// derive a short hash from
	ErrRefTooShort = errors.New("remote ref identifier too short")
)

// shortHashLen is the number of leading hash characters used to identify a
// remote ref. VCS packages embed this short form in their pkgver.
const shortHashLen = 7

// RemoteLister lists refs of a remote repository.
// This interface allows for mocking git in tests.
type RemoteLister interface {
	// LsRemote returns the raw `git ls-remote <remote> <ref>` output.
	LsRemote(ctx context.Context, remote, ref string) (string, error)
}

// CLILister implements RemoteLister using the git binary.
type CLILister struct{}

// NewCLILister creates a RemoteLister backed by the git binary.
func NewCLILister() *CLILister {
	return &CLILister{}
}

// LsRemote runs `git ls-remote` against the given remote and ref.
func (l *CLILister) LsRemote(ctx context.Context, remote, ref string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-remote", remote, ref)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Run(); err != nil {
		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			return "", errors.Join(ErrGitCommand, errors.New(stderr))
		}
		return "", errors.Join(ErrGitCommand, err)
	}

	return stdoutBuf.String(), nil
}

// HeadIdentifier resolves the short hash currently at the tip of the given
// remote. When branch is empty the remote HEAD is used.
func HeadIdentifier(ctx context.Context, lister RemoteLister, remote, branch string) (string, error) {
	ref := branch
	if ref == "" {
		ref = "HEAD"
	}

	out, err := lister.LsRemote(ctx, remote, ref)
	if err != nil {
		return "", err
	}
	if len(out) < shortHashLen {
		return "", ErrRefTooShort
	}

	return out[:shortHashLen], nil
}
