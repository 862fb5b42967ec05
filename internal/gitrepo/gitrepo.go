// Package gitrepo reads golden files from the history of a local git
// checkout by shelling out to the git binary.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golden/internal/logging"
)

// Repo is a local checkout whose baseline branch is fetched from Remote.
type Repo struct {
	Dir    string
	Remote string
	Branch string
	// Depth limits the fetch to the most recent commits; 0 fetches full history.
	Depth int

	logger *slog.Logger

	mu      sync.Mutex
	fetched bool
}

// New returns a Repo for dir tracking remote/branch.
func New(dir, remote, branch string) *Repo {
	return &Repo{
		Dir:    dir,
		Remote: remote,
		Branch: branch,
		logger: logging.New("gitrepo"),
	}
}

// BaselineRef is the remote-tracking ref updated by EnsureBaselineHistory.
func (r *Repo) BaselineRef() string {
	return r.Remote + "/" + r.Branch
}

// EnsureBaselineHistory fetches the baseline branch into its
// remote-tracking ref. Only the first successful call hits the network.
func (r *Repo) EnsureBaselineHistory(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetched {
		return nil
	}

	refspec := fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", r.Branch, r.Remote, r.Branch)
	args := []string{"fetch", "--quiet"}
	if r.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(r.Depth))
	}
	args = append(args, r.Remote, refspec)

	if _, err := r.git(ctx, args...); err != nil {
		return fmt.Errorf("gitrepo: fetch %s: %w", r.BaselineRef(), err)
	}
	r.fetched = true
	r.log().Info("fetched baseline history", "ref", r.BaselineRef(), "depth", r.Depth)
	return nil
}

// FileAtRevision returns the content of repoPath (relative to the repository
// root) at revision. A missing path or unknown revision wraps fs.ErrNotExist.
func (r *Repo) FileAtRevision(ctx context.Context, repoPath, revision string) ([]byte, error) {
	if revision == "" || strings.HasPrefix(revision, "-") {
		return nil, fmt.Errorf("gitrepo: invalid revision %q", revision)
	}
	p := path.Clean(strings.TrimPrefix(filepath.ToSlash(repoPath), "/"))
	object := revision + ":" + p
	out, err := r.git(ctx, "show", object)
	if err != nil {
		if r.objectMissing(ctx, object) {
			return nil, fmt.Errorf("gitrepo: %s at %s: %w", p, revision, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("gitrepo: show %s at %s: %w", p, revision, err)
	}
	return out, nil
}

// objectMissing reports whether object does not resolve. rev-parse exits 1
// for an unknown revision or path and 128 for every other failure.
func (r *Repo) objectMissing(ctx context.Context, object string) bool {
	_, err := r.git(ctx, "rev-parse", "--verify", "--quiet", object)
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == 1
}

// commandError keeps git's stderr for diagnostics.
type commandError struct {
	args   []string
	stderr string
	err    error
}

func (e *commandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.args, " "), e.err)
	if e.stderr != "" {
		msg += ": " + e.stderr
	}
	return msg
}

func (e *commandError) Unwrap() error { return e.err }

func (r *Repo) git(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANGUAGE=")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log().Debug("git", "dir", r.Dir, "args", args)
	if err := cmd.Run(); err != nil {
		return nil, &commandError{args: args, stderr: strings.TrimSpace(stderr.String()), err: err}
	}
	return stdout.Bytes(), nil
}

func (r *Repo) log() *slog.Logger {
	if r.logger == nil {
		return logging.New("gitrepo")
	}
	return r.logger
}
