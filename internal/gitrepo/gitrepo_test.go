package gitrepo

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	base := []string{"-c", "user.name=golden", "-c", "user.email=golden@example.com", "-c", "commit.gpgsign=false"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "-q", "-m", "update "+name)
}

// newUpstream creates a repository with one commit on master and a clone of it.
func newUpstream(t *testing.T) (upstream, clone string) {
	t.Helper()
	root := t.TempDir()
	upstream = filepath.Join(root, "upstream")
	clone = filepath.Join(root, "clone")
	if err := os.Mkdir(upstream, 0o755); err != nil {
		t.Fatal(err)
	}
	runGit(t, upstream, "init", "-q")
	commitFile(t, upstream, "test/golden.json", `{"v":1}`)
	runGit(t, upstream, "branch", "-M", "master")
	runGit(t, root, "clone", "-q", upstream, clone)
	return upstream, clone
}

func TestFileAtRevision(t *testing.T) {
	requireGit(t)
	_, clone := newUpstream(t)
	repo := New(clone, "origin", "master")

	got, err := repo.FileAtRevision(context.Background(), "test/golden.json", "HEAD")
	if err != nil {
		t.Fatalf("FileAtRevision: %v", err)
	}
	if string(got) != `{"v":1}` {
		t.Errorf("content = %q", got)
	}

	got, err = repo.FileAtRevision(context.Background(), "./test/../test/golden.json", "HEAD")
	if err != nil {
		t.Fatalf("FileAtRevision with unclean path: %v", err)
	}
	if string(got) != `{"v":1}` {
		t.Errorf("content = %q", got)
	}
}

func TestFileAtRevision_NotFound(t *testing.T) {
	requireGit(t)
	_, clone := newUpstream(t)
	repo := New(clone, "origin", "master")
	ctx := context.Background()

	if _, err := repo.FileAtRevision(ctx, "missing.json", "HEAD"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing path: err = %v, want fs.ErrNotExist", err)
	}
	if _, err := repo.FileAtRevision(ctx, "test/golden.json", "no-such-branch"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing revision: err = %v, want fs.ErrNotExist", err)
	}
}

func TestFileAtRevision_NotFoundTranslatedLocale(t *testing.T) {
	requireGit(t)
	_, clone := newUpstream(t)
	repo := New(clone, "origin", "master")
	t.Setenv("LC_ALL", "C.UTF-8")
	t.Setenv("LANGUAGE", "de")

	if _, err := repo.FileAtRevision(context.Background(), "test/missing.json", "HEAD"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestFileAtRevision_RejectsOptionLikeRevision(t *testing.T) {
	requireGit(t)
	_, clone := newUpstream(t)
	repo := New(clone, "origin", "master")
	out := filepath.Join(t.TempDir(), "out")

	_, err := repo.FileAtRevision(context.Background(), "test/golden.json", "--output="+out)
	if err == nil {
		t.Fatal("expected error for option-like revision")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, must not look like a missing file", err)
	}
	if _, statErr := os.Stat(out); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("git must not have written the --output file")
	}
}

func TestFileAtRevision_BrokenRepoIsNotMissing(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	repo := New(dir, "origin", "master")

	_, err := repo.FileAtRevision(context.Background(), "test/golden.json", "HEAD")
	if err == nil {
		t.Fatal("expected error outside a repository")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, a non-repository must not look like a missing file", err)
	}
}

func TestEnsureBaselineHistory_FetchesOnce(t *testing.T) {
	requireGit(t)
	upstream, clone := newUpstream(t)
	repo := New(clone, "origin", "master")
	ctx := context.Background()

	commitFile(t, upstream, "test/golden.json", `{"v":2}`)
	if err := repo.EnsureBaselineHistory(ctx); err != nil {
		t.Fatalf("EnsureBaselineHistory: %v", err)
	}
	got, err := repo.FileAtRevision(ctx, "test/golden.json", repo.BaselineRef())
	if err != nil {
		t.Fatalf("FileAtRevision: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("after fetch content = %q, want v2", got)
	}

	commitFile(t, upstream, "test/golden.json", `{"v":3}`)
	if err := repo.EnsureBaselineHistory(ctx); err != nil {
		t.Fatalf("second EnsureBaselineHistory: %v", err)
	}
	got, _ = repo.FileAtRevision(ctx, "test/golden.json", repo.BaselineRef())
	if string(got) != `{"v":2}` {
		t.Errorf("second call should not refetch, content = %q", got)
	}
}

func TestEnsureBaselineHistory_BadRemote(t *testing.T) {
	requireGit(t)
	_, clone := newUpstream(t)
	repo := New(clone, "nowhere", "master")

	err := repo.EnsureBaselineHistory(context.Background())
	if err == nil {
		t.Fatal("expected fetch failure")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Error("transport failure must not look like a missing file")
	}
	var ce *commandError
	if !errors.As(err, &ce) || ce.stderr == "" {
		t.Errorf("expected git stderr in error, got %v", err)
	}
	if repo.fetched {
		t.Error("failed fetch must not be memoised")
	}
}

func TestBaselineRef(t *testing.T) {
	repo := &Repo{Remote: "upstream", Branch: "main"}
	if got := repo.BaselineRef(); got != "upstream/main" {
		t.Errorf("BaselineRef() = %q", got)
	}
}
