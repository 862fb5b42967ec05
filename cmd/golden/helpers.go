package main

import (
	"path/filepath"

	"golden/internal/config"
	"golden/internal/format"
	"golden/internal/gitrepo"
	"golden/internal/golden"
)

func newLoader(c *config.Config) *golden.Loader {
	repo := gitrepo.New(c.RepoDir, c.Remote, c.Branch)
	repo.Depth = c.FetchDepth
	return golden.NewLoader(repo, c)
}

// goldenArg returns the golden path relative to the repository root: the
// first positional argument, or the configured default.
func goldenArg(c *config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.GoldenPath
}

// localPath resolves a repository-relative path against the checkout.
func localPath(c *config.Config, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.RepoDir, rel)
}

func tableOptions(markdown bool, maxURL int) format.Options {
	opts := format.Options{Mode: format.ASCII, MaxURL: maxURL}
	if markdown {
		opts.Mode = format.Markdown
	}
	return opts
}
