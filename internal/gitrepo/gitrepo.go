// Package gitrepo wraps the version-control operations the tool needs:
// opening the working repository, reading the staged changes, and persisting
// the chosen commit message.
package gitrepo

import (
	"bytes"
	"fmt"
	"os/exec"
	"sort"

	"github.com/go-git/go-git/v6"
)

// Repository is an open working-tree repository.
type Repository struct {
	path string
	repo *git.Repository
}

// Open opens the repository containing path, walking up to find .git.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return &Repository{path: path, repo: repo}, nil
}

// StagedFiles lists the paths with changes staged for the next commit,
// sorted for deterministic output.
func (r *Repository) StagedFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	var files []string
	for path, st := range status {
		if st.Staging != git.Unmodified && st.Staging != git.Untracked {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// StagedDiff returns the unified diff of the index against HEAD.
// An empty string means nothing is staged.
//
// go-git has no renderer for an index-vs-HEAD patch, so the diff text itself
// comes from the git binary; go-git still owns status and commit.
func (r *Repository) StagedDiff() (string, error) {
	files, err := r.StagedFiles()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", nil
	}

	cmd := exec.Command("git", "-C", r.path, "diff", "--cached")
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git diff --cached failed: %w: %s", err, stderr.String())
	}
	return out.String(), nil
}

// Commit persists the staged changes under the given message and returns the
// new commit's hash. Author identity comes from the repository configuration.
func (r *Repository) Commit(fullMessage string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	hash, err := wt.Commit(fullMessage, &git.CommitOptions{})
	if err != nil {
		return "", fmt.Errorf("commit failed: %w", err)
	}
	return hash.String(), nil
}
