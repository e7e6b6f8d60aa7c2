package gitrepo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v6"
)

func initTestRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	cfg.User.Name = "Prueba"
	cfg.User.Email = "prueba@example.com"
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("failed to set config: %v", err)
	}

	return dir, repo
}

func stageFile(t *testing.T, dir string, repo *git.Repository, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("failed to stage file: %v", err)
	}
}

func TestStagedFiles(t *testing.T) {
	dir, repo := initTestRepo(t)
	stageFile(t, dir, repo, "main.go", "package main\n")
	stageFile(t, dir, repo, "aux.go", "package main\n")

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	files, err := r.StagedFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 staged files, got %v", files)
	}
	if files[0] != "aux.go" || files[1] != "main.go" {
		t.Errorf("expected sorted file list, got %v", files)
	}
}

func TestStagedDiff_EmptyWhenNothingStaged(t *testing.T) {
	dir, _ := initTestRepo(t)

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	diff, err := r.StagedDiff()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff != "" {
		t.Errorf("expected empty diff, got %q", diff)
	}
}

func TestStagedDiff_ShowsStagedContent(t *testing.T) {
	dir, repo := initTestRepo(t)
	stageFile(t, dir, repo, "hola.txt", "hola mundo\n")

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	diff, err := r.StagedDiff()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(diff, "+hola mundo") {
		t.Errorf("diff should show staged content, got %q", diff)
	}
	if !strings.Contains(diff, "hola.txt") {
		t.Errorf("diff should name the staged file, got %q", diff)
	}
}

func TestCommit(t *testing.T) {
	dir, repo := initTestRepo(t)
	stageFile(t, dir, repo, "hola.txt", "hola mundo\n")

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}

	hash, err := r.Commit("feat: agregar saludo\n\nSe agrega el archivo de saludo.")
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if hash == "" {
		t.Error("expected a commit hash")
	}

	files, err := r.StagedFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no staged files after commit, got %v", files)
	}
}
