// Package workspace provides the Store: the single source of truth for what
// has been generated so far in a run. An in-memory map of relative path →
// content is overlaid on the persistent tree under the workspace root, so a
// repaired run can see files produced by an earlier run without reloading
// them all up front.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store mirrors generated file content between memory and the on-disk
// workspace tree. It is not safe for concurrent use; the orchestrator is
// strictly sequential by design.
type Store struct {
	root  string
	files map[string]string
}

// NewStore creates (if needed) the workspace directory at root and returns a
// Store over it.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace %s: %w", root, err)
	}
	return &Store{root: root, files: make(map[string]string)}, nil
}

// Root returns the absolute-or-relative workspace root path the Store was
// created with.
func (s *Store) Root() string {
	return s.root
}

// Reset removes the entire workspace tree and recreates it empty, discarding
// in-memory content as well.
func (s *Store) Reset() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("reset workspace %s: %w", s.root, err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("recreate workspace %s: %w", s.root, err)
	}
	s.files = make(map[string]string)
	return nil
}

// Content returns the current content of name, preferring this run's
// in-memory copy over whatever a previous run persisted to disk. A file that
// exists in neither place yields the empty string.
func (s *Store) Content(name string) string {
	if content, ok := s.files[name]; ok {
		return content
	}
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return ""
	}
	return string(data)
}

// Known reports whether name has been written during this run.
func (s *Store) Known(name string) bool {
	_, ok := s.files[name]
	return ok
}

// Write persists content for name to memory and disk, creating parent
// directories as needed. When content matches the previously known content
// (ignoring leading/trailing whitespace) no write is performed and false is
// returned: a converged file is never rewritten merely because it was
// revisited.
func (s *Store) Write(name, content string) (bool, error) {
	if strings.TrimSpace(content) == strings.TrimSpace(s.Content(name)) {
		return false, nil
	}

	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create parent dirs for %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", name, err)
	}
	s.files[name] = content
	return true, nil
}

// Tree renders the on-disk workspace as an indented file tree, directories
// first at each level, four spaces per depth.
func (s *Store) Tree() string {
	var lines []string
	var walk func(dir string, depth int)

	walk = func(dir string, depth int) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].IsDir() != entries[j].IsDir() {
				return entries[i].IsDir()
			}
			return entries[i].Name() < entries[j].Name()
		})
		indent := strings.Repeat("    ", depth)
		for _, e := range entries {
			if e.IsDir() {
				lines = append(lines, indent+e.Name()+"/")
				walk(filepath.Join(dir, e.Name()), depth+1)
			} else {
				lines = append(lines, indent+e.Name())
			}
		}
	}

	lines = append(lines, filepath.Base(s.root)+"/")
	walk(s.root, 1)
	return strings.Join(lines, "\n")
}
