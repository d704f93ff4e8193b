// Package state provides atomic persistence for the run-state snapshot the
// orchestrator writes after every stage transition (logs/run-state.yaml).
//
// All writes are atomic: data is marshalled to a .tmp file in the same
// directory, then os.Rename replaces the target in a single kernel call.
// This prevents partial writes from corrupting the snapshot.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tonyc973/ForgeSwarm/internal/types"
)

// ErrNotFound is returned by Load when the run-state file does not exist.
var ErrNotFound = errors.New("run state file not found")

// ParseError is returned when a run-state file exists but cannot be
// unmarshalled.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// testOutputLimit caps how much of the last test log is persisted.
const testOutputLimit = 4000

// RunState is the persisted snapshot of one run. It exists for post-mortem
// inspection only; the orchestrator never reads it back mid-run.
type RunState struct {
	RunID          string          `yaml:"run_id"`
	Status         types.RunStatus `yaml:"status"`
	Iteration      int             `yaml:"iteration"`
	StartedAt      string          `yaml:"started_at"`
	PlanFiles      []string        `yaml:"plan_files"`
	LastTestOutput string          `yaml:"last_test_output,omitempty"`
}

// Snapshot builds a RunState from the in-memory BuildState, truncating the
// test log to its trailing slice.
func Snapshot(runID, startedAt string, bs *types.BuildState) *RunState {
	rs := &RunState{
		RunID:     runID,
		Status:    bs.Status,
		Iteration: bs.Iteration,
		StartedAt: startedAt,
	}
	if bs.Plan != nil {
		rs.PlanFiles = bs.Plan.Filenames()
	}
	if out := bs.TestOutput; len(out) > testOutputLimit {
		rs.LastTestOutput = out[len(out)-testOutputLimit:]
	} else {
		rs.LastTestOutput = out
	}
	return rs
}

// Load reads the run state at path.
// Returns ErrNotFound if the file is absent, or *ParseError on malformed YAML.
func Load(path string) (*RunState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rs RunState
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &rs, nil
}

// Save atomically writes rs to path, creating the parent directory if needed.
// It writes to path+".tmp" first, then renames to path.
func Save(path string, rs *RunState) error {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshal run state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	return atomicWrite(path, data)
}

// atomicWrite writes data to path by first writing to path+".tmp",
// then calling os.Rename to replace the final target atomically.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup on rename failure
		return fmt.Errorf("rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}
