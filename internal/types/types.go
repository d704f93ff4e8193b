// Package types defines all shared structs and typed constants used by the
// forgeswarm orchestrator. JSON struct tags match the structured-output
// schema the oracle is asked to produce; YAML tags cover run-state
// persistence.
package types

// ---------------------------------------------------------------------------
// Typed constants
// ---------------------------------------------------------------------------

// RunStatus represents the lifecycle state of a build-test-repair run.
type RunStatus string

const (
	StatusStarting    RunStatus = "starting"
	StatusSuccess     RunStatus = "success"
	StatusFailedCheck RunStatus = "failed_check"
	StatusFailed      RunStatus = "failed"
)

// Terminal reports whether the run is finished, successfully or not.
func (s RunStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// ---------------------------------------------------------------------------
// Planning types
// ---------------------------------------------------------------------------

// FileSpec describes a single file the architect planned: where it lives,
// what it should do, and which other planned files its content references.
// Dependencies are filenames, not module identifiers; the translation to
// importable identifiers happens in the registry package.
type FileSpec struct {
	Filename     string   `json:"filename" yaml:"filename"`
	Description  string   `json:"description" yaml:"description"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

// ProjectPlan is the full set of files the architect planned for the run,
// unique by filename. It is produced once at the start of a run and never
// mutated; a changed plan requires a new run.
type ProjectPlan struct {
	Files []FileSpec `json:"files" yaml:"files"`
}

// Filenames returns the plan's filenames in plan order.
func (p *ProjectPlan) Filenames() []string {
	names := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		names = append(names, f.Filename)
	}
	return names
}

// ---------------------------------------------------------------------------
// Oracle result types
// ---------------------------------------------------------------------------

// CodeFile is the structured result of a single generation call: the file the
// oracle implemented and its full content. Content may still carry Markdown
// fencing; the builder strips it before comparing or persisting.
type CodeFile struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ---------------------------------------------------------------------------
// Run state
// ---------------------------------------------------------------------------

// BuildState is the single mutable record threaded through the orchestrator
// state machine. Each stage reads it and applies a partial update; later
// values replace earlier ones and Iteration only ever increases.
type BuildState struct {
	Requirement string       `yaml:"-"`
	Plan        *ProjectPlan `yaml:"plan"`
	TestOutput  string       `yaml:"-"`
	Iteration   int          `yaml:"iteration"`
	Status      RunStatus    `yaml:"status"`
}
