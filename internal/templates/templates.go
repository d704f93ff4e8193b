// Package templates holds the embedded files used by the orchestrator.
// All templates are compiled into the binary at build time via //go:embed.
//
// Two subdirectories serve different purposes:
//
//   - runtime/ — prompt templates rendered by the orchestrator when calling
//     the oracle. These are never copied to the user's project.
//
//   - init/ — files stamped into a new project by `forgeswarm init`.
package templates

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed runtime
var runtimeFS embed.FS

// Init holds files copied to the target project by `forgeswarm init`.
//
//go:embed init
var Init embed.FS

var runtime = template.Must(template.ParseFS(runtimeFS, "runtime/*.tmpl"))

// PlanPrompt is the data for the architect planning prompt.
type PlanPrompt struct {
	Requirement string
}

// GeneratePrompt is the data for a per-file generation prompt. FixMode adds
// the repair block (previous code, trailing error log, decision aid).
type GeneratePrompt struct {
	Filename     string
	Requirement  string
	Description  string
	Constraint   string
	Related      string
	FixMode      bool
	ErrorLog     string
	PreviousCode string
}

// RenderPlanPrompt renders the architect planning prompt.
func RenderPlanPrompt(d PlanPrompt) (string, error) {
	return render("plan_prompt.md.tmpl", d)
}

// RenderGeneratePrompt renders the per-file generation prompt.
func RenderGeneratePrompt(d GeneratePrompt) (string, error) {
	return render("generate_prompt.md.tmpl", d)
}

func render(name string, data any) (string, error) {
	var b strings.Builder
	if err := runtime.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
