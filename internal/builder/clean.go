package builder

import "strings"

// CleanFence strips Markdown code-fence artifacts the oracle may wrap content
// in. The first line is removed when it opens a fence (e.g. ```python) and
// the last line when it closes one; single-line content is left alone so a
// degenerate response is never reduced to nothing.
func CleanFence(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 1 {
			content = strings.Join(lines[1:], "\n")
		}
	}
	if strings.HasSuffix(content, "```") {
		lines := strings.Split(content, "\n")
		if len(lines) > 1 {
			content = strings.Join(lines[:len(lines)-1], "\n")
		}
	}

	return strings.TrimSpace(content)
}

// TailOf returns at most limit trailing characters of s, keeping the most
// recent output when a test log exceeds the prompt budget.
func TailOf(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[len(s)-limit:]
}
