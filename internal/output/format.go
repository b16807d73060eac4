// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"mdtodo/internal/task"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"

	// DoneSectionTitle heads the done section of the list command.
	DoneSectionTitle = "DONE"
)

// FormatTask formats a pending task line.
// Format: "{N:>4}  {TEXT}  (added {DATE})\n"
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s  (added %s)\n", num, normalizeText(t.Text), t.DateAdded)
}

// FormatDoneTask formats a done task line, referenced as d{N}.
// Format: "{dN:>4}  {TEXT}  (done {DATE})\n"
func FormatDoneTask(w io.Writer, num int, t task.Task) {
	ref := fmt.Sprintf("d%d", num)
	fmt.Fprintf(w, "%4s  %s  (done %s)\n", ref, normalizeText(t.Text), t.DateCompleted)
}

// FormatSectionHeader formats a list section header.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
