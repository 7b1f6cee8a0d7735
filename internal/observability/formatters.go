// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-structurer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // verbose output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items of a bulleted list under heading
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", truncate(items[i], 50)))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResume outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintResume(source string, doc *types.ResumeDocument, lowConfidence bool) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Title))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Email))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", doc.Phone))
	if doc.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", doc.Location))
	}
	if doc.HasLinkedIn() {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", doc.LinkedIn))
	}
	sb.WriteString("\n")

	if len(doc.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s @ %s\n", e.Title, e.Company))
			sb.WriteString(fmt.Sprintf("    %s, %d responsibilities\n", e.Duration, len(e.Responsibilities)))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	education := make([]string, 0, len(doc.Education))
	for _, e := range doc.Education {
		education = append(education, fmt.Sprintf("%s, %s (%s)", e.Degree, e.Institution, e.Year))
	}
	writeList(&sb, "Education", education, 3)
	writeList(&sb, "Skills", doc.Skills, maxItemsToShow)

	if lowConfidence {
		sb.WriteString("⚠ low confidence: no resume structure recognised\n")
	}

	title := "PARSED RESUME"
	if source != "" {
		title += ": " + source
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnhancement outputs a single field before and after rewriting.
func (p *Printer) PrintEnhancement(fieldType, original, enhanced string) {
	if original == "" && enhanced == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString("Before:\n")
	for _, line := range strings.Split(original, "\n") {
		sb.WriteString("  " + line + "\n")
	}
	sb.WriteString("\nAfter:\n")
	for _, line := range strings.Split(enhanced, "\n") {
		sb.WriteString("  " + line + "\n")
	}

	p.printBox("ENHANCED "+strings.ToUpper(fieldType), strings.TrimSuffix(sb.String(), "\n"))
}
