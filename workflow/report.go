package workflow

import (
	"fmt"
	"strings"
	"time"

	"thought_leadership_workflow/generator"
)

// StatusCompleted is the only terminal status a Report can carry; failed
// runs never produce one.
const StatusCompleted = "completed"

// Section headers used by the text renderers. FormatForUI keys on these
// literal strings, so renderers and the filter must stay in sync.
const (
	SectionMetadata   = "WORKFLOW METADATA"
	SectionValidation = "VALIDATION SUMMARY"
	SectionLinkedIn   = "LINKEDIN POSTS"
	SectionX          = "X (TWITTER) POSTS"
)

// Report is the final structured result of one end-to-end run. Immutable
// after assembly; the validation summary is stored verbatim and never
// parsed.
type Report struct {
	Status            string
	ContextExcerpt    string
	AgentsUsed        []string
	ValidationSummary string
	LinkedIn          generator.Result
	X                 generator.Result
	GeneratedAt       time.Time
}

const ruleWidth = 70

func rule(ch string) string {
	return strings.Repeat(ch, ruleWidth)
}

// Format renders the full human-readable report, validation included.
func (r *Report) Format() string {
	var sb strings.Builder

	sb.WriteString("\n" + rule("=") + "\n")
	sb.WriteString("FINAL OUTPUT - THOUGHT LEADERSHIP CONTENT\n")
	sb.WriteString(rule("=") + "\n\n")

	sb.WriteString(SectionMetadata + "\n")
	sb.WriteString(rule("-") + "\n")
	fmt.Fprintf(&sb, "Status: %s\n", strings.ToUpper(r.Status))
	fmt.Fprintf(&sb, "Context: %s\n", r.ContextExcerpt)
	fmt.Fprintf(&sb, "Agents Involved: %s\n", strings.Join(r.AgentsUsed, ", "))
	fmt.Fprintf(&sb, "Total LinkedIn Posts: %d\n", r.LinkedIn.NumPosts)
	fmt.Fprintf(&sb, "Total X Posts: %d\n\n", r.X.NumPosts)

	sb.WriteString(SectionValidation + "\n")
	sb.WriteString(rule("-") + "\n")
	sb.WriteString(r.ValidationSummary + "\n\n")

	sb.WriteString(SectionLinkedIn + "\n")
	sb.WriteString(rule("-") + "\n")
	fmt.Fprintf(&sb, "Platform: %s\n", r.LinkedIn.Platform)
	fmt.Fprintf(&sb, "Count: %d\n\n", r.LinkedIn.NumPosts)
	sb.WriteString(r.LinkedIn.Posts + "\n\n")

	sb.WriteString(SectionX + "\n")
	sb.WriteString(rule("-") + "\n")
	fmt.Fprintf(&sb, "Platform: %s\n", r.X.Platform)
	fmt.Fprintf(&sb, "Count: %d\n\n", r.X.NumPosts)
	sb.WriteString(r.X.Posts + "\n\n")

	sb.WriteString(rule("=") + "\n")
	sb.WriteString("WORKFLOW COMPLETED SUCCESSFULLY\n")
	sb.WriteString(rule("=") + "\n")

	return sb.String()
}

// FormatForUI renders the report without the validation block: lines are
// dropped from the validation header until the next platform section
// header. The browser view shows only the posts themselves.
func (r *Report) FormatForUI() string {
	lines := strings.Split(r.Format(), "\n")
	filtered := make([]string, 0, len(lines))
	skip := false
	for _, line := range lines {
		if strings.Contains(line, SectionValidation) {
			skip = true
			continue
		}
		if skip && (strings.Contains(line, SectionLinkedIn) || strings.Contains(line, SectionX)) {
			skip = false
		}
		if !skip {
			filtered = append(filtered, line)
		}
	}
	return strings.Join(filtered, "\n")
}

// Markdown renders the report (without validation) for HTML display.
func (r *Report) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Thought Leadership Content\n\n")
	fmt.Fprintf(&sb, "**Status:** %s  \n", strings.ToUpper(r.Status))
	fmt.Fprintf(&sb, "**Context:** %s  \n", r.ContextExcerpt)
	fmt.Fprintf(&sb, "**Agents:** %s\n\n", strings.Join(r.AgentsUsed, ", "))
	fmt.Fprintf(&sb, "## %s (%d)\n\n", r.LinkedIn.Platform, r.LinkedIn.NumPosts)
	sb.WriteString(r.LinkedIn.Posts + "\n\n")
	fmt.Fprintf(&sb, "## %s (%d)\n\n", r.X.Platform, r.X.NumPosts)
	sb.WriteString(r.X.Posts + "\n")
	return sb.String()
}
