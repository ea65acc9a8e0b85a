package insight

import (
	"fmt"
	"strings"

	"github.com/radhe-ai/ravi/internal/activity"
)

const promptPreamble = `You are a parental control AI assistant named Radhe AI.
Analyze the following activity logs from a child's phone (App name: Ravi).
Identify any potential safety concerns (like spam links, unknown callers, or excessive usage).
Provide a concise, reassuring summary for the parent in 2-3 sentences.

Logs:
`

// FormatLine renders one record as "[CATEGORY] title: description (timestamp)".
func FormatLine(r activity.Record) string {
	return fmt.Sprintf("[%s] %s: %s (%s)", r.Category, r.Title, r.Description, r.Timestamp)
}

// FormatLogs renders records one per line, in order.
func FormatLogs(logs []activity.Record) string {
	lines := make([]string, len(logs))
	for i, r := range logs {
		lines[i] = FormatLine(r)
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt embeds the formatted logs in the instruction preamble.
func BuildPrompt(logs []activity.Record) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString(FormatLogs(logs))
	return b.String()
}
