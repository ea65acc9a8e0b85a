package help

import (
	"fmt"
	"strings"
)

// FormatTerminal renders a subcommand's help text for --help output.
func FormatTerminal(c Command) string {
	sections := []string{
		fmt.Sprintf("ravi %s — %s", c.Name, c.Synopsis),
		"Usage: " + c.Usage,
	}

	// Args and flags share one description column.
	width := 0
	for _, a := range c.Args {
		width = max(width, len(a.Name))
	}
	for _, f := range c.Flags {
		width = max(width, len(f.Name))
	}

	if len(c.Args) > 0 {
		var b strings.Builder
		b.WriteString("Arguments:")
		for _, a := range c.Args {
			fmt.Fprintf(&b, "\n  %-*s   %s", width, a.Name, a.Desc)
		}
		sections = append(sections, b.String())
	}

	if len(c.Flags) > 0 {
		var b strings.Builder
		b.WriteString("Flags:")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "\n  %-*s   %s", width, f.Name, f.Desc)
		}
		sections = append(sections, b.String())
	}

	if c.Description != "" {
		sections = append(sections, c.Description)
	}

	if len(c.Examples) > 0 {
		sections = append(sections, "Examples:\n  "+strings.Join(c.Examples, "\n  "))
	}

	return strings.Join(sections, "\n\n") + "\n"
}

// FormatUsage renders the top-level usage text (for ravi help).
func FormatUsage(top Command, subs []Command) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ravi %s — %s\n", Version, top.Synopsis)
	b.WriteString("\nUsage:\n")

	type entry struct{ usage, brief string }
	entries := make([]entry, 0, len(subs)+1)
	for _, s := range subs {
		entries = append(entries, entry{s.Usage, s.Brief})
	}
	entries = append(entries, entry{"ravi help [command]", "Show help"})

	width := 0
	for _, e := range entries {
		width = max(width, len(e.usage))
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "  %-*s   %s\n", width, e.usage, e.brief)
	}

	b.WriteString("\nConfiguration: ~/.config/ravi/config.toml\n")
	return b.String()
}
