package help

// Version is the ravi release version, set at build time via -ldflags.
// Defaults to "dev" when built without version injection (e.g. `go run`).
var Version = "dev"

// Flag describes a command-line flag.
type Flag struct {
	Name string // e.g. "--json" or "--addr <addr>"
	Desc string
}

// Arg describes a positional argument.
type Arg struct {
	Name     string
	Desc     string
	Optional bool
}

// Command describes a ravi subcommand.
type Command struct {
	Name        string
	Synopsis    string // lowercase, for the --help header
	Brief       string // capitalized, for the usage table
	Usage       string
	Args        []Arg
	Flags       []Flag
	Description string
	Examples    []string // one per line, without leading indent
}

// TopLevel describes the ravi binary itself.
var TopLevel = Command{
	Synopsis: "parent dashboard for the Ravi app",
}

var CmdServe = Command{
	Name:     "serve",
	Synopsis: "run the landing page and parent dashboard",
	Brief:    "Serve the landing page and dashboard",
	Usage:    "ravi serve [--addr <addr>]",
	Flags: []Flag{
		{Name: "--addr <addr>", Desc: "Listen address (default: server.addr from config)"},
	},
	Description: `Starts the HTTP server. The dashboard shows the sample activity log
filtered by view, and the "Ask Radhe AI" button requests a safety insight.
Without the credential named by insight.api_key_env the insight runs in
demo mode and no network call is made.

Metrics are exposed on /metrics, health on /healthz.`,
	Examples: []string{
		"ravi serve                 Listen on :8080",
		"ravi serve --addr :9000    Listen on another port",
	},
}

var CmdLogs = Command{
	Name:     "logs",
	Synopsis: "print the activity log",
	Brief:    "Print the activity log for a view",
	Usage:    "ravi logs [view] [--json]",
	Args: []Arg{
		{Name: "view", Desc: "overview, calls, sms, notifications or location", Optional: true},
	},
	Flags: []Flag{
		{Name: "--json", Desc: "Print records as JSON"},
	},
	Description: `Unknown views fall back to overview, which lists every record.`,
	Examples: []string{
		"ravi logs sms",
		"ravi logs calls --json",
	},
}

var CmdInsight = Command{
	Name:     "insight",
	Synopsis: "request a safety insight for the activity log",
	Brief:    "Print an AI safety insight",
	Usage:    "ravi insight",
	Description: `Sends the full activity log to the configured text-generation provider
and prints the summary. Prints a fixed message in demo mode or when the
request fails.`,
}

var CmdExport = Command{
	Name:     "export",
	Synopsis: "write the activity log as compressed JSON Lines",
	Brief:    "Export logs to a .jsonl.zst file",
	Usage:    "ravi export [path]",
	Args: []Arg{
		{Name: "path", Desc: "Output file (default: ravi-logs.jsonl.zst)", Optional: true},
	},
}

var CmdInit = Command{
	Name:     "init",
	Synopsis: "write a default config file",
	Brief:    "Write ~/.config/ravi/config.toml",
	Usage:    "ravi init",
	Description: `Writes a default config to ~/.config/ravi/config.toml (or
$XDG_CONFIG_HOME/ravi/config.toml). An existing file is left untouched.`,
}

var CmdVersion = Command{
	Name:     "version",
	Synopsis: "print version",
	Brief:    "Print version",
	Usage:    "ravi version",
}

// Subcommands is the ordered list of all subcommands.
var Subcommands = []Command{
	CmdServe,
	CmdLogs,
	CmdInsight,
	CmdExport,
	CmdInit,
	CmdVersion,
}

// Lookup returns the subcommand called name.
func Lookup(name string) (Command, bool) {
	for _, c := range Subcommands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}
