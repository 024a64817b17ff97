package cli

import "strings"

// legacyCommands maps the original flag-style invocations onto the
// subcommands, e.g. "--records example.com" -> "records example.com".
var legacyCommands = map[string]string{
	"--list":      "list",
	"--records":   "records",
	"--challenge": "challenge",
	"--cname":     "cname",
	"--checkall":  "checkall",
}

// NormalizeArgs rewrites a legacy command token when it stands where the
// command name goes: after any global flags, before the first positional
// argument. Everything else is passed through untouched.
func NormalizeArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out); i++ {
		a := out[i]
		if sub, ok := legacyCommands[a]; ok {
			out[i] = sub
			break
		}
		if a == "--" || !strings.HasPrefix(a, "-") {
			break
		}
		// -c/--config take the next token as their value.
		if a == "-c" || a == "--config" {
			i++
		}
	}
	return out
}
