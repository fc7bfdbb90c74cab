package command

import (
	"fmt"
	"strings"
)

// ParseCommand parses a line of REPL input into a Command. If an empty
// string or a string composed only of whitespace is passed in, a nil error
// is returned along with the zero Command (Verb == "").
func ParseCommand(toParse string) (Command, error) {
	var cmd Command

	trimmed := strings.TrimSpace(toParse)
	if trimmed == "" {
		return cmd, nil
	}

	fields := strings.Fields(trimmed)
	verb := strings.ToUpper(fields[0])

	switch verb {
	case "QUIT", "EXIT":
		if len(fields) > 1 {
			return cmd, fmt.Errorf("%s takes no arguments", verb)
		}
		cmd.Verb = "QUIT"
	case "HELP", "?":
		cmd.Verb = "HELP"
	case "ALPHABET":
		if len(fields) > 1 {
			return cmd, fmt.Errorf("ALPHABET takes no arguments")
		}
		cmd.Verb = "ALPHABET"
	case "STATES":
		if len(fields) > 1 {
			return cmd, fmt.Errorf("STATES takes no arguments")
		}
		cmd.Verb = "STATES"
	case "ACCEPT", "TRACE":
		cmd.Verb = "ACCEPT"
		cmd.Argument = strings.TrimSpace(strings.TrimPrefix(trimmed, fields[0]))
	default:
		// bare input with no recognized verb is treated as a trace to check
		// directly, so the common case doesn't require typing ACCEPT first.
		cmd.Verb = "ACCEPT"
		cmd.Argument = trimmed
	}

	return cmd, nil
}
