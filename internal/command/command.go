// Package command defines REPL command data types and handles parsing of
// commands from input sources for the ldlfc interactive shell.
package command

// Command is a single parsed line of REPL input.
type Command struct {

	// Verb is the canonical name of the command being invoked: "ACCEPT",
	// "ALPHABET", "STATES", "HELP", or "QUIT".
	Verb string

	// Argument holds the verb's argument text, if any. For ACCEPT, this is
	// the unparsed trace text (e.g. "a,b;;c").
	Argument string
}
