// Package ldlf2dfa contains a CLI-driven REPL for compiling an LDLf formula
// to a DFA and then checking finite traces against it interactively.
package ldlf2dfa

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/ldlf2dfa/internal/command"
	"github.com/dekarrin/ldlf2dfa/internal/input"
	"github.com/dekarrin/ldlf2dfa/internal/ldlfparse"
	"github.com/dekarrin/rosed"
)

// consoleOutputWidth is the column width output is wrapped to.
const consoleOutputWidth = 80

// REPL holds the things needed to run an interactive trace-checking session
// against a compiled DFA, attached to an input stream and an output stream.
type REPL struct {
	formula     string
	dfa         *automaton.DFA
	in          command.Reader
	out         *bufio.Writer
	forceDirect bool
	running     bool
}

// New compiles formulaSrc to a DFA and creates a REPL ready to operate on
// the given input and output streams.
//
// If nil is given for the input stream, a bufio.Reader is opened on stdin.
// If nil is given for the output stream, a bufio.Writer is opened on stdout.
func New(inputStream io.Reader, outputStream io.Writer, formulaSrc string, forceDirectInput bool) (*REPL, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	f, err := ldlfparse.Parse(formulaSrc)
	if err != nil {
		return nil, fmt.Errorf("parse formula: %w", err)
	}

	dfa, err := automaton.ToDFA(f)
	if err != nil {
		return nil, fmt.Errorf("compile formula to DFA: %w", err)
	}

	repl := &REPL{
		formula:     formulaSrc,
		dfa:         dfa,
		out:         bufio.NewWriter(outputStream),
		forceDirect: forceDirectInput,
	}

	useReadline := !forceDirectInput && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		repl.in, err = input.NewInteractiveReader()
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		repl.in = input.NewDirectReader(inputStream)
	}

	return repl, nil
}

// DFA returns the compiled automaton backing this REPL session.
func (r *REPL) DFA() *automaton.DFA {
	return r.dfa
}

// Formula returns the original formula source text this session was built
// from.
func (r *REPL) Formula() string {
	return r.formula
}

// RunCommands runs each of cmds against the compiled DFA in order, writing
// results to the output stream, without entering the blocking interactive
// loop. A QUIT command stops processing the remaining commands early.
func (r *REPL) RunCommands(cmds []string) error {
	for _, c := range cmds {
		cmd, err := command.ParseCommand(c)
		if err != nil {
			return fmt.Errorf("parse command %q: %w", c, err)
		}
		if !r.dispatch(cmd) {
			return nil
		}
	}
	return nil
}

// Close closes all resources associated with the REPL, including any
// readline-related resources created for interactive mode.
func (r *REPL) Close() error {
	if r.running {
		return fmt.Errorf("cannot close a running REPL")
	}
	if err := r.in.Close(); err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}
	return nil
}

func (r *REPL) writeLine(s string) error {
	if _, err := r.out.WriteString(s + "\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	return r.out.Flush()
}

// RunUntilQuit begins reading commands from the streams and checking traces
// against the compiled DFA until the QUIT command is received. Any commands
// in startCommands are run immediately, in order, before entering the
// interactive loop.
func (r *REPL) RunUntilQuit(startCommands []string) error {
	introMsg := "ldlfc interactive session\n"
	if r.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "==========================\n\n"
	introMsg += fmt.Sprintf("formula: %s\n", r.formula)
	introMsg += fmt.Sprintf("alphabet: %s\n", strings.Join(r.dfa.Alphabet(), ", "))
	introMsg += "type HELP for a list of commands\n"
	if err := r.writeLine(introMsg); err != nil {
		return err
	}

	r.running = true
	defer func() { r.running = false }()

	for _, c := range startCommands {
		cmd, err := command.ParseCommand(c)
		if err != nil {
			return fmt.Errorf("parse start command %q: %w", c, err)
		}
		if !r.dispatch(cmd) {
			return nil
		}
	}

	for r.running {
		cmd, err := command.Get(r.in, r.out)
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}
		if !r.dispatch(cmd) {
			break
		}
	}

	return r.writeLine("Goodbye")
}

// dispatch executes cmd and returns false if the REPL should stop running.
func (r *REPL) dispatch(cmd command.Command) bool {
	switch cmd.Verb {
	case "QUIT":
		return false
	case "HELP":
		r.writeLine(helpText)
	case "ALPHABET":
		r.writeLine(strings.Join(r.dfa.Alphabet(), ", "))
	case "STATES":
		r.writeLine(r.renderStates())
	case "ACCEPT":
		r.writeLine(r.evalTrace(cmd.Argument))
	}
	return true
}

const helpText = `Commands:
  ACCEPT <trace>   check whether <trace> is accepted (bare input is also
                   treated as ACCEPT)
  TRACE <trace>    alias for ACCEPT
  ALPHABET         print the formula's propositional alphabet
  STATES           print the DFA's state table
  HELP             print this message
  QUIT             exit

A <trace> is a ';'-separated sequence of letters, each letter a
','-separated set of atoms true at that step (an empty letter is just an
empty field), e.g.: "a,b;;c" is the 3-step trace {a,b} {} {c}.`

func (r *REPL) renderStates() string {
	var sb strings.Builder
	for i := 1; i <= r.dfa.NumStates(); i++ {
		final := ""
		if r.dfa.IsFinal(i) {
			final = " (final)"
		}
		fmt.Fprintf(&sb, "state %d%s\n", i, final)
		for _, t := range r.dfa.TransitionsFrom(i) {
			fmt.Fprintf(&sb, "  %v -> %d\n", t.Cube, t.Dst)
		}
	}
	return rosed.Edit(sb.String()).Wrap(consoleOutputWidth).String()
}

func (r *REPL) evalTrace(traceText string) string {
	trace, err := automaton.ParseTrace(traceText, r.dfa.Alphabet())
	if err != nil {
		return fmt.Sprintf("cannot parse trace: %v", err)
	}
	if r.dfa.Accepts(trace) {
		return "ACCEPT"
	}
	return "REJECT"
}
