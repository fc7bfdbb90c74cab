/*
Ldlfc compiles an LDLf formula to a DFA, optionally dumps or saves it, and
can start an interactive session for checking finite traces against it.

Usage:

	ldlfc -f FORMULA [flags]

The flags are:

	-v, --version
		Give the current version of ldlfc and then exit.

	-f, --formula FORMULA
		The LDLf formula to compile, in ldlfc's surface syntax.

	-i, --interactive
		Start an interactive session for checking traces against the
		compiled DFA after any startup output (--dump, --out) is produced.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched
		in a tty with stdin and stdout. Only relevant with --interactive.

	-o, --out FILE
		Write the compiled DFA, binary-encoded, to FILE.

	--dump
		Print the compiled DFA's state and transition table to stdout.

	-c, --command COMMANDS
		Immediately run the given REPL command(s) against the compiled DFA.
		Can be multiple commands separated by the ";" character. With
		--interactive, the interpreter stays open afterward; without it,
		ldlfc exits once they've run.

Once an interactive session has started, type HELP for the list of
commands. To exit, type QUIT.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	ldlf2dfa "github.com/dekarrin/ldlf2dfa"
	"github.com/dekarrin/ldlf2dfa/internal/serialize"
	"github.com/dekarrin/ldlf2dfa/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitCompileError indicates an unsuccessful program execution after the
	// formula compiled: writing the encoded DFA or running commands failed.
	ExitCompileError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the session, including parsing or compiling the
	// formula.
	ExitInitError
)

var (
	returnCode    int     = ExitSuccess
	flagVersion   *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagFormula   *string = pflag.StringP("formula", "f", "", "The LDLf formula to compile")
	flagInteract  *bool   = pflag.BoolP("interactive", "i", false, "Start an interactive trace-checking session")
	forceDirect   *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	flagOut       *string = pflag.StringP("out", "o", "", "Write the compiled DFA, binary-encoded, to this file")
	flagDump      *bool   = pflag.Bool("dump", false, "Print the compiled DFA's state and transition table")
	startCmd      *string = pflag.StringP("command", "c", "", "Execute the given REPL command(s) against the compiled DFA")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if strings.TrimSpace(*flagFormula) == "" {
		fmt.Fprintln(os.Stderr, "ERROR: no formula given; usage: ldlfc -f FORMULA [flags]")
		returnCode = ExitInitError
		return
	}

	session, initErr := ldlf2dfa.New(os.Stdin, os.Stdout, *flagFormula, *forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer session.Close()

	if *flagDump {
		fmt.Println(serialize.DumpTransitionTable(session.DFA()))
	}

	if *flagOut != "" {
		data := serialize.EncodeDFA(session.DFA())
		if err := os.WriteFile(*flagOut, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: write %s: %s\n", *flagOut, err.Error())
			returnCode = ExitCompileError
			return
		}
	}

	var startCommands []string
	if *startCmd != "" {
		startCommands = strings.Split(*startCmd, ";")
	}

	if *flagInteract {
		if err := session.RunUntilQuit(startCommands); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitCompileError
			return
		}
		return
	}

	if len(startCommands) > 0 {
		if err := session.RunCommands(startCommands); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitCompileError
			return
		}
	}
}
