package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

var version = "dev"

// Options is the root command. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config  string `short:"f" long:"config" description:"config YAML path"`
	Version bool   `short:"V" long:"version" description:"print version and exit"`

	Run    *RunCmd    `command:"run" description:"Run the dictation daemon (default)"`
	Toggle *ToggleCmd `command:"toggle" description:"Start or stop a recording in the running daemon"`
	Cancel *CancelCmd `command:"cancel" description:"Discard the recording in progress"`
	Status *StatusCmd `command:"status" description:"Show daemon status and recent dictations"`
	Check  *CheckCmd  `command:"check" description:"Verify external tools are installed"`
}

func main() {
	args := os.Args[1:]
	for _, arg := range args {
		if arg == "-V" || arg == "--version" {
			fmt.Println(version)
			return
		}
	}

	opts := &Options{}
	opts.Run = &RunCmd{opts: opts}
	opts.Toggle = &ToggleCmd{opts: opts}
	opts.Cancel = &CancelCmd{opts: opts}
	opts.Status = &StatusCmd{opts: opts}
	opts.Check = &CheckCmd{opts: opts}

	// Bare invocation runs the daemon.
	if len(remainingCommands(args)) == 0 {
		args = append(args, "run")
	}

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// remainingCommands filters out flags, leaving positional words.
func remainingCommands(args []string) []string {
	var words []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "-f" || arg == "--config" {
			i++
			continue
		}
		if len(arg) > 0 && arg[0] == '-' {
			continue
		}
		words = append(words, arg)
	}
	return words
}
