package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/peterh/liner"

	"scheme/interpreter-go/pkg/repl"
	"scheme/interpreter-go/pkg/syntax"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := repl.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: unable to load config (%v); using defaults\n", err)
		cfg = repl.DefaultConfig()
	}

	// The judge drives stdin as a batch stream: no prompt, no line editor.
	if os.Getenv("ONLINE_JUDGE") != "" {
		r := repl.New(syntax.NewReader(bufio.NewReader(os.Stdin)), os.Stdout)
		if err := r.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if liner.TerminalSupported() {
		return runInteractive(cfg)
	}

	// Piped input still prompts, mirroring the batch reader otherwise.
	reader := syntax.NewReader(bufio.NewReader(os.Stdin))
	r := repl.New(reader, os.Stdout)
	r.Prompt = func() { fmt.Fprint(os.Stdout, cfg.Prompt) }
	if err := r.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runInteractive(cfg repl.Config) int {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	if cfg.History != "" {
		if f, err := os.Open(cfg.History); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}

	source := repl.NewLinerSource(state, cfg.Prompt)
	r := repl.New(syntax.NewReader(source), os.Stdout)
	r.Prompt = source.NextForm

	runErr := r.Run()

	if cfg.History != "" {
		if f, err := os.Create(cfg.History); err == nil {
			state.WriteHistory(f)
			f.Close()
		}
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return 1
	}
	return 0
}
