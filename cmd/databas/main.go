package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/mitchellh/cli"

	"github.com/joeandaverde/databas/cmd/databas/command"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		args = append(args, "repl")
	}

	commands := map[string]cli.CommandFactory{
		"repl": func() (cli.Command, error) {
			return &command.ReplCommand{
				ShutDownCh: makeShutdownCh(),
			}, nil
		},
	}

	databasCLI := &cli.CLI{
		Name:         "databas",
		Args:         args,
		Commands:     commands,
		HelpFunc:     cli.BasicHelpFunc("databas"),
		Autocomplete: true,
	}

	exitCode, err := databasCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}

func makeShutdownCh() <-chan struct{} {
	resultCh := make(chan struct{})

	signalCh := make(chan os.Signal, 4)
	signal.Notify(signalCh, os.Interrupt)
	go func() {
		for {
			<-signalCh
			resultCh <- struct{}{}
		}
	}()

	return resultCh
}
