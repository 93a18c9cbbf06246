package command

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/posener/complete"

	"github.com/joeandaverde/databas/internal/backend"
	"github.com/joeandaverde/databas/tsql/parser"
)

// ReplCommand reads SQL lines from stdin, hands each to the parser, and
// prints the resulting statement or a positioned diagnostic.
type ReplCommand struct {
	ShutDownCh <-chan struct{}
}

func (c *ReplCommand) Help() string {
	helpText := `
Usage: databas repl [options]

Options:

	-config=""	Database configuration file
	-data="."	Data directory (used when no config file is given)
`

	return strings.TrimSpace(helpText)
}

func (c *ReplCommand) Synopsis() string {
	return "Starts an interactive session against a database file"
}

func (c *ReplCommand) AutocompleteArgs() complete.Predictor {
	return complete.PredictNothing
}

func (c *ReplCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-config": complete.PredictFiles("*.yml"),
		"-data":   complete.PredictDirs("*"),
	}
}

func (c *ReplCommand) Run(args []string) int {
	var configPath string
	var dataDir string

	cmdFlags := flag.NewFlagSet("repl", flag.ContinueOnError)
	cmdFlags.StringVar(&configPath, "config", "", "config file")
	cmdFlags.StringVar(&dataDir, "data", ".", "data directory")

	if err := cmdFlags.Parse(args); err != nil {
		return 1
	}

	config := &backend.Config{DataDir: dataDir}
	if configPath != "" {
		configFile, err := os.Open(configPath)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error opening config file: %s\n", err.Error())
			return 1
		}
		config, err = backend.LoadConfig(configFile)
		_ = configFile.Close()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err.Error())
			return 1
		}
	}

	engine, err := backend.Start(config)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error starting engine: %s\n", err.Error())
		return 1
	}
	defer engine.Close()

	repl(engine, os.Stdin, colorable.NewColorableStdout(), colorable.NewColorableStderr(), c.ShutDownCh)
	return 0
}

// repl runs the read-parse-print loop until in is exhausted or a shutdown
// is signaled. Each input line may hold any number of statements.
func repl(engine *backend.Engine, in io.Reader, out, errOut io.Writer, shutdownCh <-chan struct{}) {
	scanner := bufio.NewScanner(in)

	_, _ = fmt.Fprint(out, "> ")
	for scanner.Scan() {
		select {
		case <-shutdownCh:
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			_, _ = fmt.Fprint(out, "> ")
			continue
		}

		p := parser.New(line)
		for {
			stmt, ok, err := p.Next()
			if err != nil {
				engine.Log().Debug(err)
				_, _ = fmt.Fprintf(errOut, "\x1b[31m%s\x1b[0m\n", err.Error())
				break
			}
			if !ok {
				break
			}
			_, _ = fmt.Fprintf(out, "%s\n", stmt)
		}

		_, _ = fmt.Fprint(out, "> ")
	}
}
