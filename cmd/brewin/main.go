package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oarkflow/log"

	"github.com/paytoncavanagh1/f25-starter/pkg/console"
	"github.com/paytoncavanagh1/f25-starter/pkg/driver"
	"github.com/paytoncavanagh1/f25-starter/pkg/interpreter"
)

const cliToolVersion = "brewin-cli 0.1.0"

const (
	exitOK           = 0
	exitFailure      = 1
	exitProgramError = 2
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitFailure
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return exitOK
	case "run":
		return runEntry(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return exitFailure
	}

	cfg, err := loadConfigFrom(".")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitFailure
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitFailure
	}

	entry := cfg.EntryPath()
	if len(args) == 1 {
		entry = strings.TrimSpace(args[0])
	}
	if entry == "" {
		fmt.Fprintf(stderr, "brewin run requires a program file (no entry in %s)\n", driver.ConfigFileName)
		return exitFailure
	}
	return executeEntry(entry, cfg)
}

func executeEntry(entry string, cfg *driver.Config) int {
	logger := newLogger(cfg.LogLevel, stderr)

	program, err := driver.LoadProgram(entry)
	if err != nil {
		logger.Error().Err(err).Str("entry", entry).Msg("load failed")
		fmt.Fprintf(stderr, "failed to load program: %v\n", err)
		return exitFailure
	}

	input, closeInput, err := openInput(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "failed to open console: %v\n", err)
		return exitFailure
	}
	defer closeInput()

	interp := interpreter.New(interpreter.Options{
		Output: interpreter.NewStreamConsole(nil, stdout),
		Input:  input,
		Logger: logger,
		OnError: func(kind interpreter.ErrorKind, message string) {
			fmt.Fprintf(stderr, "%s: %s\n", kind, message)
		},
	})

	if err := interp.Run(program); err != nil {
		if _, ok := interpreter.ErrorKindOf(err); ok {
			return exitProgramError
		}
		fmt.Fprintf(stderr, "runtime error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

// openInput uses line editing only when reading from an interactive terminal.
func openInput(cfg *driver.Config) (interpreter.LineReader, func(), error) {
	if cfg.Console.LineEditing && isTerminal(stdin) {
		term, err := console.Open(cfg.HistoryPath())
		if err != nil {
			return nil, nil, err
		}
		return term, func() {
			if err := term.Close(); err != nil {
				fmt.Fprintf(stderr, "warning: %v\n", err)
			}
		}, nil
	}
	return interpreter.NewStreamConsole(stdin, nil), func() {}, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func loadConfigFrom(start string) (*driver.Config, error) {
	path, err := driver.FindConfig(start)
	if err != nil {
		if errors.Is(err, driver.ErrConfigNotFound) {
			return driver.DefaultConfig(), nil
		}
		return nil, err
	}
	return driver.LoadConfig(path)
}

func newLogger(level string, w io.Writer) *log.Logger {
	return &log.Logger{
		Level:  parseLogLevel(level),
		Writer: &log.IOWriter{Writer: w},
	}
}

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

func printUsage() {
	fmt.Fprintln(stderr, "Usage:")
	fmt.Fprintln(stderr, "  brewin run [program.json|program.yml]")
	fmt.Fprintln(stderr, "  brewin <program.json|program.yml>")
	fmt.Fprintln(stderr, "  brewin --version")
	fmt.Fprintln(stderr, "")
	fmt.Fprintf(stderr, "Without a program argument, `run` uses the entry from %s.\n", driver.ConfigFileName)
}
