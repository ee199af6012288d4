package interpreter

import (
	"errors"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/oarkflow/log"

	"github.com/paytoncavanagh1/f25-starter/pkg/ast"
	"github.com/paytoncavanagh1/f25-starter/pkg/runtime"
)

const entryFunctionName = "main"

// Options configures a run. The zero value reads stdin and writes stdout.
type Options struct {
	Output LineWriter
	Input  LineReader
	// Quiet keeps output off the sink; lines are still recorded and
	// available through Output.
	Quiet bool
	// OnError is the host callback for Name and Type failures. It is called
	// once, after which Run returns the same failure.
	OnError func(kind ErrorKind, message string)
	// Logger receives debug traces of the run. Nil disables tracing.
	Logger *log.Logger
}

// Interpreter executes Brewin v1 program trees.
type Interpreter struct {
	out     LineWriter
	in      LineReader
	quiet   bool
	onError func(ErrorKind, string)
	logger  *log.Logger

	runID      string
	transcript []string
}

// New returns an interpreter wired to the configured console.
func New(opts Options) *Interpreter {
	i := &Interpreter{
		out:     opts.Output,
		in:      opts.Input,
		quiet:   opts.Quiet,
		onError: opts.OnError,
		logger:  opts.Logger,
	}
	if i.out == nil || i.in == nil {
		std := NewStreamConsole(os.Stdin, os.Stdout)
		if i.out == nil {
			i.out = std
		}
		if i.in == nil {
			i.in = std
		}
	}
	if i.logger == nil {
		i.logger = &log.Logger{Level: log.ErrorLevel, Writer: &log.IOWriter{Writer: io.Discard}}
	}
	return i
}

// Output returns every line the program has emitted so far, including lines
// suppressed by Quiet.
func (i *Interpreter) Output() []string {
	out := make([]string, len(i.transcript))
	copy(out, i.transcript)
	return out
}

// Run executes the program's main function. The first failure stops the
// run; output written before it stands.
func (i *Interpreter) Run(program *ast.Program) error {
	i.runID = uuid.NewString()
	functions := 0
	if program != nil {
		functions = len(program.Functions)
	}
	i.logger.Debug().Str("run", i.runID).Int("functions", functions).Msg("run started")

	err := i.run(program)
	if err != nil {
		i.report(err)
		return err
	}
	i.logger.Debug().Str("run", i.runID).Int("lines", len(i.transcript)).Msg("run finished")
	return nil
}

func (i *Interpreter) run(program *ast.Program) error {
	mainFn, err := i.resolveEntry(program)
	if err != nil {
		return err
	}
	i.logger.Debug().Str("run", i.runID).Int("statements", len(mainFn.Statements)).Msg("entering main")
	return i.executeFunction(mainFn, runtime.NewEnvironment())
}

// resolveEntry only ever inspects the first declared function.
func (i *Interpreter) resolveEntry(program *ast.Program) (*ast.FunctionDefinition, error) {
	if program == nil || len(program.Functions) == 0 {
		return nil, nameErrorf("No main() function was found")
	}
	first := program.Functions[0]
	if first == nil || first.Name != entryFunctionName {
		return nil, nameErrorf("No main() function was found")
	}
	return first, nil
}

func (i *Interpreter) report(err error) {
	var runErr *Error
	if errors.As(err, &runErr) {
		i.logger.Debug().Str("run", i.runID).Str("kind", runErr.Kind.String()).Str("message", runErr.Message).Msg("run halted")
		if i.onError != nil {
			i.onError(runErr.Kind, runErr.Message)
		}
		return
	}
	i.logger.Debug().Str("run", i.runID).Err(err).Msg("run failed")
}

func (i *Interpreter) writeLine(line string) error {
	i.transcript = append(i.transcript, line)
	if i.quiet {
		return nil
	}
	return i.out.WriteLine(line)
}
