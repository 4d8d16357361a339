package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yndnr/rudis-go/internal/cli/output"
)

// Executor sends one command and returns the reply.
type Executor interface {
	Execute(cmd string) (string, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	exec      Executor
	prompt    string
	input     io.Reader
	output    io.Writer
	formatter output.Formatter
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithFormatter sets how replies are printed.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) {
		r.formatter = f
	}
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// New creates a REPL that sends commands to exec and prompts with
// "addr> ".
func New(exec Executor, addr string, opts ...Option) *REPL {
	r := &REPL{
		exec:      exec,
		prompt:    addr + "> ",
		input:     os.Stdin,
		output:    os.Stdout,
		formatter: &output.TextFormatter{},
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, r.prompt)

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		eof := err == io.EOF

		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "(error) %v\n", err)
		}
		if eof {
			return nil
		}
	}
}

func (r *REPL) execute(line string) error {
	reply, err := r.exec.Execute(line)
	if err != nil {
		return err
	}
	return r.formatter.Format(r.output, output.NewReply(line, reply))
}

// History returns the REPL's history.
func (r *REPL) History() *History {
	return r.history
}

// Complete returns completion suggestions for the given prefix.
func (r *REPL) Complete(prefix string) []string {
	return r.completer.Complete(prefix)
}
