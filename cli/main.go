package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mwantia/dispatch"
	"github.com/mwantia/dispatch/argv"
	"github.com/mwantia/dispatch/log"
)

const version = "0.1.0"

// ExitError is returned by run when the process should exit with Code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run dispatches args against the builtin commands and prints the result.
func run(out io.Writer, args []string) error {
	reg, err := newRegistry(out)
	if err != nil {
		return err
	}
	defer reg.Close()

	result, err := reg.Parse(args)
	if err != nil {
		return usageError(err)
	}
	return printResult(out, result)
}

// newRegistry stops flag parsing after "<command> <file>" so that everything
// following the file reaches the declared commands untouched; a "--" right
// after the file is optional.
func newRegistry(out io.Writer) (*dispatch.Registry, error) {
	parser := argv.NewParser(argv.WithStopAfter(2), argv.WithBooleans("json"))
	reg, err := dispatch.New(dispatch.WithLogger(log.Discard()), dispatch.WithParser(parser))
	if err != nil {
		return nil, err
	}

	reg.Command(dispatch.Exact("list")).
		Alias(dispatch.Exact("ls")).
		Description("list the commands declared in a file").
		Args("file").
		OptionFunc(func(ctx *dispatch.Context, value any) dispatch.Result {
			ctx.Set("format", "json")
			return dispatch.Continue()
		}, "json").
		Action(listAction(out))

	reg.Command(dispatch.Exact("exec")).
		Alias(dispatch.Exact("run")).
		Description("dispatch the remaining arguments against a file").
		Args("file").
		Option("log-file", "log-level=warn").
		Action(execAction(out))

	reg.Command(dispatch.Exact("version")).
		Description("print the version").
		Action(func(*dispatch.Context, *dispatch.Arguments, dispatch.Options) (any, error) {
			return version, nil
		})

	reg.Command(dispatch.MatchAny).
		Description("report an unknown command").
		Action(func(ctx *dispatch.Context, _ *dispatch.Arguments, _ dispatch.Options) (any, error) {
			return nil, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q, expected list, exec or version", ctx.Command)}
		})

	return reg, nil
}

func usageError(err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch {
	case errors.Is(err, dispatch.ErrUnknownCommand),
		errors.Is(err, dispatch.ErrMissingArgument),
		errors.Is(err, dispatch.ErrMissingFlag):
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return err
}

func printResult(out io.Writer, result any) error {
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(out, v)
		return err
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
