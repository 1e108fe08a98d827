package dispatch

import (
	"errors"
	"fmt"
)

// Errors reported by Parse for user input, and ErrConfiguration for
// registration mistakes.
var (
	ErrUnknownCommand  = errors.New("dispatch: unknown command")
	ErrInvalidCommand  = errors.New("dispatch: invalid command")
	ErrMissingArgument = errors.New("dispatch: missing argument")
	ErrMissingFlag     = errors.New("dispatch: missing flag")
	ErrConfiguration   = errors.New("dispatch: configuration error")
)

// MissingArgumentError reports a declared positional without a token or default.
// Index counts from the first token after the command token.
type MissingArgumentError struct {
	Command string
	Index   int
	Name    string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %d: %s", e.Index, e.Name)
}

func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}

// MissingFlagError reports a required option that was not supplied.
type MissingFlagError struct {
	Command string
	Name    string
}

func (e *MissingFlagError) Error() string {
	return fmt.Sprintf("missing flag %s", e.Name)
}

func (e *MissingFlagError) Unwrap() error {
	return ErrMissingFlag
}

// ConfigError is the panic value raised by CommandBuilder when a declaration
// is malformed.
type ConfigError struct {
	Command string
	Spec    string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Spec != "" {
		return fmt.Sprintf("%v: command %q: %s: %q", ErrConfiguration, e.Command, e.Reason, e.Spec)
	}
	return fmt.Sprintf("%v: command %q: %s", ErrConfiguration, e.Command, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
