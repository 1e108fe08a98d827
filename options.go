package dispatch

import (
	"github.com/mwantia/dispatch/argv"
	"github.com/mwantia/dispatch/log"
)

type RegistryOptions struct {
	Logger        *log.Logger
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
	JSONLog       bool
	Parser        *argv.Parser
}

type RegistryOption func(*RegistryOptions) error

func newDefaultRegistryOptions() *RegistryOptions {
	return &RegistryOptions{
		LogLevel:      log.Warn,
		NoTerminalLog: true,
	}
}

// WithLogger uses an existing logger; the level and file options are ignored.
func WithLogger(logger *log.Logger) RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.Logger = logger
		return nil
	}
}

func WithLogLevel(logLevel log.LogLevel) RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

// WithTerminalLog enables log output on stdout.
func WithTerminalLog() RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.NoTerminalLog = false
		return nil
	}
}

func WithoutTerminalLog() RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithJSONLog() RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.JSONLog = true
		return nil
	}
}

// WithParser replaces the tokenizer used by Parse.
func WithParser(parser *argv.Parser) RegistryOption {
	return func(opts *RegistryOptions) error {
		opts.Parser = parser
		return nil
	}
}

func (opts *RegistryOptions) logger() *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if opts.NoTerminalLog && opts.LogFile == "" {
		return log.Discard()
	}

	l := log.NewLogger("dispatch", opts.LogLevel, opts.LogFile, opts.NoTerminalLog)
	l.JSON = opts.JSONLog
	return l
}
