package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/mwantia/dispatch"
	"github.com/mwantia/dispatch/log"
)

// Handlers resolves the action and callback names used in command files.
type Handlers struct {
	Actions   map[string]dispatch.ActionFunc
	Callbacks map[string]dispatch.Callback
}

// RegistryOptions translates the log block into registry options.
func (f *File) RegistryOptions() ([]dispatch.RegistryOption, error) {
	if f.Log == nil {
		return nil, nil
	}

	var opts []dispatch.RegistryOption
	if f.Log.Level != "" {
		level, err := log.Parse(f.Log.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dispatch.WithLogLevel(level))
	}
	if f.Log.File != "" {
		opts = append(opts, dispatch.WithLogFile(f.Log.File))
	}
	if f.Log.JSON {
		opts = append(opts, dispatch.WithJSONLog())
	}
	if f.Log.Terminal {
		opts = append(opts, dispatch.WithTerminalLog())
	}
	return opts, nil
}

// NewRegistry creates a registry configured by the log block and declares
// every command on it.
func (f *File) NewRegistry(h Handlers, opts ...dispatch.RegistryOption) (*dispatch.Registry, error) {
	fileOpts, err := f.RegistryOptions()
	if err != nil {
		return nil, err
	}

	reg, err := dispatch.New(append(fileOpts, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(reg, h); err != nil {
		reg.Close()
		return nil, err
	}
	return reg, nil
}

// Apply declares the commands on reg. Patterns, argument specs and handler
// names are all checked before any command is declared, so a rejected file
// leaves reg untouched. Declaration errors wrap dispatch.ErrConfiguration.
func (f *File) Apply(reg *dispatch.Registry, h Handlers) (err error) {
	patterns := make([]dispatch.Pattern, len(f.Commands))
	for i, cmd := range f.Commands {
		if patterns[i], err = cmd.pattern(); err != nil {
			return err
		}
		if err := cmd.validate(h); err != nil {
			return err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, dispatch.ErrConfiguration) {
				err = e
				return
			}
			panic(r)
		}
	}()

	for i, cmd := range f.Commands {
		b := reg.Command(patterns[i]).Description(cmd.Description)
		for _, alias := range cmd.Aliases {
			b.Alias(dispatch.Exact(alias))
		}
		if len(cmd.Args) > 0 {
			b.ArgsFunc(h.Callbacks[cmd.ArgsCallback], cmd.Args...)
		}
		if len(cmd.Options) > 0 {
			b.OptionFunc(h.Callbacks[cmd.OptionsCallback], cmd.Options...)
		}
		if cmd.Action != "" {
			b.Action(h.Actions[cmd.Action])
		}
	}
	return nil
}

func (c *Command) pattern() (dispatch.Pattern, error) {
	if c.Match == "" {
		return dispatch.Exact(c.Name), nil
	}

	re, err := regexp.Compile(c.Match)
	if err != nil {
		return dispatch.Pattern{}, fmt.Errorf("command %q: invalid match: %w", c.Name, err)
	}
	return dispatch.Match(re), nil
}

func (c *Command) validate(h Handlers) error {
	if _, err := dispatch.ParseArgs(c.Args...); err != nil {
		return fmt.Errorf("command %q: args: %w", c.Name, err)
	}
	for _, option := range c.Options {
		if _, err := dispatch.ParseSpec(option); err != nil {
			return fmt.Errorf("command %q: options: %w", c.Name, err)
		}
	}

	if c.Action != "" {
		if _, ok := h.Actions[c.Action]; !ok {
			return fmt.Errorf("%w: command %q: action %q", ErrUnknownHandler, c.Name, c.Action)
		}
	}
	for _, name := range []string{c.ArgsCallback, c.OptionsCallback} {
		if name == "" {
			continue
		}
		if _, ok := h.Callbacks[name]; !ok {
			return fmt.Errorf("%w: command %q: callback %q", ErrUnknownHandler, c.Name, name)
		}
	}
	return nil
}
