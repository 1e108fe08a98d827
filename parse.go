package dispatch

import (
	"context"
	"fmt"
)

// Parse dispatches argv, the process arguments without the executable name.
// Unknown commands and missing arguments or flags are returned as errors;
// otherwise Parse returns whatever the aborting callback or the action
// returned.
func (r *Registry) Parse(argv []string) (any, error) {
	return r.ParseContext(context.Background(), argv)
}

// ParseContext is Parse with ctx made available to callbacks and the action
// through Context.Context.
func (r *Registry) ParseContext(ctx context.Context, argv []string) (any, error) {
	input := r.parser.Parse(argv)
	token, tokens := input.Head()

	def, rt, err := r.resolve(token)
	if err != nil {
		return nil, err
	}
	r.log.Debug("dispatching %q to %s", token, rt.pattern)

	args, err := bindArguments(def, tokens)
	if err != nil {
		return nil, err
	}

	opts, err := bindOptions(def, input.Flags)
	if err != nil {
		return nil, err
	}

	c := newContext(ctx, token, argv)

	for _, spec := range def.args {
		value, ok := args.Get(spec.Name)
		if spec.Callback == nil || !ok {
			continue
		}
		if res := spec.Callback(c, value); res.abort {
			r.log.Debug("argument %s aborted dispatch of %s", spec.Name, def.name)
			return res.value, res.err
		}
	}

	for _, spec := range def.options {
		value, ok := opts[spec.Name]
		if spec.Callback == nil || !ok {
			continue
		}
		if res := spec.Callback(c, value); res.abort {
			r.log.Debug("option %s aborted dispatch of %s", spec.Name, def.name)
			return res.value, res.err
		}
	}

	return def.action(c, args, opts)
}

// resolve returns a copy of the matched definition so that callbacks run
// without holding the registry lock.
func (r *Registry) resolve(token string) (*definition, route, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, rt, ok := r.match(token)
	if !ok {
		r.log.Warn("unknown command %q", token)
		return nil, route{}, fmt.Errorf("%w: %q", ErrUnknownCommand, token)
	}
	if def.action == nil {
		return nil, route{}, fmt.Errorf("%w: %s: no action", ErrInvalidCommand, def.name)
	}
	return def.snapshot(), rt, nil
}

func bindArguments(def *definition, tokens []string) (*Arguments, error) {
	args := newArguments()
	if len(def.args) == 0 {
		args.Rest = append(args.Rest, tokens...)
		return args, nil
	}

	n := max(len(def.args), len(tokens))
	for i := range n {
		if i >= len(def.args) {
			args.Rest = append(args.Rest, tokens[i])
			continue
		}

		spec := def.args[i]
		switch {
		case i < len(tokens):
			args.bind(spec.Name, tokens[i])
		case spec.HasDefault:
			args.bind(spec.Name, spec.Default)
		default:
			return nil, &MissingArgumentError{Command: def.name, Index: i, Name: spec.Name}
		}
	}
	return args, nil
}

func bindOptions(def *definition, flags map[string]any) (Options, error) {
	opts := make(Options, len(def.options))
	for _, spec := range def.options {
		value, ok := flags[spec.Name]
		switch {
		case ok:
			opts[spec.Name] = value
		case spec.Required:
			return nil, &MissingFlagError{Command: def.name, Name: spec.Name}
		case spec.HasDefault:
			opts[spec.Name] = spec.Default
		}
	}
	return opts, nil
}
