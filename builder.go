package dispatch

// CommandBuilder declares a single command. Every method targets the
// definition created by Registry.Command, including through aliases.
//
// Malformed declarations are programming errors: the builder panics with a
// *ConfigError.
type CommandBuilder struct {
	registry *Registry
	id       DefinitionID
}

func (b *CommandBuilder) ID() DefinitionID {
	return b.id
}

func (b *CommandBuilder) Description(text string) *CommandBuilder {
	b.update(func(def *definition) error {
		def.description = text
		return nil
	})
	return b
}

// Alias routes p to the same definition.
func (b *CommandBuilder) Alias(p Pattern) *CommandBuilder {
	r := b.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	def := b.lookup()
	r.addRoute(p, def.id)
	r.log.Debug("registered alias %s for %s", p, def.name)
	return b
}

// Args appends positional arguments declared as "[!]name[=default]".
// Arguments with defaults must come after all arguments without one.
func (b *CommandBuilder) Args(specs ...string) *CommandBuilder {
	return b.ArgsFunc(nil, specs...)
}

// ArgsFunc is Args with cb attached to every declared argument.
func (b *CommandBuilder) ArgsFunc(cb Callback, specs ...string) *CommandBuilder {
	b.update(func(def *definition) error {
		args, err := declare(def, def.args, cb, specs)
		if err != nil {
			return err
		}
		if err := validatePositionals(args); err != nil {
			return &ConfigError{Command: def.name, Reason: err.Error()}
		}

		def.args = args
		return nil
	})
	return b
}

// Option declares options as "[!]name[=default]". Declaring a name again
// replaces the earlier declaration.
func (b *CommandBuilder) Option(specs ...string) *CommandBuilder {
	return b.OptionFunc(nil, specs...)
}

// OptionFunc is Option with cb attached to every declared option.
func (b *CommandBuilder) OptionFunc(cb Callback, specs ...string) *CommandBuilder {
	b.update(func(def *definition) error {
		options, err := declare(def, def.options, cb, specs)
		if err != nil {
			return err
		}

		def.options = options
		return nil
	})
	return b
}

func (b *CommandBuilder) Action(fn ActionFunc) *CommandBuilder {
	b.update(func(def *definition) error {
		def.action = fn
		return nil
	})
	return b
}

func (b *CommandBuilder) update(fn func(def *definition) error) {
	r := b.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(b.lookup()); err != nil {
		panic(err)
	}
}

func (b *CommandBuilder) lookup() *definition {
	def, ok := b.registry.defs[b.id]
	if !ok {
		panic(&ConfigError{Command: b.id.String(), Reason: "definition was replaced"})
	}
	return def
}

// declare parses specs and merges them into existing without modifying it.
func declare(def *definition, existing []*ArgumentSpec, cb Callback, specs []string) ([]*ArgumentSpec, error) {
	merged := make([]*ArgumentSpec, len(existing))
	copy(merged, existing)

	for _, s := range specs {
		spec, err := ParseSpec(s)
		if err != nil {
			reason := "malformed argument spec"
			if s == "" {
				reason = "empty argument spec"
			}
			return nil, &ConfigError{Command: def.name, Spec: s, Reason: reason}
		}
		spec.Callback = cb

		if i := indexOf(merged, spec.Name); i >= 0 {
			merged[i] = spec
		} else {
			merged = append(merged, spec)
		}
	}
	return merged, nil
}

func indexOf(specs []*ArgumentSpec, name string) int {
	for i, spec := range specs {
		if spec.Name == name {
			return i
		}
	}
	return -1
}
