package dispatch

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/mwantia/dispatch/argv"
	"github.com/mwantia/dispatch/log"
	"github.com/tidwall/btree"
)

// DefinitionID identifies a command definition independently of the patterns
// routed to it.
type DefinitionID uuid.UUID

func (id DefinitionID) String() string {
	return uuid.UUID(id).String()
}

type definition struct {
	id          DefinitionID
	name        string
	description string
	action      ActionFunc
	args        []*ArgumentSpec
	options     []*ArgumentSpec
}

func (d *definition) snapshot() *definition {
	c := *d
	c.args = slices.Clone(d.args)
	c.options = slices.Clone(d.options)
	return &c
}

type route struct {
	pattern Pattern
	id      DefinitionID
}

// Registry maps command patterns to definitions and dispatches parsed command
// lines to them. Routes are tried in registration order.
type Registry struct {
	mu     sync.RWMutex
	log    *log.Logger
	parser *argv.Parser

	seq    uint64
	keys   map[patternKey]uint64
	routes btree.Map[uint64, route]
	defs   map[DefinitionID]*definition
}

func New(opts ...RegistryOption) (*Registry, error) {
	options := newDefaultRegistryOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	parser := options.Parser
	if parser == nil {
		parser = argv.NewParser()
	}

	return &Registry{
		log:    options.logger(),
		parser: parser,
		keys:   make(map[patternKey]uint64),
		defs:   make(map[DefinitionID]*definition),
	}, nil
}

// Close releases the log file opened through WithLogFile.
func (r *Registry) Close() error {
	return r.log.Close()
}

// Command starts a new definition routed from p. Registering a pattern again
// replaces the definition it routes to while keeping its position.
func (r *Registry) Command(p Pattern) *CommandBuilder {
	r.mu.Lock()
	defer r.mu.Unlock()

	def := &definition{
		id:   DefinitionID(uuid.New()),
		name: p.String(),
	}
	r.defs[def.id] = def
	r.addRoute(p, def.id)

	r.log.Debug("registered command %s (%s)", p, def.id)
	return &CommandBuilder{registry: r, id: def.id}
}

// Len returns the number of routes, aliases included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.routes.Len()
}

func (r *Registry) addRoute(p Pattern, id DefinitionID) {
	key := p.routeKey()
	seq, exists := r.keys[key]
	if !exists {
		r.seq++
		seq = r.seq
		r.keys[key] = seq
	}

	previous, replaced := r.routes.Set(seq, route{pattern: p, id: id})
	if replaced && previous.id != id {
		r.release(previous.id)
	}
}

// release drops a definition once no route references it.
func (r *Registry) release(id DefinitionID) {
	referenced := false
	r.routes.Scan(func(_ uint64, rt route) bool {
		referenced = rt.id == id
		return !referenced
	})
	if !referenced {
		delete(r.defs, id)
	}
}

func (r *Registry) match(token string) (*definition, route, bool) {
	var (
		found route
		ok    bool
	)
	r.routes.Scan(func(_ uint64, rt route) bool {
		ok = rt.pattern.Matches(token)
		if ok {
			found = rt
		}
		return !ok
	})
	if !ok {
		return nil, route{}, false
	}
	return r.defs[found.id], found, true
}
