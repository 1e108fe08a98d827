package dispatch

import "iter"

// CommandInfo describes one route. ID is the route key, so aliases report
// their own key while sharing Name and Description with their definition.
type CommandInfo struct {
	ID          string
	Name        string
	Description string
	Pattern     Pattern
	Definition  DefinitionID
}

// CommandIter walks the routes in registration order. It reads the registry
// lazily on every step and cannot be restarted once exhausted.
type CommandIter struct {
	registry *Registry
	next     uint64
	done     bool
	current  CommandInfo
}

// Commands returns a single-pass iterator over every route.
func (r *Registry) Commands() *CommandIter {
	return &CommandIter{registry: r}
}

func (it *CommandIter) Next() bool {
	if it.done {
		return false
	}

	r := it.registry
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := false
	r.routes.Ascend(it.next, func(seq uint64, rt route) bool {
		def := r.defs[rt.id]
		it.current = CommandInfo{
			ID:          rt.pattern.Key(),
			Name:        def.name,
			Description: def.description,
			Pattern:     rt.pattern,
			Definition:  rt.id,
		}
		it.next = seq + 1
		found = true
		return false
	})

	if !found {
		it.done = true
		it.current = CommandInfo{}
	}
	return found
}

// Info returns the entry produced by the last successful Next.
func (it *CommandIter) Info() CommandInfo {
	return it.current
}

// All adapts the iterator to a range-over-func sequence. Ranging consumes
// the iterator.
func (it *CommandIter) All() iter.Seq[CommandInfo] {
	return func(yield func(CommandInfo) bool) {
		for it.Next() {
			if !yield(it.Info()) {
				return
			}
		}
	}
}
