package argv

// Args contains a tokenized command line.
type Args struct {
	// Positional tokens in input order, including the command token
	Positionals []string

	// Flags by name; values are true/false, a string, or []any when repeated
	Flags map[string]any

	// Raw unparsed tokens
	Raw []string
}

// Lookup returns the flag value for name.
func (a *Args) Lookup(name string) (any, bool) {
	v, ok := a.Flags[name]
	return v, ok
}

// Head splits the positionals into the first token and the remainder. The
// first token is empty when there are no positionals.
func (a *Args) Head() (string, []string) {
	if len(a.Positionals) == 0 {
		return "", nil
	}
	return a.Positionals[0], a.Positionals[1:]
}

func (a *Args) set(name string, value any) {
	existing, ok := a.Flags[name]
	if !ok {
		a.Flags[name] = value
		return
	}

	if list, isList := existing.([]any); isList {
		a.Flags[name] = append(list, value)
		return
	}
	a.Flags[name] = []any{existing, value}
}
