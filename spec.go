package dispatch

import (
	"fmt"
	"regexp"
)

// specGrammar is "[!]name[=default]".
var specGrammar = regexp.MustCompile(`^(!)?([A-Za-z0-9_][A-Za-z0-9_-]*)(?:=(.+))?$`)

// ArgumentSpec describes one positional argument or option.
type ArgumentSpec struct {
	Name       string
	Required   bool
	Default    string
	HasDefault bool
	Callback   Callback
}

// ParseSpec parses the declaration mini-grammar: an optional leading "!" marks
// the value required, followed by the name and an optional "=default".
func ParseSpec(s string) (*ArgumentSpec, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty argument spec", ErrConfiguration)
	}

	m := specGrammar.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: malformed argument spec %q", ErrConfiguration, s)
	}

	spec := &ArgumentSpec{
		Name:     m[2],
		Required: m[1] == "!",
	}
	if m[3] != "" {
		spec.Default = m[3]
		spec.HasDefault = true
	}
	return spec, nil
}

// ParseArgs parses a positional argument list and checks that arguments with
// defaults follow every argument without one.
func ParseArgs(specs ...string) ([]*ArgumentSpec, error) {
	parsed := make([]*ArgumentSpec, 0, len(specs))
	for _, s := range specs {
		spec, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, spec)
	}

	if err := validatePositionals(parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return parsed, nil
}

func (s *ArgumentSpec) String() string {
	out := s.Name
	if s.Required {
		out = "!" + out
	}
	if s.HasDefault {
		out += "=" + s.Default
	}
	return out
}

// validatePositionals rejects a list where a required positional follows one
// carrying a default.
func validatePositionals(specs []*ArgumentSpec) error {
	defaulted := ""
	for _, spec := range specs {
		if spec.HasDefault {
			if defaulted == "" {
				defaulted = spec.Name
			}
			continue
		}
		if defaulted != "" {
			return fmt.Errorf("argument %q without default follows %q with default", spec.Name, defaulted)
		}
	}
	return nil
}
