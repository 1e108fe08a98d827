// Package argv tokenizes raw command lines without a flag schema. Unknown
// flags are never an error; every "-x" or "--name" token becomes an entry in
// the flag map and everything else is collected as a positional.
package argv

import (
	"strings"
	"unicode"
)

// Parser splits tokens into positionals and flags.
type Parser struct {
	booleans  map[string]struct{}
	stopAfter int
}

type ParserOption func(*Parser)

// WithBooleans marks flags that never consume the following token as their
// value.
func WithBooleans(names ...string) ParserOption {
	return func(p *Parser) {
		for _, name := range names {
			p.booleans[name] = struct{}{}
		}
	}
}

// WithStopAfter ends flag parsing once n positionals were collected. The
// remaining tokens become positionals verbatim, except for a leading "--"
// which is dropped.
func WithStopAfter(n int) ParserOption {
	return func(p *Parser) {
		p.stopAfter = n
	}
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		booleans: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse tokenizes raw with a parser that has no boolean-only flags.
func Parse(raw []string) *Args {
	return NewParser().Parse(raw)
}

func (p *Parser) Parse(raw []string) *Args {
	args := &Args{
		Positionals: make([]string, 0, len(raw)),
		Flags:       make(map[string]any),
		Raw:         raw,
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			args.Positionals = append(args.Positionals, raw[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			key, value, hasValue := parseLongFlag(arg)
			if key == "" {
				args.Positionals = append(args.Positionals, arg)
				continue
			}

			switch {
			case hasValue:
				args.set(key, value)
			case strings.HasPrefix(key, "no-") && len(key) > 3:
				args.set(key[3:], false)
			case !p.isBoolean(key) && i+1 < len(raw) && !isFlag(raw[i+1]):
				args.set(key, raw[i+1])
				i++
			default:
				args.set(key, true)
			}
			continue
		}

		if isFlag(arg) {
			i += p.parseShortFlags(args, arg[1:], raw[i+1:])
			continue
		}

		args.Positionals = append(args.Positionals, arg)

		if p.stopAfter > 0 && len(args.Positionals) == p.stopAfter {
			rest := raw[i+1:]
			if len(rest) > 0 && rest[0] == "--" {
				rest = rest[1:]
			}
			args.Positionals = append(args.Positionals, rest...)
			break
		}
	}

	return args
}

// parseShortFlags handles a "-abc" group and reports how many of the
// following tokens it consumed.
func (p *Parser) parseShortFlags(args *Args, group string, next []string) int {
	letters := []rune(group)

	for j := 0; j < len(letters)-1; j++ {
		name := string(letters[j])
		rest := string(letters[j+1:])

		switch {
		case strings.HasPrefix(rest, "="):
			args.set(name, rest[1:])
			return 0
		case !unicode.IsLetter(letters[j+1]):
			args.set(name, rest)
			return 0
		default:
			args.set(name, true)
		}
	}

	last := string(letters[len(letters)-1])
	if !p.isBoolean(last) && len(next) > 0 && !isFlag(next[0]) {
		args.set(last, next[0])
		return 1
	}

	args.set(last, true)
	return 0
}

func (p *Parser) isBoolean(name string) bool {
	_, ok := p.booleans[name]
	return ok
}

func isFlag(token string) bool {
	return len(token) > 1 && token[0] == '-'
}

func parseLongFlag(arg string) (key, value string, hasValue bool) {
	arg = strings.TrimPrefix(arg, "--")
	if idx := strings.Index(arg, "="); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}
