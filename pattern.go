package dispatch

import "regexp"

// Pattern selects the command token a route answers to. It is either an exact
// name or a regular expression.
type Pattern struct {
	exact string
	re    *regexp.Regexp
}

// MatchAny matches every non-empty command token.
var MatchAny = Match(regexp.MustCompile("."))

func Exact(name string) Pattern {
	return Pattern{exact: name}
}

func Match(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

// MustMatch compiles expr and panics if it is invalid.
func MustMatch(expr string) Pattern {
	return Match(regexp.MustCompile(expr))
}

// patternKey identifies a route. Exact names and expressions never share a
// key, so Exact("/./") and MatchAny are distinct routes.
type patternKey struct {
	regexp bool
	source string
}

func (p Pattern) routeKey() patternKey {
	if p.re != nil {
		return patternKey{regexp: true, source: p.re.String()}
	}
	return patternKey{source: p.exact}
}

// Key is the display form of the pattern; expressions are shown as "/expr/".
// Two expressions with the same source replace one another in a registry.
func (p Pattern) Key() string {
	if p.re != nil {
		return "/" + p.re.String() + "/"
	}
	return p.exact
}

func (p Pattern) IsRegexp() bool {
	return p.re != nil
}

func (p Pattern) String() string {
	return p.Key()
}

// Matches reports whether token selects this pattern. An empty token never
// matches.
func (p Pattern) Matches(token string) bool {
	if token == "" {
		return false
	}
	if p.re != nil {
		return p.re.MatchString(token)
	}
	return token == p.exact
}
