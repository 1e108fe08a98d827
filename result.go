package dispatch

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// Result is returned by argument and option callbacks to decide whether
// dispatch continues.
type Result struct {
	abort bool
	value any
	err   error
}

// Continue lets dispatch proceed to the next callback or the action.
func Continue() Result {
	return Result{}
}

// Abort stops dispatch; Parse returns value and a nil error.
func Abort(value any) Result {
	return Result{abort: true, value: value}
}

// Fail stops dispatch; Parse returns err. A nil err is the same as Continue.
func Fail(err error) Result {
	if err == nil {
		return Continue()
	}
	return Result{abort: true, err: err}
}

func (r Result) Aborted() bool {
	return r.abort
}

// Callback runs for a bound positional argument or option.
type Callback func(ctx *Context, value any) Result

// ActionFunc is the main handler of a command. Its return values are passed
// through Parse unchanged.
type ActionFunc func(ctx *Context, args *Arguments, opts Options) (any, error)

// Context is the scratch space shared by the callbacks and the action of a
// single Parse call.
type Context struct {
	ctx     context.Context
	values  map[string]any
	Command string
	Raw     []string
}

func newContext(ctx context.Context, command string, raw []string) *Context {
	return &Context{
		ctx:     ctx,
		values:  make(map[string]any),
		Command: command,
		Raw:     raw,
	}
}

// Context returns the context.Context passed to ParseContext.
func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) Set(key string, value any) {
	c.values[key] = value
}

func (c *Context) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *Context) Values() map[string]any {
	return maps.Clone(c.values)
}

// Arguments holds the bound positional arguments. Rest collects tokens that
// have no declared slot; for a command without declared arguments it is the
// whole token list.
type Arguments struct {
	Rest   []string
	values map[string]string
	names  []string
}

func newArguments() *Arguments {
	return &Arguments{
		Rest:   []string{},
		values: make(map[string]string),
	}
}

func (a *Arguments) bind(name, value string) {
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

func (a *Arguments) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Value returns the bound value of name or an empty string.
func (a *Arguments) Value(name string) string {
	return a.values[name]
}

// Names lists the bound argument names in declaration order.
func (a *Arguments) Names() []string {
	return slices.Clone(a.names)
}

func (a *Arguments) Len() int {
	return len(a.names)
}

// Map returns the bound arguments with the overflow under "_".
func (a *Arguments) Map() map[string]any {
	out := make(map[string]any, len(a.values)+1)
	out["_"] = slices.Clone(a.Rest)
	for name, value := range a.values {
		out[name] = value
	}
	return out
}

// Options holds bound option values: true/false for bare flags, strings for
// values and defaults, []any for repeated flags.
type Options map[string]any

func (o Options) Has(name string) bool {
	_, ok := o[name]
	return ok
}

// String formats the value of name; repeated flags yield the last value.
func (o Options) String(name string) string {
	v, ok := o[name]
	if !ok {
		return ""
	}
	if list, isList := v.([]any); isList && len(list) > 0 {
		v = list[len(list)-1]
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// Bool reports whether name was set to anything other than false.
func (o Options) Bool(name string) bool {
	v, ok := o[name]
	if !ok {
		return false
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	return true
}
