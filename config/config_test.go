package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/dispatch"
	"github.com/stretchr/testify/require"
)

const sample = `
log {
  level = "debug"
  json  = true
}

command "build" {
  description      = "build a target"
  aliases          = ["b"]
  args             = ["target", "mode=fast"]
  options          = ["!profile", "v"]
  options_callback = "stash"
  action           = "echo"
}

command "version" {
  args   = "topic=all"
  action = "echo"
}

command "fallback" {
  match  = "^x-"
  action = "echo"
}
`

func echo(ctx *dispatch.Context, args *dispatch.Arguments, opts dispatch.Options) (any, error) {
	out := args.Map()
	for name, value := range opts {
		out["opt:"+name] = value
	}
	for key, value := range ctx.Values() {
		out["ctx:"+key] = value
	}
	return out, nil
}

func handlers() Handlers {
	return Handlers{
		Actions: map[string]dispatch.ActionFunc{"echo": echo},
		Callbacks: map[string]dispatch.Callback{
			"stash": func(ctx *dispatch.Context, value any) dispatch.Result {
				ctx.Set("seen", value)
				return dispatch.Continue()
			},
		},
	}
}

func TestParse(t *testing.T) {
	file, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)

	require.NotNil(t, file.Log)
	require.Equal(t, "debug", file.Log.Level)
	require.True(t, file.Log.JSON)

	require.Len(t, file.Commands, 3)
	build := file.Commands[0]
	require.Equal(t, "build", build.Name)
	require.Equal(t, []string{"b"}, build.Aliases)
	require.Equal(t, []string{"target", "mode=fast"}, build.Args)
	require.Equal(t, []string{"!profile", "v"}, build.Options)
	require.Equal(t, "stash", build.OptionsCallback)

	require.Equal(t, []string{"topic=all"}, file.Commands[1].Args)
	require.Nil(t, file.Commands[1].Options)
	require.Equal(t, "^x-", file.Commands[2].Match)

	opts, err := file.RegistryOptions()
	require.NoError(t, err)
	require.Len(t, opts, 2)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`command "a" {`), "broken.hcl")
	require.Error(t, err)

	_, err = Parse([]byte(`command "a" { args = { x = 1 } }`), "object.hcl")
	require.ErrorContains(t, err, "args")

	_, err = Parse([]byte(`log { level = "loud" }`), "level.hcl")
	require.ErrorContains(t, err, "invalid log level")

	_, err = Parse([]byte(`command "a" { unknown = true }`), "unknown.hcl")
	require.Error(t, err)
}

func TestApplyAndDispatch(t *testing.T) {
	file, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)

	reg, err := dispatch.New()
	require.NoError(t, err)
	require.NoError(t, file.Apply(reg, handlers()))
	require.Equal(t, 4, reg.Len())

	out, err := reg.Parse([]string{"b", "app", "--profile", "dev", "-v"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"_":           []string{},
		"target":      "app",
		"mode":        "fast",
		"opt:profile": "dev",
		"opt:v":       true,
		"ctx:seen":    true,
	}, out)

	_, err = reg.Parse([]string{"build", "app"})
	var missing *dispatch.MissingFlagError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "profile", missing.Name)

	out, err = reg.Parse([]string{"x-anything", "rest"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"_": []string{"rest"}}, out)

	infos := []string{}
	for info := range reg.Commands().All() {
		infos = append(infos, info.ID)
	}
	require.Equal(t, []string{"build", "b", "version", "/^x-/"}, infos)
}

func TestApplyUnknownHandler(t *testing.T) {
	file, err := Parse([]byte(`command "a" { action = "missing" }`), "a.hcl")
	require.NoError(t, err)

	reg, err := dispatch.New()
	require.NoError(t, err)

	err = file.Apply(reg, handlers())
	require.True(t, errors.Is(err, ErrUnknownHandler))
	require.Equal(t, 0, reg.Len())
}

func TestApplyConfigurationError(t *testing.T) {
	file, err := Parse([]byte(`command "ok" {
  args   = ["first"]
  action = "echo"
}

command "a" {
  args   = ["first=1", "second"]
  action = "echo"
}`), "a.hcl")
	require.NoError(t, err)

	reg, err := dispatch.New()
	require.NoError(t, err)

	err = file.Apply(reg, handlers())
	require.ErrorIs(t, err, dispatch.ErrConfiguration)
	require.Equal(t, 0, reg.Len())
}

func TestApplyMalformedOption(t *testing.T) {
	file, err := Parse([]byte(`command "ok" { action = "echo" }

command "a" {
  options = ["bad spec"]
  action  = "echo"
}`), "a.hcl")
	require.NoError(t, err)

	reg, err := dispatch.New()
	require.NoError(t, err)

	err = file.Apply(reg, handlers())
	require.ErrorIs(t, err, dispatch.ErrConfiguration)
	require.Equal(t, 0, reg.Len())
}

func TestApplyInvalidMatch(t *testing.T) {
	file, err := Parse([]byte(`command "a" { match = "(" }`), "a.hcl")
	require.NoError(t, err)

	reg, err := dispatch.New()
	require.NoError(t, err)
	require.ErrorContains(t, file.Apply(reg, handlers()), "invalid match")
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`command "second" { action = "echo" }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`command "first" { action = "echo" }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))

	file, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, file.Commands, 2)
	require.Equal(t, "first", file.Commands[0].Name)
	require.Equal(t, "second", file.Commands[1].Name)

	reg, err := file.NewRegistry(handlers())
	require.NoError(t, err)
	defer reg.Close()

	out, err := reg.Parse([]string{"second"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"_": []string{}}, out)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)

	_, err = Load(t.TempDir())
	require.ErrorIs(t, err, ErrNoFiles)
}
