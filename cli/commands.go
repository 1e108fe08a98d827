package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mwantia/dispatch"
	"github.com/mwantia/dispatch/config"
	"github.com/mwantia/dispatch/log"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func listAction(out io.Writer) dispatch.ActionFunc {
	return func(ctx *dispatch.Context, args *dispatch.Arguments, _ dispatch.Options) (any, error) {
		reg, err := loadRegistry(args.Value("file"), out)
		if err != nil {
			return nil, err
		}
		defer reg.Close()

		if format, _ := ctx.Get("format"); format == "json" {
			enc := json.NewEncoder(out)
			for info := range reg.Commands().All() {
				entry := map[string]string{
					"id":          info.ID,
					"name":        info.Name,
					"description": info.Description,
				}
				if err := enc.Encode(entry); err != nil {
					return nil, err
				}
			}
			return nil, nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("COMMAND", "NAME", "DESCRIPTION").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		for info := range reg.Commands().All() {
			t.Row(info.ID, info.Name, info.Description)
		}
		return t.Render(), nil
	}
}

func execAction(out io.Writer) dispatch.ActionFunc {
	return func(ctx *dispatch.Context, args *dispatch.Arguments, opts dispatch.Options) (any, error) {
		level, err := log.Parse(opts.String("log-level"))
		if err != nil {
			return nil, &ExitError{Code: 2, Message: err.Error()}
		}

		extra := []dispatch.RegistryOption{dispatch.WithLogLevel(level)}
		if file, ok := opts["log-file"].(string); ok && file != "" {
			extra = append(extra, dispatch.WithLogFile(file))
		}

		reg, err := loadRegistry(args.Value("file"), out, extra...)
		if err != nil {
			return nil, err
		}
		defer reg.Close()

		return reg.ParseContext(ctx.Context(), args.Rest)
	}
}

func loadRegistry(path string, out io.Writer, opts ...dispatch.RegistryOption) (*dispatch.Registry, error) {
	file, err := config.Load(path)
	if err != nil {
		return nil, &ExitError{Code: 1, Message: err.Error()}
	}
	return file.NewRegistry(builtinHandlers(out), opts...)
}

// builtinHandlers are the actions and callbacks command files can reference.
func builtinHandlers(out io.Writer) config.Handlers {
	return config.Handlers{
		Actions: map[string]dispatch.ActionFunc{
			"echo": func(ctx *dispatch.Context, args *dispatch.Arguments, opts dispatch.Options) (any, error) {
				return map[string]any{
					"command": ctx.Command,
					"args":    args.Map(),
					"options": opts,
					"context": ctx.Values(),
				}, nil
			},
			"print": func(_ *dispatch.Context, args *dispatch.Arguments, _ dispatch.Options) (any, error) {
				values := make([]string, 0, args.Len()+len(args.Rest))
				for _, name := range args.Names() {
					values = append(values, args.Value(name))
				}
				fmt.Fprintln(out, strings.Join(append(values, args.Rest...), " "))
				return nil, nil
			},
		},
		Callbacks: map[string]dispatch.Callback{
			"stash": func(ctx *dispatch.Context, value any) dispatch.Result {
				stashed, _ := ctx.Get("stash")
				list, _ := stashed.([]any)
				ctx.Set("stash", append(list, value))
				return dispatch.Continue()
			},
			"stop": func(_ *dispatch.Context, value any) dispatch.Result {
				return dispatch.Abort(fmt.Sprintf("stopped at %v", value))
			},
			"nonempty": func(_ *dispatch.Context, value any) dispatch.Result {
				if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
					return dispatch.Fail(&ExitError{Code: 2, Message: "value must not be empty"})
				}
				return dispatch.Continue()
			},
		},
	}
}
