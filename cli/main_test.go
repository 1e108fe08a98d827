package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var commandsFile = filepath.Join("testdata", "commands.hcl")

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"version"}))
	require.Equal(t, version+"\n", out.String())
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"frobnicate"})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "frobnicate")
}

func TestMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"list"})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "missing argument 0: file")
}

func TestListTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"ls", commandsFile}))

	for _, want := range []string{"COMMAND", "build", "build a target", "greet", "halt"} {
		require.Contains(t, out.String(), want)
	}
}

func TestListJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"list", "--json", commandsFile}))

	dec := json.NewDecoder(&out)
	var ids []string
	for dec.More() {
		var entry map[string]string
		require.NoError(t, dec.Decode(&entry))
		ids = append(ids, entry["id"])
		if entry["id"] == "b" {
			require.Equal(t, "build", entry["name"])
			require.Equal(t, "build a target", entry["description"])
		}
	}
	require.Equal(t, []string{"build", "b", "greet", "halt"}, ids)
}

func TestExecEcho(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"exec", commandsFile, "--", "b", "app", "--profile", "dev"}))

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Equal(t, "b", result["command"])
	require.Equal(t, map[string]any{"_": []any{}, "target": "app", "mode": "fast"}, result["args"])
	require.Equal(t, map[string]any{"profile": "dev"}, result["options"])
	require.Equal(t, map[string]any{"stash": []any{"dev"}}, result["context"])
}

func TestExecWithoutTerminator(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"exec", commandsFile, "b", "app", "--profile", "dev", "-v"}))

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Equal(t, map[string]any{"profile": "dev", "v": true}, result["options"])
	require.Equal(t, map[string]any{"stash": []any{"dev", true}}, result["context"])
}

func TestExecErrors(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, []string{"exec", commandsFile, "--", "build", "app"})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "missing flag profile")

	err = run(&out, []string{"exec", commandsFile, "--", "greet", ""})
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, "value must not be empty", exitErr.Message)

	err = run(&out, []string{"exec", commandsFile, "--", "nope"})
	require.ErrorAs(t, err, &exitErr)
	require.Contains(t, exitErr.Message, "unknown command")
}

func TestExecPrintAndAbort(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"run", commandsFile, "--", "greet", "world", "again"}))
	require.Equal(t, "world again\n", out.String())

	out.Reset()
	require.NoError(t, run(&out, []string{"run", commandsFile, "--", "halt", "--now"}))
	require.Equal(t, "stopped at true\n", out.String())
}

func TestExecLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "dispatch.log")

	var out bytes.Buffer
	require.NoError(t, run(&out, []string{"exec", "--log-file", logFile, "--log-level", "debug", commandsFile, "--", "halt"}))
	require.FileExists(t, logFile)
}
