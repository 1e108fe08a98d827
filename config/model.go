package config

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the decoded content of one or more command files.
type File struct {
	Log      *Log
	Commands []*Command
}

// Log configures the registry logger.
type Log struct {
	Level    string
	File     string
	JSON     bool
	Terminal bool
}

// Command is a single declared command. Args and Options use the
// "[!]name[=default]" grammar.
type Command struct {
	Name            string
	Description     string
	Aliases         []string
	Match           string
	Args            []string
	ArgsCallback    string
	Options         []string
	OptionsCallback string
	Action          string
}

type fileRoot struct {
	Log      *logBlock       `hcl:"log,block"`
	Commands []*commandBlock `hcl:"command,block"`
}

type logBlock struct {
	Level    string `hcl:"level,optional"`
	File     string `hcl:"file,optional"`
	JSON     bool   `hcl:"json,optional"`
	Terminal bool   `hcl:"terminal,optional"`
}

type commandBlock struct {
	Name            string         `hcl:"name,label"`
	Description     string         `hcl:"description,optional"`
	Aliases         []string       `hcl:"aliases,optional"`
	Match           string         `hcl:"match,optional"`
	Args            hcl.Expression `hcl:"args,optional"`
	ArgsCallback    string         `hcl:"args_callback,optional"`
	Options         hcl.Expression `hcl:"options,optional"`
	OptionsCallback string         `hcl:"options_callback,optional"`
	Action          string         `hcl:"action,optional"`
}
