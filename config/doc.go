// Package config declares commands from HCL files. Each "command" block maps
// onto one Registry.Command call; actions and callbacks are referenced by name
// and resolved against the Handlers passed to Apply.
package config
