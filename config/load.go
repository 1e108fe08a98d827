package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/mwantia/dispatch/log"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var (
	ErrNoFiles        = errors.New("config: no command files found")
	ErrUnknownHandler = errors.New("config: unknown handler")
)

// Parse decodes a single command file held in memory.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	file := &File{}
	if err := file.decode(hclFile, filename); err != nil {
		return nil, err
	}
	return file, nil
}

// Load decodes every given file, or every .hcl file below a given directory,
// and merges them in order. A later log block replaces an earlier one.
func Load(paths ...string) (*File, error) {
	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	parser := hclparse.NewParser()
	merged := &File{}

	for _, path := range files {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		if err := merged.decode(hclFile, path); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (f *File) decode(hclFile *hcl.File, filename string) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	if root.Log != nil {
		if root.Log.Level != "" {
			if _, err := log.Parse(root.Log.Level); err != nil {
				return fmt.Errorf("%s: %w", filename, err)
			}
		}
		f.Log = &Log{
			Level:    root.Log.Level,
			File:     root.Log.File,
			JSON:     root.Log.JSON,
			Terminal: root.Log.Terminal,
		}
	}

	for _, block := range root.Commands {
		cmd, err := translateCommand(block)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		f.Commands = append(f.Commands, cmd)
	}
	return nil
}

func translateCommand(block *commandBlock) (*Command, error) {
	args, err := stringList(block.Args)
	if err != nil {
		return nil, fmt.Errorf("command %q: args: %w", block.Name, err)
	}
	options, err := stringList(block.Options)
	if err != nil {
		return nil, fmt.Errorf("command %q: options: %w", block.Name, err)
	}

	return &Command{
		Name:            block.Name,
		Description:     block.Description,
		Aliases:         block.Aliases,
		Match:           block.Match,
		Args:            args,
		ArgsCallback:    block.ArgsCallback,
		Options:         options,
		OptionsCallback: block.OptionsCallback,
		Action:          block.Action,
	}, nil
}

// stringList accepts either a single string or a list of strings.
func stringList(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if val.Type() == cty.String {
		return []string{val.AsString()}, nil
	}

	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("expected a string or a list of strings: %w", err)
	}

	out := make([]string, 0, list.LengthInt())
	for _, v := range list.AsValueSlice() {
		if v.IsNull() {
			return nil, errors.New("list contains null")
		}
		out = append(out, v.AsString())
	}
	return out, nil
}

func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		slices.Sort(found)
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}
