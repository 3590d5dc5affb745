// Package guide provides access to embedded help pages used by the CLI's
// built-in documentation system.
package guide

import (
	"embed"
	"runtime"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// installPrefix marks per-OS pages; they are listed once as "install".
const installPrefix = "install-"

// Get returns the content of a guide page by name. If `name` is empty
// the default "guide" page is returned.
//
// "install" returns the page for the running OS.
func Get(name string) (string, error) {
	if name == "" {
		name = "guide"
	}
	if name == "install" {
		name = installPrefix + runtime.GOOS
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List returns the available guide page names (without the .md suffix),
// sorted, with the per-OS install pages folded into "install".
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		switch {
		case name == "guide":
			continue
		case strings.HasPrefix(name, installPrefix):
			name = "install"
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
