package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.template
var builtinFS embed.FS

// LoadBuiltinTemplates returns the built-in templates bundled with tmpl.
func LoadBuiltinTemplates() ([]*Template, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin templates: %w", err)
	}

	templates := make([]*Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != DefaultExtension {
			continue
		}
		tmpl, err := loadBuiltin(entry.Name())
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

// LoadBuiltinTemplate returns the named built-in template, or nil if there is
// no built-in with that name.
func LoadBuiltinTemplate(name string) (*Template, error) {
	if strings.ContainsAny(name, `/\`) {
		return nil, nil
	}
	tmpl, err := loadBuiltin(name + DefaultExtension)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return tmpl, err
}

func loadBuiltin(file string) (*Template, error) {
	data, err := builtinFS.ReadFile("builtin/" + file)
	if err != nil {
		return nil, err
	}
	tmpl, err := Parse(strings.TrimSuffix(file, DefaultExtension), string(data))
	if err != nil {
		return nil, fmt.Errorf("parse builtin template %s: %w", file, err)
	}
	tmpl.Source = "builtin"
	return tmpl, nil
}
