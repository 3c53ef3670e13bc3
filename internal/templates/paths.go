package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TemplateSearchPaths returns template search directories in precedence order:
// the working directory's templates/, any extra directories, the user config
// directory, then the system-wide directory.
func TemplateSearchPaths(workDir string, extra []string) []string {
	paths := make([]string, 0, 3+len(extra))
	if workDir != "" {
		paths = append(paths, filepath.Join(workDir, "templates"))
	}

	for _, dir := range extra {
		if dir = strings.TrimSpace(dir); dir != "" {
			paths = append(paths, dir)
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "tmpl", "templates"))
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "tmpl", "templates"))
	return paths
}

// FindTemplate resolves a template by name. Names that look like paths are
// loaded directly; otherwise the search paths are tried in order, then the
// built-in templates.
func FindTemplate(name string, paths []string, ext string) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNoTemplate
	}
	if ext == "" {
		ext = DefaultExtension
	}

	if looksLikePath(name, ext) {
		return LoadTemplate(name)
	}

	for _, dir := range paths {
		path := filepath.Join(dir, name+ext)
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat template %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return LoadTemplate(path)
	}

	tmpl, err := LoadBuiltinTemplate(name)
	if err != nil {
		return nil, err
	}
	if tmpl != nil {
		return tmpl, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// LoadTemplatesFromSearchPaths loads templates from search paths with first-hit precedence.
func LoadTemplatesFromSearchPaths(paths []string, ext string) ([]*Template, error) {
	seen := make(map[string]*Template)
	order := make([]string, 0)

	for _, path := range paths {
		templates, err := LoadTemplatesFromDir(path, ext)
		if err != nil {
			return nil, err
		}
		for _, tmpl := range templates {
			if _, exists := seen[tmpl.Name]; exists {
				continue
			}
			seen[tmpl.Name] = tmpl
			order = append(order, tmpl.Name)
		}
	}

	builtins, err := LoadBuiltinTemplates()
	if err != nil {
		return nil, err
	}
	for _, tmpl := range builtins {
		if _, exists := seen[tmpl.Name]; exists {
			continue
		}
		seen[tmpl.Name] = tmpl
		order = append(order, tmpl.Name)
	}

	resolved := make([]*Template, 0, len(order))
	for _, name := range order {
		resolved = append(resolved, seen[name])
	}

	return resolved, nil
}

func looksLikePath(name, ext string) bool {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext))
}
