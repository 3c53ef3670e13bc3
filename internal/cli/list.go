package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/tmpl/internal/templates"
	"github.com/spf13/cobra"
)

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFormat, "format", FormatText, "output format: text, json, or yaml")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available templates",
	Long: `List templates from ./templates, configured directories,
~/.config/tmpl/templates, /usr/share/tmpl/templates, and the built-ins.
When several directories hold a template of the same name the first wins.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := normalizeFormat(listFormat)
		if err != nil {
			return err
		}

		cfg := GetConfig()
		paths := searchPaths(cfg)
		items, err := templates.LoadTemplatesFromSearchPaths(paths, cfg.Templates.Extension)
		if err != nil {
			return err
		}

		workDir, _ := os.Getwd()
		projectDir := ""
		if workDir != "" {
			projectDir = filepath.Join(workDir, "templates")
		}
		userDir := ""
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			userDir = filepath.Join(home, ".config", "tmpl", "templates")
		}

		if format != FormatText {
			views := make([]templateSummary, 0, len(items))
			for _, tmpl := range items {
				views = append(views, templateSummary{
					Name:        tmpl.Name,
					Source:      tmpl.Source,
					Origin:      templateSourceLabel(tmpl.Source, userDir, projectDir),
					Description: tmpl.Header.Description,
				})
			}
			return WriteOutput(cmd.OutOrStdout(), format, views)
		}

		rows := make([][]string, 0, len(items))
		for _, tmpl := range items {
			rows = append(rows, []string{
				tmpl.Name,
				templateSourceLabel(tmpl.Source, userDir, projectDir),
				tmpl.Header.Description,
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"NAME", "SOURCE", "DESCRIPTION"}, rows)
	},
}

type templateSummary struct {
	Name        string `json:"name" yaml:"name"`
	Source      string `json:"source" yaml:"source"`
	Origin      string `json:"origin" yaml:"origin"`
	Description string `json:"description" yaml:"description"`
}

func templateSourceLabel(source, userDir, projectDir string) string {
	if source == "builtin" {
		return "builtin"
	}
	if projectDir != "" && isWithin(source, projectDir) {
		return "project"
	}
	if userDir != "" && isWithin(source, userDir) {
		return "user"
	}
	return "file"
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
