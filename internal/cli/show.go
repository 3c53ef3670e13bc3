package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/opencode-ai/tmpl/internal/styles"
	"github.com/opencode-ai/tmpl/internal/templates"
	"github.com/spf13/cobra"
)

var showFormat string

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showFormat, "format", FormatText, "output format: text, json, or yaml")
}

var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Show a template's description and parameters",
	Example: `  tmpl show greeting
  tmpl show greeting --format json`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return templates.ErrNoTemplate
		}
		if len(args) > 1 {
			return fmt.Errorf("%w: show takes a single template", templates.ErrInvalidArgument)
		}
		format, err := normalizeFormat(showFormat)
		if err != nil {
			return err
		}

		tmpl, err := findTemplate(args[0])
		if err != nil {
			return err
		}

		if format != FormatText {
			return WriteOutput(cmd.OutOrStdout(), format, newHeaderView(tmpl))
		}

		st := styles.Plain()
		if useColor() {
			st = styles.ForTheme(GetConfig().UI.Theme)
		}
		return writeHeaderText(cmd.OutOrStdout(), args[0], tmpl.Header, st)
	},
}

type headerView struct {
	Name        string          `json:"name" yaml:"name"`
	Source      string          `json:"source" yaml:"source"`
	Description string          `json:"description" yaml:"description"`
	Parameters  []parameterView `json:"parameters" yaml:"parameters"`
}

type parameterView struct {
	Name    string    `json:"name" yaml:"name"`
	Kind    string    `json:"kind" yaml:"kind"`
	Default *string   `json:"default,omitempty" yaml:"default,omitempty"`
	Options *[]string `json:"options,omitempty" yaml:"options,omitempty"`
	Comment *string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func newHeaderView(tmpl *templates.Template) headerView {
	view := headerView{
		Name:        tmpl.Name,
		Source:      tmpl.Source,
		Description: tmpl.Header.Description,
		Parameters:  make([]parameterView, 0, len(tmpl.Header.Parameters)),
	}
	for _, name := range tmpl.Header.Names() {
		param, _ := tmpl.Header.Lookup(name)
		pv := parameterView{
			Name:    name,
			Kind:    string(param.Kind),
			Comment: param.Comment,
		}
		if param.Kind == templates.KindChoice {
			options := append([]string{}, param.Options...)
			pv.Options = &options
		} else {
			def := param.Default
			pv.Default = &def
		}
		view.Parameters = append(view.Parameters, pv)
	}
	return view
}

// writeHeaderText prints the template help: the description, then each
// parameter with its default or numbered options and, when present, its
// comment on the following line.
func writeHeaderText(out io.Writer, name string, header *templates.Header, st styles.Styles) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", st.Title.Render(name), header.Description)
	b.WriteString("Parameters:\n")

	for _, paramName := range header.Names() {
		param, _ := header.Lookup(paramName)
		fmt.Fprintf(&b, "\t%s:", st.Name.Render(paramName))
		if param.Kind == templates.KindChoice {
			b.WriteString(" {")
			for i, option := range param.Options {
				fmt.Fprintf(&b, " %s: \"%s\"", st.Accent.Render(fmt.Sprint(i)), option)
				if i < len(param.Options)-1 {
					b.WriteString(",")
				}
			}
			b.WriteString(" }\n")
		} else {
			fmt.Fprintf(&b, " %s\n", param.Default)
		}
		if param.Comment != nil {
			fmt.Fprintf(&b, "\t\t%s\n", st.Muted.Render(*param.Comment))
		}
	}

	_, err := io.WriteString(out, b.String())
	return err
}
