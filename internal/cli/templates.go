package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/app/template"
	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ui/tui"
)

func listTemplatesCmd(o *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "list-templates",
		Short: "List prompt templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			h, err := o.loadHome()
			if err != nil {
				return err
			}

			refs, err := h.templates.List()
			if err != nil && !domain.IsKind(err, domain.KindNotFound) {
				return err
			}

			w := cmd.OutOrStdout()
			if format == "json" {
				if refs == nil {
					refs = []domain.TemplateRef{}
				}
				return writeJSON(w, refs)
			}

			if len(refs) == 0 {
				fmt.Fprintf(w, "(no templates found in %s; run `predictor init`)\n", h.templates.Dir())
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(theme.Help).
				Headers("NAME", "DESCRIPTION")
			for _, r := range refs {
				t.Row(r.Name, tui.Clamp(r.Description, 60))
			}
			fmt.Fprintln(w, theme.Subtitle.Render("Templates in "+h.templates.Dir()))
			fmt.Fprintln(w, t.Render())
			return nil
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

type variableJSON struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

type templateJSON struct {
	Name         string         `json:"name"`
	Path         string         `json:"path"`
	Description  string         `json:"description,omitempty"`
	System       string         `json:"system,omitempty"`
	Variables    []variableJSON `json:"variables"`
	Placeholders []string       `json:"placeholders"`
	Body         string         `json:"body"`
}

func templateCmd(o *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "template <name>",
		Short: "Show a template and its placeholders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			h, err := o.loadHome()
			if err != nil {
				return err
			}

			tpl, err := h.templates.Get(args[0])
			if err != nil {
				return err
			}
			return printTemplate(cmd.OutOrStdout(), tpl, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printTemplate(w io.Writer, tpl domain.Template, format string) error {
	placeholders := template.Placeholders(tpl.Body)

	if format == "json" {
		vars := make([]variableJSON, 0, len(tpl.Variables))
		for _, v := range tpl.Variables {
			vars = append(vars, variableJSON(v))
		}
		if placeholders == nil {
			placeholders = []string{}
		}
		return writeJSON(w, templateJSON{
			Name:         tpl.Name,
			Path:         tpl.Path,
			Description:  tpl.Description,
			System:       tpl.System,
			Variables:    vars,
			Placeholders: placeholders,
			Body:         tpl.Body,
		})
	}

	fmt.Fprintln(w, theme.Title.Render(tpl.Name))
	field(w, "Path", tpl.Path)
	if tpl.Description != "" {
		field(w, "About", tpl.Description)
	}
	if tpl.System != "" {
		field(w, "System", tui.Clamp(tpl.System, 80))
	}
	if len(placeholders) > 0 {
		field(w, "Variables", strings.Join(placeholders, ", "))
	}
	for _, v := range tpl.Variables {
		line := "  - " + v.Name
		if v.Required {
			line += " (required)"
		}
		if v.Default != "" {
			line += " [default: " + v.Default + "]"
		}
		if v.Description != "" {
			line += ": " + v.Description
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimRight(tpl.Body, "\n"))
	return nil
}

func createTemplateCmd(o *rootOptions) *cobra.Command {
	var file string
	var force bool

	c := &cobra.Command{
		Use:   "create-template <name>",
		Short: "Add a template from a Markdown file (use -f - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readSource(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			h, err := o.loadHome()
			if err != nil {
				return err
			}

			path, err := h.templates.Create(args[0], content, force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", theme.Success.Render("Created template"), args[0], path)
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "Markdown file with the template (required)")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing template")
	_ = c.MarkFlagRequired("file")
	return c
}

func readSource(stdin io.Reader, file string) (string, error) {
	if file == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return "", &domain.OpError{
			Op:   "cli.read_template",
			Kind: kind,
			Path: file,
			Err:  err,
		}
	}
	return string(b), nil
}
