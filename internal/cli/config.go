package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/infra/config"
)

func configCmd(o *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Show or change config.json",
	}

	c.AddCommand(configShowCmd(o), configSetCmd(o))
	return c
}

type configEntry struct {
	Key   string
	Value string
}

// configEntries lists the effective settings with the API key masked.
func configEntries(cfg domain.Config) []configEntry {
	key := config.MaskKey(cfg.APIKey)
	if key == "" {
		key = "(not set)"
	}
	return []configEntry{
		{"api_key", key},
		{"base_url", cfg.BaseURL},
		{"model", cfg.Model},
		{"temperature", strconv.FormatFloat(cfg.Temperature, 'f', -1, 64)},
		{"timeout_seconds", strconv.Itoa(cfg.TimeoutSeconds)},
		{"max_parallel_agents", strconv.Itoa(cfg.MaxParallelAgents)},
		{"response_path", cfg.ResponsePath},
		{"templates_dir", cfg.Paths.TemplatesDir},
		{"predictions_dir", cfg.Paths.PredictionsDir},
		{"masking", strconv.FormatBool(cfg.Masking.Enabled)},
	}
}

func configShowCmd(o *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (API key masked)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			cfg, err := o.effectiveConfig()
			if err != nil {
				return err
			}
			return printConfig(cmd.OutOrStdout(), filepath.Join(o.root, config.FileName), cfg, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printConfig(w io.Writer, path string, cfg domain.Config, format string) error {
	entries := configEntries(cfg)

	if format == "json" {
		out := make(map[string]string, len(entries))
		for _, e := range entries {
			out[e.Key] = e.Value
		}
		return writeJSON(w, out)
	}

	fmt.Fprintln(w, theme.Subtitle.Render(path))
	for _, e := range entries {
		field(w, e.Key, e.Value)
	}
	return nil
}

func configSetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Update one setting in config.json",
		Long:  "Update one setting in config.json. Keys: " + fmt.Sprint(config.Keys()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(o.root, config.FileName)

			cfg, err := config.Load(path)
			if err != nil && !domain.IsKind(err, domain.KindNotFound) {
				return err
			}

			cfg, err = config.Set(cfg, args[0], args[1])
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}

			value := args[1]
			if args[0] == "api_key" {
				value = config.MaskKey(value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", theme.Success.Render("Updated"), args[0], value)
			return nil
		},
	}
}
