package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/infra/fsworkspace"
	"github.com/MistByteX/predictor/internal/infra/homefinder"
	"github.com/MistByteX/predictor/internal/infra/logger"
	"github.com/MistByteX/predictor/internal/ui/tui"
	"github.com/MistByteX/predictor/internal/usecase"
)

func initCmd(o *rootOptions) *cobra.Command {
	var baseURL string
	var force bool
	var noInput bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create the predictor home (config, templates, agents)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key := strings.TrimSpace(o.apiKey)

			if key == "" && !noInput && o.interactive() {
				existing, err := o.effectiveConfig()
				if err != nil && !force {
					return err
				}
				if existing.APIKey == "" {
					k, err := o.prompt(cmd.Context(), o.root, cmd.InOrStdin(), cmd.OutOrStdout())
					switch {
					case errors.Is(err, tui.ErrPromptCancelled):
						logger.L().Info("init.prompt_skipped")
					case err != nil:
						return err
					default:
						key = k
					}
				}
			}

			uc := usecase.NewInitHome(fsworkspace.NewInitializer())
			spec := domain.HomeSpec{Root: o.root, APIKey: key, BaseURL: baseURL}
			if err := uc.Execute(spec, force); err != nil {
				return err
			}

			cfg, err := o.effectiveConfig()
			if err != nil {
				return err
			}
			layout := homefinder.LayoutFor(o.root, cfg)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", theme.Success.Render("Initialized predictor home at"), layout.Root)
			field(w, "config", layout.ConfigFile)
			field(w, "agents", layout.AgentsFile)
			field(w, "templates", layout.TemplatesDir)
			field(w, "history", layout.PredictionsDir)
			field(w, "logs", layout.LogsDir)

			if cfg.APIKey == "" {
				warn(cmd.ErrOrStderr(), "no API key configured; run `predictor config set api_key <key>` or set PREDICTOR_API_KEY")
			}
			return nil
		},
	}

	c.Flags().StringVar(&baseURL, "base-url", "", "GLM API base URL")
	c.Flags().BoolVar(&force, "force", false, "Reset config to defaults (keeping the key) and overwrite seed files")
	c.Flags().BoolVar(&noInput, "no-input", false, "Never prompt for the API key")
	return c
}
