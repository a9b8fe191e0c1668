package cli

import (
	"path/filepath"
	"strings"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/infra/config"
	"github.com/MistByteX/predictor/internal/infra/glm"
	"github.com/MistByteX/predictor/internal/infra/historystore"
	"github.com/MistByteX/predictor/internal/infra/homefinder"
	"github.com/MistByteX/predictor/internal/infra/logger"
	"github.com/MistByteX/predictor/internal/infra/mdtemplate"
	"github.com/MistByteX/predictor/internal/infra/yamlagents"
	"github.com/MistByteX/predictor/internal/usecase"
)

type homeCtx struct {
	layout homefinder.Layout
	cfg    domain.Config

	templates *mdtemplate.Store
	history   *historystore.JSONStore
	personas  *yamlagents.Loader
}

// effectiveConfig is config.json (or defaults when it does not exist yet)
// with environment and --api-key overrides applied. It is not validated.
func (o *rootOptions) effectiveConfig() (domain.Config, error) {
	cfg, err := config.Load(filepath.Join(o.root, config.FileName))
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return cfg, err
	}

	cfg = config.ApplyEnv(cfg, o.getenv)
	if k := strings.TrimSpace(o.apiKey); k != "" {
		cfg.APIKey = k
	}
	return cfg, nil
}

func (o *rootOptions) loadHome() (*homeCtx, error) {
	cfg, err := o.effectiveConfig()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	layout := homefinder.LayoutFor(o.root, cfg)
	return &homeCtx{
		layout:    layout,
		cfg:       cfg,
		templates: mdtemplate.NewStore(layout.TemplatesDir),
		history:   historystore.NewJSONStore(layout.PredictionsDir, cfg, historystore.WithLogger(logger.L())),
		personas:  yamlagents.NewLoader(layout.AgentsFile),
	}, nil
}

// predictor wires the prediction use case. It fails early without an API key.
func (h *homeCtx) predictor() (*usecase.Predict, error) {
	if err := config.RequireAPIKey(h.cfg); err != nil {
		return nil, err
	}

	client := glm.New(h.cfg, glm.WithLogger(logger.L()))
	return usecase.NewPredict(h.templates, client, h.history, h.personas,
		usecase.WithModel(client.Model()),
		usecase.WithMaxParallel(h.cfg.MaxParallelAgents),
		usecase.WithLogger(logger.L()),
	), nil
}
