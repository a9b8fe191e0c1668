package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/MistByteX/predictor/internal/app/template"
	"github.com/MistByteX/predictor/internal/divination"
	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ports"
)

// PredictRequest is one ask/predict invocation.
type PredictRequest struct {
	Kind        domain.PredictionKind
	Template    string
	Description string
	Variables   domain.Vars
	// System overrides the template's system prompt when set.
	System string
	// Divination, when set, is appended to the prompt and kept in the record.
	Divination *divination.Reading
	Agents     int
	Strict     bool
}

// PredictOutcome carries the stored record. HistoryErr is set when the
// record could not be written; the prediction itself still succeeded.
type PredictOutcome struct {
	Record     domain.PredictionRecord
	HistoryErr error
}

type Predict struct {
	templates   ports.TemplateStore
	client      ports.LLMClient
	history     ports.HistoryStore
	personas    ports.PersonaLoader
	model       string
	maxParallel int
	logger      *slog.Logger
	now         func() time.Time
}

type PredictOption func(*Predict)

func WithModel(model string) PredictOption {
	return func(uc *Predict) { uc.model = model }
}

func WithMaxParallel(n int) PredictOption {
	return func(uc *Predict) { uc.maxParallel = n }
}

func WithLogger(l *slog.Logger) PredictOption {
	return func(uc *Predict) {
		if l != nil {
			uc.logger = l
		}
	}
}

func WithClock(now func() time.Time) PredictOption {
	return func(uc *Predict) { uc.now = now }
}

// NewPredict wires the prediction flow. history and personas may be nil.
func NewPredict(ts ports.TemplateStore, client ports.LLMClient, hs ports.HistoryStore, pl ports.PersonaLoader, opts ...PredictOption) *Predict {
	uc := &Predict{
		templates: ts,
		client:    client,
		history:   hs,
		personas:  pl,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute fills the template, calls the model (once or fanned out) and stores
// the transcript. Nothing is sent when the prompt cannot be built.
func (uc *Predict) Execute(ctx context.Context, req PredictRequest) (PredictOutcome, error) {
	if err := ctx.Err(); err != nil {
		return PredictOutcome{}, err
	}

	tpl, err := uc.loadTemplate(req.Template)
	if err != nil {
		return PredictOutcome{}, err
	}

	divText := ""
	var snapshot *domain.DivinationSnapshot
	if req.Divination != nil {
		divText = req.Divination.Describe()
		snapshot = req.Divination.Snapshot()
	}

	vars := domain.Merge(nil, req.Variables)
	prompt, err := template.Fill(tpl, vars, divText, template.Options{Strict: req.Strict})
	if err != nil {
		return PredictOutcome{}, err
	}

	system := strings.TrimSpace(req.System)
	if system == "" {
		system = tpl.System
	}

	agents := req.Agents
	if agents < 1 {
		agents = 1
	}

	uc.logger.Info("prediction.start", "kind", req.Kind, "template", tpl.Name, "agents", agents, "divination", snapshot != nil)

	responses, err := uc.send(ctx, prompt, system, agents)
	if err != nil {
		uc.logger.Error("prediction.failed", "template", tpl.Name, "error", err)
		return PredictOutcome{}, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = tpl.Description
	}

	rec := domain.PredictionRecord{
		Kind:        req.Kind,
		Template:    tpl.Name,
		Description: description,
		Variables:   vars,
		Prompt:      prompt,
		System:      system,
		Model:       uc.model,
		Divination:  snapshot,
		Responses:   responses,
		CreatedAt:   uc.now(),
	}

	out := PredictOutcome{Record: rec}
	if uc.history != nil {
		id, herr := uc.history.Append(rec)
		if herr != nil {
			uc.logger.Warn("history.write_failed", "error", herr)
			out.HistoryErr = herr
		} else {
			out.Record.ID = id
		}
	}

	uc.logger.Info("prediction.done", "template", tpl.Name, "id", out.Record.ID)
	return out, nil
}

func (uc *Predict) loadTemplate(name string) (domain.Template, error) {
	tpl, err := uc.templates.Get(name)
	if err == nil {
		return tpl, nil
	}
	if name == AskTemplate && domain.IsKind(err, domain.KindNotFound) {
		return builtinAsk, nil
	}
	return domain.Template{}, err
}

func (uc *Predict) send(ctx context.Context, prompt, system string, agents int) ([]domain.AgentResponse, error) {
	if agents == 1 {
		start := time.Now()
		content, err := uc.client.Send(ctx, prompt, system)
		if err != nil {
			return nil, err
		}
		return []domain.AgentResponse{{
			Agent:     1,
			Content:   content,
			LatencyMS: time.Since(start).Milliseconds(),
		}}, nil
	}

	var personas []domain.Persona
	if uc.personas != nil {
		p, err := uc.personas.LoadPersonas()
		if err != nil {
			return nil, err
		}
		personas = p
	}

	return FanOut(ctx, uc.client, FanOutRequest{
		Prompt:      prompt,
		System:      system,
		Personas:    personas,
		Agents:      agents,
		MaxParallel: uc.maxParallel,
	})
}
