package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MistByteX/predictor/internal/domain"
)

// --- fakes shared by the usecase tests ---

type fakeTemplates struct {
	templates map[string]domain.Template
}

func (f fakeTemplates) List() ([]domain.TemplateRef, error) { return nil, nil }

func (f fakeTemplates) Get(name string) (domain.Template, error) {
	t, ok := f.templates[name]
	if !ok {
		return domain.Template{}, &domain.OpError{Op: "fake.get", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	}
	return t, nil
}

func (f fakeTemplates) Create(string, string, bool) (string, error) { return "", nil }

type call struct {
	prompt string
	system string
}

// fakeClient answers "reply:<system>" and fails when the system prompt
// contains one of failOn.
type fakeClient struct {
	mu       sync.Mutex
	calls    []call
	failOn   []string
	err      error
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (c *fakeClient) Send(ctx context.Context, prompt, system string) (string, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}

	c.mu.Lock()
	c.calls = append(c.calls, call{prompt: prompt, system: system})
	c.mu.Unlock()

	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if c.err != nil {
		return "", c.err
	}
	for _, f := range c.failOn {
		if strings.Contains(system, f) {
			return "", &domain.APIError{StatusCode: 500, Message: "boom " + f}
		}
	}
	return "reply:" + system, nil
}

func (c *fakeClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type fakeHistory struct {
	records []domain.PredictionRecord
	err     error
}

func (h *fakeHistory) Append(rec domain.PredictionRecord) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	h.records = append(h.records, rec)
	return "rec-1", nil
}

func (h *fakeHistory) List(int) ([]domain.PredictionRecord, error) { return h.records, nil }

func (h *fakeHistory) Get(string) (domain.PredictionRecord, error) {
	return domain.PredictionRecord{}, errors.New("not implemented")
}

type fakePersonas struct {
	personas []domain.Persona
	err      error
}

func (p fakePersonas) LoadPersonas() ([]domain.Persona, error) { return p.personas, p.err }

type fakeInitializer struct {
	spec  domain.HomeSpec
	force bool
	calls int
}

func (f *fakeInitializer) Init(spec domain.HomeSpec, force bool) error {
	f.calls++
	f.spec = spec
	f.force = force
	return nil
}
