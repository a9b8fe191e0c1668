package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ports"
)

// FanOutRequest describes one multi-agent invocation.
type FanOutRequest struct {
	Prompt string
	// System is prepended to every persona's system prompt when set.
	System   string
	Personas []domain.Persona
	Agents   int
	// MaxParallel bounds concurrent calls; <= 0 means all at once.
	MaxParallel int
}

// FanOut sends the same prompt to req.Agents independent agents. Agent i
// (1-based) answers as persona (i-1) mod len(Personas). Responses are ordered
// by agent; a failed agent keeps its slot with Error set and never cancels
// the others. The call fails only when every agent failed.
func FanOut(ctx context.Context, client ports.LLMClient, req FanOutRequest) ([]domain.AgentResponse, error) {
	if req.Agents < 1 {
		return nil, domain.ValidationError("agents.fanout", "agent count must be >= 1, got %d", req.Agents)
	}

	results := make([]domain.AgentResponse, req.Agents)
	errs := make([]error, req.Agents)

	var g errgroup.Group
	if req.MaxParallel > 0 {
		g.SetLimit(req.MaxParallel)
	}

	for i := 0; i < req.Agents; i++ {
		i := i
		persona := personaFor(req.Personas, i)
		system := joinSystem(req.System, persona.System)

		g.Go(func() error {
			start := time.Now()
			content, err := client.Send(ctx, req.Prompt, system)

			slot := domain.AgentResponse{
				Agent:     i + 1,
				Persona:   persona.Name,
				Content:   content,
				LatencyMS: time.Since(start).Milliseconds(),
			}
			if err != nil {
				slot.Content = ""
				slot.Error = err.Error()
				errs[i] = fmt.Errorf("agent %d: %w", i+1, err)
			}
			results[i] = slot
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed == req.Agents {
		return results, fmt.Errorf("all %d agents failed: %w", req.Agents, errors.Join(errs...))
	}
	return results, nil
}

func personaFor(personas []domain.Persona, i int) domain.Persona {
	if len(personas) == 0 {
		return domain.Persona{}
	}
	return personas[i%len(personas)]
}

func joinSystem(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n")
}
