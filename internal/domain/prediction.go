package domain

import "time"

// PredictionKind tells which command produced a record.
type PredictionKind string

const (
	KindAsk     PredictionKind = "ask"
	KindPredict PredictionKind = "predict"
)

// DivinationSnapshot is the textual trace of a divination kept with a record.
type DivinationSnapshot struct {
	Method       string `json:"method"`
	Seed         [3]int `json:"seed"`
	Primary      string `json:"primary"`
	Transformed  string `json:"transformed"`
	ChangingLine int    `json:"changing_line"`
	Description  string `json:"description"`
}

// AgentResponse is one agent's answer. Error is set when that agent failed.
type AgentResponse struct {
	Agent     int    `json:"agent"`
	Persona   string `json:"persona,omitempty"`
	Content   string `json:"content"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

// Failed reports whether the agent produced no answer.
func (a AgentResponse) Failed() bool {
	return a.Error != ""
}

// PredictionRecord is one prediction transcript. It is never mutated once stored.
type PredictionRecord struct {
	ID          string              `json:"id"`
	Kind        PredictionKind      `json:"kind"`
	Template    string              `json:"template"`
	Description string              `json:"description"`
	Variables   Vars                `json:"variables"`
	Prompt      string              `json:"prompt"`
	System      string              `json:"system,omitempty"`
	Model       string              `json:"model"`
	Divination  *DivinationSnapshot `json:"divination,omitempty"`
	Responses   []AgentResponse     `json:"responses"`
	CreatedAt   time.Time           `json:"created_at"`
}

// FirstAnswer returns the first successful response content.
func (r PredictionRecord) FirstAnswer() string {
	for _, a := range r.Responses {
		if !a.Failed() {
			return a.Content
		}
	}
	return ""
}

// HistoryRef is an index entry pointing at a stored record.
type HistoryRef struct {
	ID          string         `json:"id"`
	File        string         `json:"file"`
	Kind        PredictionKind `json:"kind"`
	Template    string         `json:"template"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}
