package config

// jsonConfig mirrors config.json. Pointer fields distinguish "unset" from zero.
type jsonConfig struct {
	APIKey            string   `json:"glm_api_key,omitempty"`
	BaseURL           string   `json:"glm_base_url,omitempty"`
	Model             string   `json:"model,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty"`
	TimeoutSeconds    *int     `json:"timeout_seconds,omitempty"`
	MaxParallelAgents *int     `json:"max_parallel_agents,omitempty"`
	ResponsePath      string   `json:"response_path,omitempty"`
	TemplatesDir      string   `json:"templates_dir,omitempty"`
	PredictionsDir    string   `json:"predictions_dir,omitempty"`
	Masking           *bool    `json:"masking,omitempty"`
}
