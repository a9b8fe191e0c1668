package domain

// Config represents the predictor configuration loaded from config.json.
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	Temperature       float64
	TimeoutSeconds    int
	MaxParallelAgents int
	ResponsePath      string

	Masking MaskingConfig
	Paths   PathsConfig
}

type MaskingConfig struct {
	Enabled bool
}

// PathsConfig holds directories; relative values are resolved against the home dir.
type PathsConfig struct {
	TemplatesDir   string
	PredictionsDir string
	LogsDir        string
}

const (
	DefaultBaseURL      = "https://open.bigmodel.cn/api/paas/v4"
	DefaultModel        = "glm-4-flash"
	DefaultResponsePath = "$.choices[0].message.content"
)

// DefaultConfig provides sane defaults if config.json is partially missing.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Model:             DefaultModel,
		Temperature:       0.7,
		TimeoutSeconds:    120,
		MaxParallelAgents: 4,
		ResponsePath:      DefaultResponsePath,
		Masking:           MaskingConfig{Enabled: true},
		Paths: PathsConfig{
			TemplatesDir:   "templates",
			PredictionsDir: "predictions",
			LogsDir:        "logs",
		},
	}
}

// HomeSpec describes the home directory to initialize.
type HomeSpec struct {
	Root    string
	APIKey  string
	BaseURL string
}
