package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	ModeLoop = "loop"
	ModeOnce = "once"
)

type Config struct {
	Mode           string `env:"POKEFRAME_MODE" envDefault:"loop"`
	VisionBackend  string `env:"VISION_BACKEND" envDefault:"openai"`
	OpenAIURL      string `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	OpenAIModel    string `env:"OPENAI_MODEL" envDefault:"gpt-4-turbo"`
	ClaudeModel    string `env:"CLAUDE_MODEL" envDefault:"claude-3-5-sonnet-latest"`
	OllamaHost     string `env:"OLLAMA_HOST" envDefault:"http://localhost:11434"`
	OllamaModel    string `env:"OLLAMA_MODEL" envDefault:"llava"`
	MaxTokens      int    `env:"MAX_TOKENS" envDefault:"300"`
	PublicDir      string `env:"PUBLIC_DIR" envDefault:"public"`
	OutputFile     string `env:"OUTPUT_FILE" envDefault:"public/data.js"`
	CameraSource   string `env:"CAMERA_SOURCE" envDefault:"camera.jpg"`
	CaptureQuality int    `env:"CAPTURE_QUALITY" envDefault:"50"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`
	LogFile        string `env:"LOG_FILE"`
}

// Load reads the configuration from the process environment. API credentials
// are not part of it; the vision backends look them up per request.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeLoop, ModeOnce:
	default:
		return fmt.Errorf("invalid POKEFRAME_MODE %q: want %q or %q", c.Mode, ModeLoop, ModeOnce)
	}
	switch c.VisionBackend {
	case "openai", "claude", "ollama":
	default:
		return fmt.Errorf("invalid VISION_BACKEND %q", c.VisionBackend)
	}
	if c.CaptureQuality < 1 || c.CaptureQuality > 100 {
		return fmt.Errorf("invalid CAPTURE_QUALITY %d: must be between 1 and 100", c.CaptureQuality)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("invalid MAX_TOKENS %d", c.MaxTokens)
	}
	return nil
}
