package config

import "time"

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Storage StorageConfig
	Reading ReadingConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

// LLMConfig points at the chat-completions backend used for narrative
// text. An empty APIKey is allowed: the service then runs template-only,
// since every narrative has a local fallback anyway.
type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type StorageConfig struct {
	DataDir string
}

type ReadingConfig struct {
	// NarrativeTimeout bounds each model call before the template
	// fallback kicks in. Parsed as a time.Duration string.
	NarrativeTimeout string
	// RetentionDays is how long saved readings are kept; 0 keeps them
	// forever.
	RetentionDays int
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4700,
		},
		LLM: LLMConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Reading: ReadingConfig{
			NarrativeTimeout: "15s",
			RetentionDays:    30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/arcana/config.json, then applies ARCANA_* environment
// overrides. Environment always wins.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b ConfigBackend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

// NarrativeTimeout parses the configured narrative timeout, falling back
// to 15s on a malformed value.
func (c Config) NarrativeTimeout() time.Duration {
	d, err := time.ParseDuration(c.Reading.NarrativeTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// RetentionMaxAge converts the retention setting to a duration; zero
// disables retention sweeping.
func (c Config) RetentionMaxAge() time.Duration {
	if c.Reading.RetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.Reading.RetentionDays) * 24 * time.Hour
}
