package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	OutputFile string  `toml:"output_file"`
	Exclude    Exclude `toml:"exclude"`
	Watch      Watch   `toml:"watch"`
	History    History `toml:"history"`
	Server     Server  `toml:"server"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`  // extra directory basename patterns, added to the defaults
	Files []string `toml:"files"` // file basename patterns skipped entirely
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type History struct {
	Path string `toml:"path"` // "" disables run history
}

type Server struct {
	Addr              string  `toml:"addr"`
	OllamaHost        string  `toml:"ollama_host"`
	OllamaModel       string  `toml:"ollama_model"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputFile == "" {
		c.OutputFile = "README.md"
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.OllamaHost == "" {
		c.Server.OllamaHost = "http://localhost:11434"
	}
	if c.Server.OllamaModel == "" {
		c.Server.OllamaModel = "llama3"
	}
	if c.Server.RequestsPerSecond == 0 {
		c.Server.RequestsPerSecond = 5
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = 10
	}
}
