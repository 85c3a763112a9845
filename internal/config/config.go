package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Prompts override the built-in LLM prompts. Empty fields keep the default.
// Prompts name their inputs with {{placeholder}} markers; see the owning
// package's default prompt for the names it fills in.
type Prompts struct {
	Year    string `toml:"year"`
	Theme   string `toml:"theme"`
	Tags    string `toml:"tags"`
	Summary string `toml:"summary"`
	Profile string `toml:"profile"`
}

type LLMConfig struct {
	Provider       string   `toml:"provider"`
	Model          string   `toml:"model"`
	YearModel      string   `toml:"year_model"`
	EmbeddingModel string   `toml:"embedding_model"`
	APIKey         string   `toml:"api_key"`
	BaseURL        string   `toml:"base_url"`
	Timeout        Duration `toml:"timeout"`
}

type ServerConfig struct {
	Port        string   `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

type StorageConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// BackfillConfig controls year backfilling of memories stored without a year.
type BackfillConfig struct {
	BirthYear int      `toml:"birth_year"`
	Delay     Duration `toml:"delay"`
	Schedule  string   `toml:"schedule"`
	LLMOnly   bool     `toml:"llm_only"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Prompts  Prompts        `toml:"prompts"`
	Backfill BackfillConfig `toml:"backfill"`
	Log      LogConfig      `toml:"log"`
}

// Default returns the configuration used when no file is present: a local
// Ollama, a memories.json next to the binary and a 500ms backfill spacing.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "3001",
			CORSOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			Provider:       "ollama",
			Model:          "mistral",
			YearModel:      "llama3.1:8b",
			EmbeddingModel: "nomic-embed-text",
			BaseURL:        "http://localhost:11434",
			Timeout:        Duration(120 * time.Second),
		},
		Storage: StorageConfig{
			Driver: "json",
			Path:   "memories.json",
		},
		Memgraph: MemgraphConfig{
			URI: "bolt://localhost:7687",
		},
		Backfill: BackfillConfig{
			BirthYear: 1976,
			Delay:     Duration(500 * time.Millisecond),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when the file
// does not exist. Parse errors are still reported.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file settings with environment variables when set.
func (c *Config) ApplyEnv() {
	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.Model, "LLM_MODEL")
	setString(&c.LLM.YearModel, "LLM_YEAR_MODEL")
	setString(&c.LLM.EmbeddingModel, "LLM_EMBEDDING_MODEL")
	setString(&c.LLM.APIKey, "LLM_API_KEY")
	setString(&c.LLM.BaseURL, "LLM_BASE_URL")
	setString(&c.Server.Port, "PORT")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.Path, "MEMORIES_FILE")
	setString(&c.Memgraph.URI, "MEMGRAPH_URI")
	setString(&c.Memgraph.User, "MEMGRAPH_USER")
	setString(&c.Memgraph.Password, "MEMGRAPH_PASSWORD")
	setString(&c.Log.Level, "LOG_LEVEL")

	if v := strings.TrimSpace(os.Getenv("USER_BIRTH_YEAR")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			c.Backfill.BirthYear = y
		}
	}
	if v := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Duration is a time.Duration written as a Go duration string ("500ms").
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}
