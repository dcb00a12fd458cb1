package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cdpbot/internal/domain"
)

// Environment variables that override file configuration.
const (
	EnvSource   = "CDPBOT_SOURCE"
	EnvDocsDir  = "CDPBOT_DOCS_DIR"
	EnvLogLevel = "CDPBOT_LOG_LEVEL"
)

// PlatformConfig names a platform and where its documentation lives.
type PlatformConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FileSourceConfig configures the local directory source.
type FileSourceConfig struct {
	Dir string `yaml:"dir"`
}

// WebSourceConfig configures the single-page HTTP source.
type WebSourceConfig struct {
	TimeoutSecs int `yaml:"timeout_secs"`
}

// SourceConfig selects and configures the documentation source.
type SourceConfig struct {
	Type string            `yaml:"type"`
	File *FileSourceConfig `yaml:"file,omitempty"`
	Web  *WebSourceConfig  `yaml:"web,omitempty"`
}

// ChunkerConfig configures how fetched documents are split into fragments.
type ChunkerConfig struct {
	Type              string `yaml:"type"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences"`
}

// RetrievalConfig configures ranking.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Platforms []PlatformConfig `yaml:"platforms"`
	Source    SourceConfig     `yaml:"source"`
	Chunker   ChunkerConfig    `yaml:"chunker"`
	Retrieval RetrievalConfig  `yaml:"retrieval"`
	Log       LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/cdpbot/config.yaml.
// If neither exists, it writes defaults to ~/.config/cdpbot/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvSource); v != "" {
		c.Source.Type = v
	}
	if v := getenv(EnvDocsDir); v != "" {
		if c.Source.File == nil {
			c.Source.File = &FileSourceConfig{}
		}
		c.Source.File.Dir = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	applyConfigDefaults(c)
}

// ApplyDefaults fills unset fields, including the sub-config of the selected source.
func (c *AppConfig) ApplyDefaults() { applyConfigDefaults(c) }

// Validate checks that every configured platform is a supported one.
func (c *AppConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Platforms))
	for _, p := range c.Platforms {
		if _, ok := domain.ParsePlatform(p.Name); !ok {
			return fmt.Errorf("unsupported platform %q", p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate platform %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// PlatformSources returns the configured platforms in canonical order.
func (c *AppConfig) PlatformSources() []domain.PlatformSource {
	urls := make(map[string]string, len(c.Platforms))
	for _, p := range c.Platforms {
		urls[p.Name] = p.URL
	}
	var out []domain.PlatformSource
	for _, p := range domain.Platforms() {
		if u, ok := urls[string(p)]; ok {
			out = append(out, domain.PlatformSource{Platform: p, URL: u})
		}
	}
	return out
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cdpbot", "config.yaml"), nil
}

func defaultPlatforms() []PlatformConfig {
	return []PlatformConfig{
		{Name: "segment", URL: "https://segment.com/docs/?ref=nav"},
		{Name: "mparticle", URL: "https://docs.mparticle.com/"},
		{Name: "lytics", URL: "https://docs.lytics.com/"},
		{Name: "zeotap", URL: "https://docs.zeotap.com/home/en-us/"},
	}
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Platforms: defaultPlatforms(),
		Source:    SourceConfig{Type: "stub"},
		Chunker:   ChunkerConfig{Type: "sentence", SentencesPerChunk: 5, OverlapSentences: 1},
		Retrieval: RetrievalConfig{TopK: 3},
		Log:       LogConfig{Level: "warn"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = defaultPlatforms()
	}
	if cfg.Source.Type == "" {
		cfg.Source.Type = "stub"
	}
	if cfg.Source.Type == "file" {
		if cfg.Source.File == nil {
			cfg.Source.File = &FileSourceConfig{}
		}
		if cfg.Source.File.Dir == "" {
			cfg.Source.File.Dir = "docs"
		}
	}
	if cfg.Source.Type == "web" {
		if cfg.Source.Web == nil {
			cfg.Source.Web = &WebSourceConfig{}
		}
		if cfg.Source.Web.TimeoutSecs == 0 {
			cfg.Source.Web.TimeoutSecs = 10
		}
	}
	if cfg.Chunker.SentencesPerChunk == 0 {
		cfg.Chunker.SentencesPerChunk = 5
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}
