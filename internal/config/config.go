// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-structurer/internal/llm"
	"github.com/jonathan/resume-structurer/internal/parsing"
)

// Parser profiles
const (
	ProfileBasic = "basic"
	ProfileDocx  = "docx"
)

// Server defaults
const (
	DefaultPort           = 8080
	DefaultMaxUploadBytes = 10 << 20
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or come from flags and environment.
type Config struct {
	Parser ParserConfig `json:"parser" yaml:"parser"`
	Server ServerConfig `json:"server" yaml:"server"`
	LLM    *llm.Config  `json:"llm,omitempty" yaml:"llm,omitempty"`
}

// ParserConfig overrides parts of a parser profile. Unset fields keep the profile's values.
type ParserConfig struct {
	Profile              string            `json:"profile,omitempty" yaml:"profile,omitempty"` // basic or docx
	Keywords             parsing.Keywords  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Defaults             parsing.Defaults  `json:"defaults,omitempty" yaml:"defaults,omitempty"`
	EmptySections        string            `json:"empty_sections,omitempty" yaml:"empty_sections,omitempty"`
	MaxKeywordLineLength *int              `json:"max_keyword_line_length,omitempty" yaml:"max_keyword_line_length,omitempty"`
	LocationFromPhone    *bool             `json:"location_from_phone,omitempty" yaml:"location_from_phone,omitempty"`
	NormalizeSkills      *bool             `json:"normalize_skills,omitempty" yaml:"normalize_skills,omitempty"`
	SkillAliases         map[string]string `json:"skill_aliases,omitempty" yaml:"skill_aliases,omitempty"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `json:"port,omitempty" yaml:"port,omitempty"`
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`
	DatabaseURL    string   `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey         string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`           // Gemini API key
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	return &Config{
		Parser: ParserConfig{Profile: ProfileBasic},
		Server: ServerConfig{
			Port:           DefaultPort,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.fillDefaults()
	return &cfg, nil
}

// Load returns the file configuration when path is set and the defaults otherwise,
// with environment overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Parser.Profile == "" {
		c.Parser.Profile = ProfileBasic
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
}

// ApplyEnv overrides file values with DATABASE_URL, GEMINI_API_KEY and PORT when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Server.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Server.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Parser.Profile {
	case "", ProfileBasic, ProfileDocx:
	default:
		return fmt.Errorf("config error: unknown parser profile %q (want %s or %s)", c.Parser.Profile, ProfileBasic, ProfileDocx)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Server.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}

	if _, err := c.ParserOptions(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// ParserOptions returns the profile's parser options with this configuration's overrides applied.
func (c *Config) ParserOptions() (parsing.Options, error) {
	p := c.Parser

	opts := parsing.DefaultOptions()
	if p.Profile == ProfileDocx {
		opts = parsing.DocxOptions()
	}

	if len(p.Keywords.Summary) > 0 {
		opts.Keywords.Summary = p.Keywords.Summary
	}
	if len(p.Keywords.Experience) > 0 {
		opts.Keywords.Experience = p.Keywords.Experience
	}
	if len(p.Keywords.Education) > 0 {
		opts.Keywords.Education = p.Keywords.Education
	}
	if len(p.Keywords.Skills) > 0 {
		opts.Keywords.Skills = p.Keywords.Skills
	}

	mergeDefaults(&opts.Defaults, p.Defaults)

	if p.EmptySections != "" {
		opts.EmptySections = parsing.EmptySectionPolicy(p.EmptySections)
	}
	if p.MaxKeywordLineLength != nil {
		opts.MaxKeywordLineLength = *p.MaxKeywordLineLength
	}
	if p.LocationFromPhone != nil {
		opts.LocationFromPhone = *p.LocationFromPhone
	}
	if p.NormalizeSkills != nil {
		opts.NormalizeSkills = *p.NormalizeSkills
	}
	if len(p.SkillAliases) > 0 {
		opts.SkillAliases = p.SkillAliases
	}

	if err := opts.Validate(); err != nil {
		return parsing.Options{}, err
	}
	return opts, nil
}

// mergeDefaults copies the non-empty override values into dst
func mergeDefaults(dst *parsing.Defaults, src parsing.Defaults) {
	fields := []struct {
		dst *string
		src string
	}{
		{&dst.Summary, src.Summary},
		{&dst.JobTitle, src.JobTitle},
		{&dst.Company, src.Company},
		{&dst.Duration, src.Duration},
		{&dst.FallbackTitle, src.FallbackTitle},
		{&dst.FallbackDuration, src.FallbackDuration},
		{&dst.Degree, src.Degree},
		{&dst.Institution, src.Institution},
		{&dst.Year, src.Year},
		{&dst.Location, src.Location},
	}
	for _, f := range fields {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	if len(src.Skills) > 0 {
		dst.Skills = src.Skills
	}
}
