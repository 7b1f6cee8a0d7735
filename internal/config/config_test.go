package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-structurer/internal/llm"
	"github.com/jonathan/resume-structurer/internal/parsing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"parser": {
			"profile": "docx",
			"location_from_phone": true,
			"keywords": {"skills": ["toolbox"]}
		},
		"server": {"port": 9090, "database_url": "postgres://localhost/test"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ProfileDocx, cfg.Parser.Profile)
	require.NotNil(t, cfg.Parser.LocationFromPhone)
	assert.True(t, *cfg.Parser.LocationFromPhone)
	assert.Equal(t, []string{"toolbox"}, cfg.Parser.Keywords.Skills)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/test", cfg.Server.DatabaseURL)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
parser:
  empty_sections: empty
  normalize_skills: true
  max_keyword_line_length: 40
  skill_aliases:
    tf: Terraform
  defaults:
    location: Remote
server:
  max_upload_bytes: 1024
llm:
  provider: gemini
  models:
    lite: tiny-model
  temperature: 0.1
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ProfileBasic, cfg.Parser.Profile)
	assert.Equal(t, "empty", cfg.Parser.EmptySections)
	require.NotNil(t, cfg.Parser.MaxKeywordLineLength)
	assert.Equal(t, 40, *cfg.Parser.MaxKeywordLineLength)
	assert.Equal(t, "Terraform", cfg.Parser.SkillAliases["tf"])
	assert.Equal(t, "Remote", cfg.Parser.Defaults.Location)
	assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, DefaultPort, cfg.Server.Port)

	require.NotNil(t, cfg.LLM)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "tiny-model", cfg.LLM.GetModel(llm.TierLite))
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "config.yml", "parser: [unclosed")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "7070")

	cfg := Default()
	cfg.Server.DatabaseURL = "postgres://file/db"
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://env/db", cfg.Server.DatabaseURL)
	assert.Equal(t, "env-key", cfg.Server.APIKey)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestApplyEnv_InvalidPortIgnored(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "not-a-port")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Empty(t, cfg.Server.APIKey)
}

func TestLoad_DefaultsWithoutPath(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProfileBasic, cfg.Parser.Profile)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	negative := -1
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"default config", func(*Config) {}, ""},
		{"unknown profile", func(c *Config) { c.Parser.Profile = "latex" }, "unknown parser profile"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "'port'"},
		{"negative upload size", func(c *Config) { c.Server.MaxUploadBytes = -1 }, "'max_upload_bytes'"},
		{"bad empty-section policy", func(c *Config) { c.Parser.EmptySections = "sometimes" }, "config error"},
		{"negative keyword line length", func(c *Config) { c.Parser.MaxKeywordLineLength = &negative }, "config error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParserOptions(t *testing.T) {
	t.Run("basic profile is the default options", func(t *testing.T) {
		opts, err := Default().ParserOptions()
		require.NoError(t, err)
		assert.Equal(t, parsing.DefaultOptions(), opts)
	})

	t.Run("docx profile", func(t *testing.T) {
		cfg := Default()
		cfg.Parser.Profile = ProfileDocx
		opts, err := cfg.ParserOptions()
		require.NoError(t, err)
		assert.Equal(t, parsing.DocxOptions(), opts)
	})

	t.Run("overrides", func(t *testing.T) {
		yes := true
		limit := 30
		cfg := Default()
		cfg.Parser.Keywords.Education = []string{"training"}
		cfg.Parser.Defaults.Location = "Remote"
		cfg.Parser.Defaults.Skills = []string{"Grit"}
		cfg.Parser.EmptySections = "empty"
		cfg.Parser.LocationFromPhone = &yes
		cfg.Parser.NormalizeSkills = &yes
		cfg.Parser.MaxKeywordLineLength = &limit
		cfg.Parser.SkillAliases = map[string]string{"tf": "Terraform"}

		opts, err := cfg.ParserOptions()
		require.NoError(t, err)

		base := parsing.DefaultOptions()
		assert.Equal(t, []string{"training"}, opts.Keywords.Education)
		assert.Equal(t, base.Keywords.Skills, opts.Keywords.Skills)
		assert.Equal(t, "Remote", opts.Defaults.Location)
		assert.Equal(t, base.Defaults.Degree, opts.Defaults.Degree)
		assert.Equal(t, []string{"Grit"}, opts.Defaults.Skills)
		assert.Equal(t, parsing.EmptySectionsEmpty, opts.EmptySections)
		assert.True(t, opts.LocationFromPhone)
		assert.True(t, opts.NormalizeSkills)
		assert.Equal(t, 30, opts.MaxKeywordLineLength)
		assert.Equal(t, "Terraform", opts.SkillAliases["tf"])
	})

	t.Run("invalid override", func(t *testing.T) {
		cfg := Default()
		cfg.Parser.EmptySections = "sometimes"
		_, err := cfg.ParserOptions()
		var cfgErr *parsing.ConfigError
		require.ErrorAs(t, err, &cfgErr)
	})
}
