package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *APIConfig {
	return &APIConfig{
		Context: ContextConfig{Port: 8080, Host: "0.0.0.0", Path: "/api"},
		Scoring: ScoringConfig{PassPercent: 80},
		DB: DBConfig{
			Host:  "localhost",
			Names: DBNames{MATELOG: "matelog"},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*APIConfig)
	}{
		{"zero port", func(c *APIConfig) { c.Context.Port = 0 }},
		{"port out of range", func(c *APIConfig) { c.Context.Port = 70000 }},
		{"missing db host", func(c *APIConfig) { c.DB.Host = "" }},
		{"missing db name", func(c *APIConfig) { c.DB.Names.MATELOG = "" }},
		{"pass percent above 100", func(c *APIConfig) { c.Scoring.PassPercent = 101 }},
		{"negative pass percent", func(c *APIConfig) { c.Scoring.PassPercent = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &APIConfig{}
	cfg.applyDefaults()

	assert.Equal(t, 20, cfg.Pagination.PageSize)
	assert.Equal(t, 80.0, cfg.Scoring.PassPercent)
	assert.Equal(t, "working/reports", cfg.Reports.OutputDir)
	assert.Equal(t, 1.0, cfg.Authentication.LoginRatePerSec)
	assert.Equal(t, 5, cfg.Authentication.LoginBurst)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &APIConfig{
		Pagination: PaginationConfig{PageSize: 50},
		Scoring:    ScoringConfig{PassPercent: 70},
	}
	cfg.applyDefaults()

	assert.Equal(t, 50, cfg.Pagination.PageSize)
	assert.Equal(t, 70.0, cfg.Scoring.PassPercent)
}

func TestDBPasswordResolve(t *testing.T) {
	plain := DBPassword{Type: "plain", Value: "secret"}
	assert.Equal(t, "secret", plain.Resolve())

	t.Setenv("MATELOG_TEST_DB_PASSWORD", "from-env")
	env := DBPassword{Type: "env", Value: "MATELOG_TEST_DB_PASSWORD"}
	assert.Equal(t, "from-env", env.Resolve())
}
