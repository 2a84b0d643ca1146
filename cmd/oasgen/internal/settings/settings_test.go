package settings

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefix(t *testing.T) {
	assert.Equal(t, "OASGEN_", Prefix())
}

func TestLoadEnvDefaults(t *testing.T) {
	e, err := LoadEnvFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Env{Clean: true, LogLevel: "info"}, e)
}

func TestLoadEnvFrom(t *testing.T) {
	e, err := LoadEnvFrom(map[string]string{
		"OASGEN_SOURCE":              "https://example.com/openapi.yaml",
		"OASGEN_OUT_DIR":             "gen",
		"OASGEN_DOMAIN_TYPES_MODULE": "types.ts",
		"OASGEN_DOMAIN_NAMESPACE":    "Types",
		"OASGEN_ZOD_IMPORT":          "zod/v4",
		"OASGEN_CLEAN":               "false",
		"OASGEN_LOG_LEVEL":           "debug",
		"SOURCE":                     "ignored.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, Env{
		Source:            "https://example.com/openapi.yaml",
		OutDir:            "gen",
		DomainTypesModule: "types.ts",
		DomainNamespace:   "Types",
		ZodImport:         "zod/v4",
		Clean:             false,
		LogLevel:          "debug",
	}, e)
}

func TestLoadEnvInvalid(t *testing.T) {
	_, err := LoadEnvFrom(map[string]string{"OASGEN_CLEAN": "sometimes"})
	assert.ErrorContains(t, err, "environment")
}

func TestFlagsConfig(t *testing.T) {
	e := Env{
		Source:          "env.yaml",
		OutDir:          "env-out",
		DomainNamespace: "EnvTypes",
		Clean:           true,
	}

	tests := []struct {
		name      string
		flags     Flags
		source    string
		outDir    string
		namespace string
		clean     bool
	}{
		{
			name:      "environment fallback",
			source:    "env.yaml",
			outDir:    "env-out",
			namespace: "EnvTypes",
			clean:     true,
		},
		{
			name:      "flags win",
			flags:     Flags{Document: Source{Source: "flag.yaml"}, Out: "flag-out", Namespace: "FlagTypes"},
			source:    "flag.yaml",
			outDir:    "flag-out",
			namespace: "FlagTypes",
			clean:     true,
		},
		{
			name:      "no clean",
			flags:     Flags{NoClean: true},
			source:    "env.yaml",
			outDir:    "env-out",
			namespace: "EnvTypes",
			clean:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.flags.Config(e)
			assert.Equal(t, tt.source, cfg.Source)
			assert.Equal(t, tt.outDir, cfg.OutDir)
			assert.Equal(t, tt.namespace, cfg.DomainNamespace)
			assert.Empty(t, cfg.ZodImport)
			require.NotNil(t, cfg.Clean)
			assert.Equal(t, tt.clean, *cfg.Clean)
		})
	}
}

func TestEnvCleanFalse(t *testing.T) {
	cfg := Flags{}.Config(Env{Clean: false})
	require.NotNil(t, cfg.Clean)
	assert.False(t, *cfg.Clean)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: " warn ", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
