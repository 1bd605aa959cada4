package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lutrisart/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:         "127.0.0.1:8080",
		DataDir:      "/home/user/.local/share/lutris",
		CatalogPath:  "/home/user/.local/share/lutris/pga.db",
		CoverArtDir:  "/home/user/.local/share/lutris/coverart",
		BannerDir:    "/home/user/.local/share/lutris/banners",
		LogLevel:     "INFO",
		FetchTimeout: 60 * time.Second,
	}
}

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, key := range []string{"ADDR", "LUTRIS_DATA_DIR", "CATALOG_PATH", "COVERART_DIR", "BANNER_DIR", "LOG_LEVEL", "FETCH_TIMEOUT_SECONDS", "CONFIG_FILE"} {
		t.Setenv(key, "")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyPaths(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "catalog path",
			mutate:        func(c *config.Config) { c.CatalogPath = "" },
			expectedError: "CATALOG_PATH",
		},
		{
			name:          "coverart dir",
			mutate:        func(c *config.Config) { c.CoverArtDir = "" },
			expectedError: "COVERART_DIR",
		},
		{
			name:          "banner dir",
			mutate:        func(c *config.Config) { c.BannerDir = "" },
			expectedError: "BANNER_DIR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"DEBUG", true},
		{"INFO", true},
		{"WARN", true},
		{"ERROR", true},
		{"debug", true},
		{"INVALID", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_NegativeFetchTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.FetchTimeout = -time.Second

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT_SECONDS")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "INVALID", FetchTimeout: -1}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "CATALOG_PATH cannot be empty")
	assert.Contains(t, errStr, "COVERART_DIR cannot be empty")
	assert.Contains(t, errStr, "BANNER_DIR cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "FETCH_TIMEOUT_SECONDS")
}

func TestLoad_DefaultsDeriveFromDataDir(t *testing.T) {
	clearEnv(t)
	dataDir := t.TempDir()
	t.Setenv("LUTRIS_DATA_DIR", dataDir)

	cfg := config.Load()

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr, "default must only listen on loopback")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "pga.db"), cfg.CatalogPath)
	assert.Equal(t, filepath.Join(dataDir, "coverart"), cfg.CoverArtDir)
	assert.Equal(t, filepath.Join(dataDir, "banners"), cfg.BannerDir)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultDataDirUnderHome(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.Load()

	assert.Equal(t, filepath.Join(home, ".local", "share", "lutris"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, ".local", "share", "lutris", "pga.db"), cfg.CatalogPath)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9090")
	t.Setenv("CATALOG_PATH", "custom.db")
	t.Setenv("COVERART_DIR", "/srv/covers")
	t.Setenv("BANNER_DIR", "/srv/banners")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "5")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.CatalogPath)
	assert.Equal(t, "/srv/covers", cfg.CoverArtDir)
	assert.Equal(t, "/srv/banners", cfg.BannerDir)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("FETCH_TIMEOUT_SECONDS", "soon")

	cfg := config.Load()

	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lutrisart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7070\"\nlog_level: DEBUG\ncoverart_dir: /data/covers\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg := config.Load()

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "/data/covers", cfg.CoverArtDir)
}

func TestLoad_EnvironmentBeatsConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "lutrisart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ADDR", ":6060")

	cfg := config.Load()

	assert.Equal(t, ":6060", cfg.Addr)
}
