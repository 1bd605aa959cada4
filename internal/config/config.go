package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr         string
	DataDir      string
	CatalogPath  string
	CoverArtDir  string
	BannerDir    string
	LogLevel     string
	FetchTimeout time.Duration
}

// Load reads configuration from a .env file (if present), an optional
// CONFIG_FILE and environment variables, applying defaults derived from the
// user's home directory when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			log.Printf("could not read config file %s: %v", file, err)
		}
	}

	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("lutris_data_dir", defaultDataDir())
	v.SetDefault("log_level", "INFO")
	v.SetDefault("fetch_timeout_seconds", 60)

	dataDir := v.GetString("lutris_data_dir")
	v.SetDefault("catalog_path", filepath.Join(dataDir, "pga.db"))
	v.SetDefault("coverart_dir", filepath.Join(dataDir, "coverart"))
	v.SetDefault("banner_dir", filepath.Join(dataDir, "banners"))

	return Config{
		Addr:         v.GetString("addr"),
		DataDir:      dataDir,
		CatalogPath:  v.GetString("catalog_path"),
		CoverArtDir:  v.GetString("coverart_dir"),
		BannerDir:    v.GetString("banner_dir"),
		LogLevel:     v.GetString("log_level"),
		FetchTimeout: time.Duration(intOr(v, "fetch_timeout_seconds", 60)) * time.Second,
	}
}

// defaultDataDir mirrors where Lutris keeps its data. Without a home
// directory the path degrades to a root-relative one.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(string(filepath.Separator), home, ".local", "share", "lutris")
}

func intOr(v *viper.Viper, key string, def int) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid value for %s=%q, using default %d", strings.ToUpper(key), raw, def)
		return def
	}
	return i
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.CatalogPath == "" {
		errs = append(errs, errors.New("CATALOG_PATH cannot be empty"))
	}
	if c.CoverArtDir == "" {
		errs = append(errs, errors.New("COVERART_DIR cannot be empty"))
	}
	if c.BannerDir == "" {
		errs = append(errs, errors.New("BANNER_DIR cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.FetchTimeout < 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT_SECONDS cannot be negative, got %v", c.FetchTimeout))
	}

	return errors.Join(errs...)
}
