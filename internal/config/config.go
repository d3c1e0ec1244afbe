package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/danielledeleo/gitleaf/blog"
	"github.com/danielledeleo/gitleaf/internal/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file read by SetupConfig.
const DefaultFilename = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. GITLEAF_HOST.
const EnvPrefix = "GITLEAF"

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0:8080")
	v.SetDefault("base_dir", ".")
	v.SetDefault("articles_dir", "articles")
	v.SetDefault("default_article", "Hello world")
	v.SetDefault("notfound_title", "404")
	v.SetDefault("reserve_assets", true)
	v.SetDefault("assets_dir", blog.DefaultAssetsDir)
	v.SetDefault("history", "git") // git or none
	v.SetDefault("timezone", "Local")
	v.SetDefault("toc", false)
	v.SetDefault("sanitize", true)
	v.SetDefault("log_format", "pretty") // pretty, json, or text
	v.SetDefault("log_level", "info")    // debug, info, warn, error
}

// Load reads configuration from path, falling back to defaults for missing
// keys and to GITLEAF_* environment variables for overrides. found reports
// whether the file existed.
func Load(path string) (config *blog.Config, found bool, err error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(path)
	found = true
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("read config %s: %w", path, err)
		}
		found = false
	}

	config = &blog.Config{
		Host:           v.GetString("host"),
		BaseDir:        v.GetString("base_dir"),
		ArticlesDir:    v.GetString("articles_dir"),
		DefaultArticle: v.GetString("default_article"),
		NotFoundTitle:  v.GetString("notfound_title"),
		ReserveAssets:  v.GetBool("reserve_assets"),
		AssetsDir:      v.GetString("assets_dir"),
		History:        strings.ToLower(v.GetString("history")),
		Timezone:       v.GetString("timezone"),
		TOC:            v.GetBool("toc"),
		Sanitize:       v.GetBool("sanitize"),
		LogFormat:      v.GetString("log_format"),
		LogLevel:       v.GetString("log_level"),
	}

	return config, found, nil
}

// WriteDefaults writes config to path as YAML.
func WriteDefaults(path string, config *blog.Config) error {
	conf, err := os.Create(path)
	if err != nil {
		return err
	}
	defer conf.Close()

	return yaml.NewEncoder(conf).Encode(config)
}

// SetupConfig loads the configuration file and initializes the logger.
// When the file does not exist and writeDefaults is set, the defaults are
// written to it. Exits the process on failure.
func SetupConfig(path string, writeDefaults bool) *blog.Config {
	config, found, err := Load(path)
	if err != nil {
		slog.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	// Initialize logger with configured format and level
	logger.InitLogger(
		os.Stderr,
		logger.ParseLogFormat(config.LogFormat),
		logger.ParseLogLevel(config.LogLevel),
	)

	if !found && writeDefaults {
		slog.Info("config not found, writing defaults", "file", path)
		if err := WriteDefaults(path, config); err != nil {
			slog.Error("failed to write config file", "error", err)
			os.Exit(1)
		}
	}

	return config
}
