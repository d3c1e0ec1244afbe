package blog

import (
	"path/filepath"
	"time"
)

// Config holds the file-based configuration for the blog.
type Config struct {
	Host           string `yaml:"host"`
	BaseDir        string `yaml:"base_dir"`
	ArticlesDir    string `yaml:"articles_dir"`
	DefaultArticle string `yaml:"default_article"`
	NotFoundTitle  string `yaml:"notfound_title"`
	ReserveAssets  bool   `yaml:"reserve_assets"`
	AssetsDir      string `yaml:"assets_dir"`
	History        string `yaml:"history"`
	Timezone       string `yaml:"timezone"`
	TOC            bool   `yaml:"toc"`
	Sanitize       bool   `yaml:"sanitize"`
	LogFormat      string `yaml:"log_format"`
	LogLevel       string `yaml:"log_level"`
}

// NameRules returns the validation rules configured for article names.
func (c *Config) NameRules() NameRules {
	return NameRules{ReserveAssets: c.ReserveAssets, AssetsDir: c.AssetsDir}
}

// ArticlesPath returns the article directory. A relative ArticlesDir is
// taken relative to BaseDir.
func (c *Config) ArticlesPath() string {
	if filepath.IsAbs(c.ArticlesDir) {
		return c.ArticlesDir
	}
	return filepath.Join(c.BaseDir, c.ArticlesDir)
}

// Location returns the time zone timestamps are shown in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
