package config

import "time"

// Config holds the site directories and dev-loop settings. Values are
// populated by viper from defaults, an optional config.yaml, or
// BPBLOG_* environment variables.
type Config struct {
	PostsDir     string `mapstructure:"postsDir"`
	TemplatesDir string `mapstructure:"templatesDir"`
	OutputDir    string `mapstructure:"outputDir"`
	SourceDir    string `mapstructure:"sourceDir"`
	CompileCmd   string `mapstructure:"compileCmd"`
	Port         int    `mapstructure:"port"`
	DebounceMs   int    `mapstructure:"debounceMs"`
}

// Debounce returns the watch debounce interval as a duration.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
