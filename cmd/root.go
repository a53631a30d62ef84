package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmose/bpblog/internal/config"
	"github.com/dmose/bpblog/internal/logging"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bpblog",
	Short: "A minimal markdown blog generator",
	Long: `bpblog turns a directory of Markdown posts with YAML frontmatter
into a static HTML site, using plain {{placeholder}} templates. The
dev command watches your posts, templates, and sources and rebuilds
the site as you edit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(verbose)
		return initializeConfig()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func initializeConfig() error {
	v := viper.New()

	v.SetDefault("postsDir", "posts")
	v.SetDefault("templatesDir", "templates")
	v.SetDefault("outputDir", "public")
	v.SetDefault("sourceDir", ".")
	v.SetDefault("compileCmd", "go build ./...")
	v.SetDefault("port", 3000)
	v.SetDefault("debounceMs", 300)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("BPBLOG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
		// No config file is fine; defaults and env cover everything.
	} else {
		logger.Debug("using config file", "path", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}
