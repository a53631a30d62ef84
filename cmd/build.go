package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dmose/bpblog/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from posts and templates",
	Long: `The build command parses every Markdown post under the posts
directory, renders each one against the post template, writes the
index page over the published posts, and copies the stylesheet into
the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return site.NewBuilder(appConfig, logger).Build(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
