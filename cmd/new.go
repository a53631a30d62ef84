package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmose/bpblog/internal/post"
)

var newDraft bool

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Creates a new post file with a frontmatter scaffold",
	Long: `The new command creates posts/YYYY-MM-DD-<slug>.md with the
frontmatter filled in from the given title and today's date. Pass a
slug-like name ("hello-world") and the title is derived from it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(args[0])
	},
}

func runNew(title string) error {
	slug := post.Slugify(title)
	if slug == "" {
		return fmt.Errorf("cannot derive a slug from %q", title)
	}

	// "hello-world" becomes the title "Hello World"; anything with
	// spacing or casing of its own is kept verbatim.
	if title == slug {
		titleCaser := cases.Title(language.English)
		title = titleCaser.String(strings.ReplaceAll(slug, "-", " "))
	}

	now := time.Now()
	// Midnight UTC keeps the emitted date plain so it decodes back
	// into a timestamp when the post is parsed.
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	scaffold := struct {
		Title string    `yaml:"title"`
		Date  time.Time `yaml:"date"`
		Tags  []string  `yaml:"tags"`
		Draft bool      `yaml:"draft,omitempty"`
	}{
		Title: title,
		Date:  day,
		Tags:  []string{},
		Draft: newDraft,
	}
	fm, err := yaml.Marshal(scaffold)
	if err != nil {
		return fmt.Errorf("marshalling frontmatter: %w", err)
	}

	filename := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), slug, post.Extension)
	path := filepath.Join(appConfig.PostsDir, filename)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(appConfig.PostsDir, 0o755); err != nil {
		return fmt.Errorf("creating posts directory: %w", err)
	}

	content := fmt.Sprintf("---\n%s---\n\n", fm)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("post created", "path", path)
	return nil
}

func init() {
	newCmd.Flags().BoolVar(&newDraft, "draft", false, "mark the new post as a draft")
	rootCmd.AddCommand(newCmd)
}
