package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"story-archiver/config"
	"story-archiver/cover"
	"story-archiver/story"
	"story-archiver/utils"
)

type coverArgs struct {
	StoryPath string `validate:"required"`
	Theme     string
	Output    string
	Overrides cover.Theme
}

var cArgs coverArgs

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Render a cover image for a story file",
	Long:  "Render a cover image for a story file, optionally overriding theme colours and font",
	RunE:  runCover,
}

func init() {
	f := coverCmd.Flags()
	f.StringVarP(&cArgs.StoryPath, "story", "s", "", "story file (JSON or YAML)")
	f.StringVar(&cArgs.Theme, "theme", "", "cover theme name")
	f.StringVarP(&cArgs.Output, "output", "o", "", "output PNG path (default derived from the filename template)")
	f.StringVar(&cArgs.Overrides.Background, "background", "", "background colour or linear-gradient()")
	f.StringVar(&cArgs.Overrides.TitleColor, "title-color", "", "title colour")
	f.StringVar(&cArgs.Overrides.AuthorColor, "author-color", "", "author colour")
	f.StringVar(&cArgs.Overrides.AccentColor, "accent-color", "", "accent colour")
	f.StringVar(&cArgs.Overrides.Font, "font", "", "CSS font stack")
	RootCmd.AddCommand(coverCmd)
}

func runCover(cmd *cobra.Command, args []string) error {
	if err := utils.ValidateStruct(cArgs); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	s, err := story.LoadFile(cArgs.StoryPath)
	if err != nil {
		return err
	}
	cfg := config.Resolve(settings, nil)
	theme := cfg.CoverTheme
	if cArgs.Theme != "" {
		theme = cArgs.Theme
	}

	renderer := cover.NewRenderer(1)
	renderer.Logger = logger
	png, err := renderer.Generate(s, theme, cArgs.Overrides)
	if err != nil {
		return fmt.Errorf("failed to render cover: %v", err)
	}

	out := cArgs.Output
	if out == "" {
		out = utils.RenderFilename(cfg.FilenameTemplate, s) + ".png"
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("failed to write cover: %v", err)
	}
	logger.WithField("file", out).Info("Saved cover")
	return nil
}
