package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"story-archiver/config"
	"story-archiver/cover"
	"story-archiver/downloader"
	"story-archiver/model"
	"story-archiver/source"
	"story-archiver/story"
	"story-archiver/utils"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive a story from a story file or from story URLs",
	Long:  "Archive a story from a story file (JSON or YAML) or from one or more story URLs resolved by the analysis service",
	RunE:  runArchive,
}

type outputArgs struct {
	Format         string
	Template       string
	Cover          bool
	NoCover        bool
	IncludeReviews bool
	CoverTheme     string
	OutputPath     string `validate:"required"`
	GroupByAuthor  bool
}

type archiveArgs struct {
	StoryPath   string
	Urls        []string `validate:"required_without=StoryPath,dive,url"`
	ChaptersDir string
	Encoding    string
	outputArgs
}

var aArgs archiveArgs

func bindOutputFlags(cmd *cobra.Command, o *outputArgs) {
	cmd.Flags().StringVarP(&o.Format, "format", "f", "", "output format: epub, pdf, txt, html or markdown")
	cmd.Flags().StringVarP(&o.Template, "template", "t", "", "filename template, e.g. \"{author} - {title}\"")
	cmd.Flags().BoolVar(&o.Cover, "cover", true, "generate a cover")
	cmd.Flags().BoolVar(&o.NoCover, "no-cover", false, "do not generate a cover")
	cmd.Flags().BoolVar(&o.IncludeReviews, "include-reviews", false, "include reviews")
	cmd.Flags().StringVar(&o.CoverTheme, "cover-theme", "", "cover theme name")
	cmd.Flags().StringVarP(&o.OutputPath, "output-path", "o", "./stories", "output path")
	cmd.Flags().BoolVar(&o.GroupByAuthor, "group-by-author", false, "save into one directory per author")
}

func init() {
	archiveCmd.Flags().StringVarP(&aArgs.StoryPath, "story", "s", "", "story file (JSON or YAML)")
	archiveCmd.Flags().StringSliceVarP(&aArgs.Urls, "url", "u", nil, "story URL, may be repeated")
	archiveCmd.Flags().StringVarP(&aArgs.ChaptersDir, "chapters-dir", "d", "", "directory with chapter text files")
	archiveCmd.Flags().StringVarP(&aArgs.Encoding, "encoding", "e", "", "encoding of the chapter files, e.g. gbk")
	bindOutputFlags(archiveCmd, &aArgs.outputArgs)
	RootCmd.AddCommand(archiveCmd)
}

// generationConfig resolves the request flags against the loaded settings.
func (o *outputArgs) generationConfig(cmd *cobra.Command) (model.GenerationConfig, error) {
	options := &model.DownloadOptions{}
	if o.Format != "" {
		format, err := model.ParseFormat(o.Format)
		if err != nil {
			return model.GenerationConfig{}, err
		}
		options.Format = format
	}
	if cmd.Flags().Changed("cover") || cmd.Flags().Changed("no-cover") {
		generate := o.Cover && !o.NoCover
		options.GenerateCover = &generate
	}
	if cmd.Flags().Changed("include-reviews") {
		options.IncludeReviews = &o.IncludeReviews
	}

	cfg := config.Resolve(settings, options)
	if o.Template != "" {
		cfg.FilenameTemplate = o.Template
	}
	if o.CoverTheme != "" {
		if _, ok := cover.Lookup(o.CoverTheme); !ok {
			logger.WithField("theme", o.CoverTheme).Warn("Unknown cover theme, using Classic")
		}
		cfg.CoverTheme = o.CoverTheme
	}
	return cfg, nil
}

func (o *outputArgs) save(archiver *downloader.Archiver, s *model.Story, chapters []model.Chapter, cfg model.GenerationConfig) error {
	result, err := archiver.Archive(s, chapters, cfg)
	if err != nil {
		return err
	}
	dir := o.OutputPath
	if o.GroupByAuthor {
		dir = filepath.Join(dir, utils.CleanDirName(s.Author))
	}
	paths, err := downloader.Save(result, dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		logger.WithField("file", p).Info("Saved")
	}
	return nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	if err := utils.ValidateStruct(aArgs); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	cfg, err := aArgs.generationConfig(cmd)
	if err != nil {
		return err
	}

	var chapters []model.Chapter
	if aArgs.ChaptersDir != "" {
		chapters, err = source.LoadDir(aArgs.ChaptersDir, source.Options{Encoding: aArgs.Encoding, Logger: logger})
		if err != nil {
			return fmt.Errorf("failed to load chapters: %v", err)
		}
	}

	archiver := downloader.NewArchiver(logger)

	if aArgs.StoryPath != "" {
		s, err := story.LoadFile(aArgs.StoryPath)
		if err != nil {
			return err
		}
		if err := aArgs.save(archiver, s, chapters, cfg); err != nil {
			return fmt.Errorf("failed to archive story: %v", err)
		}
	}

	if len(aArgs.Urls) == 0 {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client := downloader.NewClient(config.AnalyzerURL(settings), downloader.ClientOptions{Logger: logger})
	for i, u := range aArgs.Urls {
		if i > 0 && cfg.ChapterDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.ChapterDelay):
			}
		}
		if !story.IsValidStoryURL(u) {
			logger.WithField("url", u).Warn("URL is not on a supported site, asking the analysis service anyway")
		}
		analysis, err := client.Analyze(ctx, u)
		if err != nil {
			return err
		}
		s, err := story.Normalize(analysis)
		if err != nil {
			return err
		}
		if err := aArgs.save(archiver, s, chapters, cfg); err != nil {
			return fmt.Errorf("failed to archive %s: %v", u, err)
		}
	}
	return nil
}
