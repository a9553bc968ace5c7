package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"story-archiver/downloader"
	"story-archiver/source"
	"story-archiver/story"
	"story-archiver/utils"
)

type packArgs struct {
	DirPath  string `validate:"required"`
	Encoding string
	outputArgs
}

var (
	pArgs packArgs
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "pack a story from a directory",
	Long:  "pack a story from a directory holding story.yaml (or story.json) and numbered chapter files",
	RunE:  runPackage,
}

func init() {
	packCmd.Flags().StringVarP(&pArgs.DirPath, "dir-path", "d", "", "directory path")
	packCmd.Flags().StringVarP(&pArgs.Encoding, "encoding", "e", "", "encoding of the chapter files, e.g. gbk")
	bindOutputFlags(packCmd, &pArgs.outputArgs)
	RootCmd.AddCommand(packCmd)
}

func findStoryFile(dir string) (string, error) {
	for _, name := range []string{"story.yaml", "story.yml", "story.json"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("no story.yaml or story.json in %s", dir)
}

func runPackage(cmd *cobra.Command, args []string) error {
	if err := utils.ValidateStruct(pArgs); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	cfg, err := pArgs.generationConfig(cmd)
	if err != nil {
		return err
	}
	storyPath, err := findStoryFile(pArgs.DirPath)
	if err != nil {
		return err
	}
	s, err := story.LoadFile(storyPath)
	if err != nil {
		return err
	}
	chapters, err := source.LoadDir(pArgs.DirPath, source.Options{Encoding: pArgs.Encoding, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to load chapters: %v", err)
	}
	// the files on disk decide the length when the story file does not
	if s.Chapters == nil && len(chapters) > 0 {
		n := len(chapters)
		s.Chapters = &n
	}
	if len(chapters) > s.ChapterCount() {
		logger.WithField("story", s.Id).Warnf("Story declares %d chapters, ignoring %d extra files", s.ChapterCount(), len(chapters)-s.ChapterCount())
	}
	logger.WithField("story", s.Id).Infof("Packing %d chapter files", len(chapters))

	if err := pArgs.save(downloader.NewArchiver(logger), s, chapters, cfg); err != nil {
		return fmt.Errorf("failed to pack story: %v", err)
	}
	return nil
}
