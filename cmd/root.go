package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"story-archiver/config"
	"story-archiver/model"
)

var (
	configPath string
	verbose    bool

	settings *model.Settings
	logger   = logrus.New()
)

var RootCmd = &cobra.Command{
	Use:           "story-archiver",
	Short:         "Archive fan fiction stories as EPUB, PDF, text, HTML or Markdown",
	Long:          "Archive fan fiction stories as EPUB, PDF, text, HTML or Markdown, with generated covers",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetLevel(logrus.InfoLevel)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		s, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load settings: %v", err)
		}
		settings = s
		logger.WithField("config", configPath).Debug("Settings loaded")
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "story-archiver.yaml", "settings file")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
}
