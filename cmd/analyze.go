package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"story-archiver/config"
	"story-archiver/downloader"
	"story-archiver/story"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Print the normalized story for a URL as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := downloader.NewClient(config.AnalyzerURL(settings), downloader.ClientOptions{Logger: logger})
		analysis, err := client.Analyze(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		s, err := story.Normalize(analysis)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode story: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(analyzeCmd)
}
