package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"story-archiver/cover"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in cover themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBACKGROUND\tTITLE\tAUTHOR\tACCENT\tFONT")
		for _, t := range cover.Themes() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.Name, t.Background, t.TitleColor, t.AuthorColor, t.AccentColor, t.Font)
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(themesCmd)
}
