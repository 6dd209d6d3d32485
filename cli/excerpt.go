package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heathj/htmltok/render"
)

var excerptLimit int

var excerptCmd = &cobra.Command{
	Use:   "excerpt [file]",
	Short: "Print the start of an HTML document, cut after a number of characters",
	Long: `Print the start of an HTML document with its markup, cut after --limit
visible characters. Tags still open at the cut are closed. Reading stops at
the cut, so the rest of the input is never read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := settings.Render.ExcerptLimit
		if cmd.Flags().Changed("limit") {
			limit = excerptLimit
		}

		in, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer in.Close()

		s, err := render.ExcerptOf(in, limit, settings.RenderOptions())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	excerptCmd.Flags().IntVarP(&excerptLimit, "limit", "n", 0, "visible characters to keep (default from config)")
	rootCmd.AddCommand(excerptCmd)
}
