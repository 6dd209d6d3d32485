package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heathj/htmltok/render"
)

var textCmd = &cobra.Command{
	Use:   "text [file]",
	Short: "Render an HTML document as plain text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(cmd, args)
		if err != nil {
			return err
		}
		defer in.Close()

		s, err := render.PlainText(in, settings.RenderOptions())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(textCmd)
}
