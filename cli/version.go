package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// the version is printed even when the config file is broken
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("htmltok version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
