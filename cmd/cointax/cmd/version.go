package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the cointax CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cointax version %s\n", version)
		fmt.Println("Per-asset ledgers from cryptocurrency exchange exports")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
