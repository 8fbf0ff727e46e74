package main

import (
	"os"

	"github.com/cottand/subst/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "subst [subcommand]",
	Short:        "subst instantiates generic parameters in solver terms, loaded from YAML fixtures",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	cmd.RegisterFlags(rootCmd)
	rootCmd.AddCommand(cmd.ApplyCmd)
	rootCmd.AddCommand(cmd.InspectCmd)
}
