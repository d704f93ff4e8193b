package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "v0.2.0"

var rootCmd = &cobra.Command{
	Use:   "forgeswarm",
	Short: "forgeswarm generates and repairs a project from a requirement",
	Long: "forgeswarm turns a natural-language requirement into a tested project:\n" +
		"it plans the file layout, generates each file with an external code\n" +
		"oracle, runs the suite in a container sandbox, and feeds failures back\n" +
		"until the suite passes or the retry budget is exhausted.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
}
