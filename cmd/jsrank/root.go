package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for jsrank.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsrank",
		Short: "Rank the JavaScript files used by search results",
		Long: `jsrank searches the web for a term, downloads every result page and
counts the JavaScript files referenced by <script src> tags.

The most frequently referenced file names are printed at the end, highest
count first.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
