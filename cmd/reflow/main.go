package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬─┐┌─┐┌─┐┬  ┌─┐┬ ┬
  ├┬┘├┤ ├┤ │  │ ││││
  ┴└─└─┘└  ┴─┘└─┘└┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "reflow",
		Short: "Fine-grained reactive trees for Go",
		Long: `Reflow is a fine-grained reactive state system for Go.

Signals track their readers automatically, effects re-run when their
dependencies change, and a host-agnostic reconciler applies minimal
mutations to any live tree. Features include:

  • Signals with automatic dependency tracking
  • Effects with cleanup and batched updates
  • Keyed list reconciliation reusing live handles
  • In-memory host with a browser preview server
  • Static HTML export`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		exportCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the reflow ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
