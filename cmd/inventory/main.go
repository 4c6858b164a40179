// Command inventory runs the inventory notes service and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "inventory",
		Short:        "Inventory tracking backend for products and inbound/outbound notes",
		Version:      Version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "dotenv files to load (default .env)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(exportCmd())
	return rootCmd
}
