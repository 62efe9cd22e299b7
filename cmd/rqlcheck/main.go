package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petal-labs/rql/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rqlcheck",
	Short: "RQL query syntax checker",
	Long:  "rqlcheck validates resource-query language expressions such as eq(name,John).",
	// SilenceUsage prevents printing usage on every error
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().String("otlp-endpoint", "", "Export validation spans to this OTLP/HTTP endpoint URL")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("rqlcheck version %s\n", version))

	rootCmd.AddCommand(cli.NewCheckCmd())
	rootCmd.AddCommand(cli.NewNodesCmd())
	rootCmd.AddCommand(cli.NewBatchCmd())
}
