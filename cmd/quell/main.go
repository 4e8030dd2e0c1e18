package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "quell",
	Short:   "Static file server with conditional-request handling",
	Long: `Quell serves directories of static files with correct cache,
CORS and conditional-request (ETag / Last-Modified) handling, and
forwards everything else to a fallthrough handler.`,
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path(s), later files override earlier ones (default: ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
