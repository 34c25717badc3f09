package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "notegate",
	Short:   "HTTP gateway for notes and canvases in S3-compatible storage",
	Long: `Notegate is a lightweight HTTP gateway that exposes plain-text notes
and JSON canvas documents stored in an S3-compatible bucket.`,
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path (default: ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configFiles resolves the config file list from the persistent flag.
// An empty list makes config.Load search ./config.yaml.
func configFiles(cmd *cobra.Command) []string {
	files, _ := cmd.Flags().GetStringSlice("config")
	return files
}
