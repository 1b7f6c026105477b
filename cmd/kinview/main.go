package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	rawView    bool
)

func main() {
	root := &cobra.Command{
		Use:          "kinview",
		Short:        "Privacy-filtered views over a family tree",
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().StringVar(&configPath, "config", "kinview.yaml", "Project config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")
	root.PersistentFlags().BoolVar(&rawView, "raw", false, "Read the stored tree without the configured view")
	root.AddCommand(initCmd())
	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(queryCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
