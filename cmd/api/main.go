package main

import (
	"os"

	"github.com/spf13/cobra"
)

var envFile string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "yeti-api",
		Short:        "Yeti IT repair and request tracking API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	addServeFlags(root)
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read beneath the process environment")
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
