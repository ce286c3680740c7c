package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/templui/contacts/cmd/admin/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "admin",
		Short:         "Operator tools for contacts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.CategoryCmd())
	rootCmd.AddCommand(cmd.UserCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
