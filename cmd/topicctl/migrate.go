package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/civic-topics-backend/internal/adapter/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := postgres.Migrate(cmd.Context(), cfg.Database.DSN)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
			return nil
		}
		for _, v := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "Applied migration %d\n", v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
