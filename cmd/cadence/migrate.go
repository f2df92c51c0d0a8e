package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeDB, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			closeDB()
			fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", c.cfg.DB.Path)
			return nil
		},
	}
}
