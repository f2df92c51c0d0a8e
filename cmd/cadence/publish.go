package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPublishCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish every due schedule once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, closeDB, err := c.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := a.NewPublisher("").RunOnce(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "posted %d, failed %d\n", result.Posted, result.Failed)
			return err
		},
	}
}
