package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	metrics bool
}

func newRootCmd(a *app) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "flockctl",
		Short:         "Flock record keeping: sheep, health events and mating pairs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !opts.metrics {
				return nil
			}
			return a.metrics.WriteText(a.out)
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "print client metrics after the command")

	cmd.AddCommand(newSheepCmd(a))
	cmd.AddCommand(newHealthCmd(a))
	cmd.AddCommand(newMatingCmd(a))
	cmd.AddCommand(newDashboardCmd(a))
	cmd.AddCommand(newNotificationsCmd(a))
	cmd.AddCommand(newExportAllCmd(a))
	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newWhoamiCmd(a))
	cmd.AddCommand(newRegisterCmd(a))
	cmd.AddCommand(newPasswordResetCmd(a))
	return cmd
}
