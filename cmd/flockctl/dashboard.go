package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/flock-console/internal/ui"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show flock counters and recent health events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			summary, err := a.dashboard.Summary(cmd.Context())
			if err != nil {
				return err
			}
			a.println(a.render.Title("Dashboard"))
			a.println(a.render.Summary([]ui.Pair{
				{Label: "Total sheep", Value: strconv.Itoa(summary.TotalSheep)},
				{Label: "Active sheep", Value: strconv.Itoa(summary.ActiveSheep)},
				{Label: "Overdue health", Value: strconv.Itoa(summary.OverdueHealth)},
				{Label: "Upcoming tasks", Value: strconv.Itoa(summary.UpcomingTasks)},
				{Label: "Active pairs", Value: strconv.Itoa(summary.ActiveMatingPairs)},
			}))
			rows := make([][]string, 0, len(summary.RecentHealthEvents))
			for _, e := range summary.RecentHealthEvents {
				rows = append(rows, []string{fmt.Sprint(e.ID), e.SheepID, e.EventDate.String(), string(e.EventType), e.Details})
			}
			a.println(a.render.Title("Recent health events"))
			a.println(a.render.Table([]string{"ID", "Sheep", "Event Date", "Event Type", "Details"}, rows, "No health events recorded"))
			return nil
		},
	}
}
