package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/flock-console/internal/listview"
	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

const priorityHelp = "priority filter: all, high or normal"

func newNotificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"reminders"},
		Short:   "Show overdue health events and upcoming mating windows",
	}
	cmd.AddCommand(newNotificationsListCmd(a))
	cmd.AddCommand(newNotificationsExportCmd(a))
	return cmd
}

func (a *app) notificationScreen(category string) (*listview.Screen[models.Notification], error) {
	feed := models.NotificationCategory(category)
	if !feed.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %q: use health, mating or weaning", category))
	}
	load := func(ctx context.Context) ([]models.Notification, error) {
		return a.reminders.List(ctx, feed)
	}
	return newScreen(a, listview.Notifications(), load, nil), nil
}

func newNotificationsListCmd(a *app) *cobra.Command {
	var (
		flags    listFlags
		category string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen, err := a.notificationScreen(category)
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runList(cmd.Context(), a, screen, flags)
		},
	}
	flags.bind(cmd, priorityHelp, listview.Notifications().SortFields())
	cmd.Flags().StringVar(&category, "category", "", "feed: health, mating or weaning (default all)")
	return cmd
}

func newNotificationsExportCmd(a *app) *cobra.Command {
	var (
		flags    exportFlags
		category string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered notification list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen, err := a.notificationScreen(category)
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runExport(cmd.Context(), a, screen, flags)
		},
	}
	flags.bind(cmd, priorityHelp, listview.Notifications().SortFields())
	cmd.Flags().StringVar(&category, "category", "", "feed: health, mating or weaning (default all)")
	return cmd
}
