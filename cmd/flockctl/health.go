package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/flock-console/internal/form"
	"github.com/noah-isme/flock-console/internal/listview"
	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

func newHealthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Manage health events",
	}
	cmd.AddCommand(newHealthListCmd(a))
	cmd.AddCommand(newHealthOverdueCmd(a))
	cmd.AddCommand(newHealthGetCmd(a))
	cmd.AddCommand(newHealthAddCmd(a))
	cmd.AddCommand(newHealthEditCmd(a))
	cmd.AddCommand(newHealthDeleteCmd(a))
	cmd.AddCommand(newHealthExportCmd(a))
	return cmd
}

type healthFilterFlags struct {
	sheep string
	from  string
	to    string
}

func (f *healthFilterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sheep, "sheep", "", "server-side filter by sheep")
	cmd.Flags().StringVar(&f.from, "from", "", "server-side filter: events on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "server-side filter: events on or before YYYY-MM-DD")
}

func (f healthFilterFlags) filter() (models.HealthEventFilter, error) {
	from, err := models.ParseDate(f.from)
	if err != nil {
		return models.HealthEventFilter{}, appErrors.Clone(appErrors.ErrValidation, "--from: "+err.Error())
	}
	to, err := models.ParseDate(f.to)
	if err != nil {
		return models.HealthEventFilter{}, appErrors.Clone(appErrors.ErrValidation, "--to: "+err.Error())
	}
	return models.HealthEventFilter{SheepID: strings.TrimSpace(f.sheep), StartDate: from.Ptr(), EndDate: to.Ptr()}, nil
}

func (a *app) healthScreen(filter models.HealthEventFilter) *listview.Screen[models.HealthEvent] {
	load := func(ctx context.Context) ([]models.HealthEvent, error) {
		return a.health.List(ctx, filter)
	}
	return newScreen(a, listview.HealthEvents(), load, a.health.Delete)
}

func eventTypeHelp() string {
	types := make([]string, 0, len(models.EventTypes))
	for _, t := range models.EventTypes {
		types = append(types, string(t))
	}
	return "event type filter: all, " + strings.Join(types, ", ")
}

func newHealthListCmd(a *app) *cobra.Command {
	var (
		flags  listFlags
		filter healthFilterFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List health events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := filter.filter()
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runList(cmd.Context(), a, a.healthScreen(server), flags)
		},
	}
	flags.bind(cmd, eventTypeHelp(), listview.HealthEvents().SortFields())
	filter.bind(cmd)
	return cmd
}

func newHealthOverdueCmd(a *app) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "List health events whose follow-up is overdue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			screen := newScreen(a, listview.HealthEvents(), a.health.Overdue, nil)
			return runList(cmd.Context(), a, screen, flags)
		},
	}
	flags.bind(cmd, eventTypeHelp(), listview.HealthEvents().SortFields())
	return cmd
}

func newHealthGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one health event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			event, err := a.health.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderRecord(a, listview.HealthEvents(), *event)
			if event.Overdue(a.today()) {
				a.println(a.render.Title("Follow-up overdue"))
			}
			return nil
		},
	}
}

func newHealthAddCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record a health event",
		Example: "  flockctl health add -f sheep_id=UK0123 -f event_type=vaccination -f details=\"Clostridial booster\"",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			f := form.New(form.NewHealthEventDraft(a.today()),
				formOptions(a, "health_event", "create health event", "Health event recorded"))
			return runForm(cmd.Context(), a, f, flags.fields, func(ctx context.Context, d form.HealthEventDraft) error {
				req, err := d.ToRequest()
				if err != nil {
					return err
				}
				created, err := a.health.Create(ctx, req)
				if err != nil {
					return err
				}
				a.printf("Recorded health event %d\n", created.ID)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newHealthEditCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a health event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			current, err := a.health.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			f := form.New(form.SeedFromHealthEvent(*current),
				formOptions(a, "health_event", "update health event", "Health event updated"))
			return runForm(cmd.Context(), a, f, flags.fields, func(ctx context.Context, d form.HealthEventDraft) error {
				req, err := d.ToUpdate()
				if err != nil {
					return err
				}
				_, err = a.health.Update(ctx, id, req)
				return err
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newHealthDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a health event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runDelete(cmd.Context(), a, a.healthScreen(models.HealthEventFilter{}), id, yes, func(e models.HealthEvent) string {
				return fmt.Sprintf("%s for %s on %s", e.EventType, e.SheepID, e.EventDate)
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newHealthExportCmd(a *app) *cobra.Command {
	var (
		flags  exportFlags
		filter healthFilterFlags
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered health event list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server, err := filter.filter()
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runExport(cmd.Context(), a, a.healthScreen(server), flags)
		},
	}
	flags.bind(cmd, eventTypeHelp(), listview.HealthEvents().SortFields())
	filter.bind(cmd)
	return cmd
}
