package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/flock-console/internal/form"
	"github.com/noah-isme/flock-console/internal/listview"
	"github.com/noah-isme/flock-console/internal/models"
)

func newMatingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mating",
		Aliases: []string{"pairs"},
		Short:   "Manage mating pairs",
	}
	cmd.AddCommand(newMatingListCmd(a))
	cmd.AddCommand(newMatingGetCmd(a))
	cmd.AddCommand(newMatingOptionsCmd(a))
	cmd.AddCommand(newMatingAddCmd(a))
	cmd.AddCommand(newMatingEditCmd(a))
	cmd.AddCommand(newMatingDeleteCmd(a))
	cmd.AddCommand(newMatingExportCmd(a))
	return cmd
}

func (a *app) matingScreen() *listview.Screen[models.MatingPair] {
	return newScreen(a, listview.MatingPairs(), a.mating.All, a.mating.Delete)
}

const matingStatusHelp = "status filter: all, active, completed or cancelled"

func newMatingListCmd(a *app) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mating pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runList(cmd.Context(), a, a.matingScreen(), flags)
		},
	}
	flags.bind(cmd, matingStatusHelp, listview.MatingPairs().SortFields())
	return cmd
}

func newMatingGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one mating pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			pair, err := a.mating.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderRecord(a, listview.MatingPairs(), *pair)
			return nil
		},
	}
}

// newMatingOptionsCmd lists the rams and ewes the pair form accepts.
func newMatingOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List rams and ewes available for pairing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			opts, err := form.LoadMatingOptions(cmd.Context(), a.sheep)
			if err != nil {
				return err
			}
			a.println(a.render.Title("Rams"))
			a.println(a.render.Table([]string{"ID", "Tag ID", "Breed"}, stockRows(opts.Rams), "No rams available"))
			a.println(a.render.Title("Ewes"))
			a.println(a.render.Table([]string{"ID", "Tag ID", "Breed"}, stockRows(opts.Ewes), "No ewes available"))
			return nil
		},
	}
}

func stockRows(stock []models.Sheep) [][]string {
	rows := make([][]string, 0, len(stock))
	for _, s := range stock {
		rows = append(rows, []string{fmt.Sprint(s.ID), s.TagID, s.Breed})
	}
	return rows
}

func newMatingAddCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Pair a ram with a ewe",
		Example: "  flockctl mating add -f ram_id=1 -f ewe_id=2 -f start_date=2024-10-01",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			f := form.New(form.NewMatingPairDraft(a.today()),
				formOptions(a, "mating_pair", "create mating pair", "Mating pair created"))
			return runForm(cmd.Context(), a, f, flags.fields, func(ctx context.Context, d form.MatingPairDraft) error {
				req, err := d.ToRequest()
				if err != nil {
					return err
				}
				created, err := a.mating.Create(ctx, req)
				if err != nil {
					return err
				}
				a.printf("Created mating pair %d\n", created.ID)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newMatingEditCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a mating pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			current, err := a.mating.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			f := form.New(form.SeedFromMatingPair(*current),
				formOptions(a, "mating_pair", "update mating pair", "Mating pair updated"))
			return runForm(cmd.Context(), a, f, flags.fields, func(ctx context.Context, d form.MatingPairDraft) error {
				req, err := d.ToRequest()
				if err != nil {
					return err
				}
				_, err = a.mating.Update(ctx, id, req)
				return err
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newMatingDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a mating pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runDelete(cmd.Context(), a, a.matingScreen(), id, yes, func(p models.MatingPair) string {
				return fmt.Sprintf("%s x %s", p.RamName(), p.EweName())
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newMatingExportCmd(a *app) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered mating pair list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runExport(cmd.Context(), a, a.matingScreen(), flags)
		},
	}
	flags.bind(cmd, matingStatusHelp, listview.MatingPairs().SortFields())
	return cmd
}
