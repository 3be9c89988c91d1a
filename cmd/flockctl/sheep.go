package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/flock-console/internal/form"
	"github.com/noah-isme/flock-console/internal/listview"
	"github.com/noah-isme/flock-console/internal/models"
)

func newSheepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sheep",
		Aliases: []string{"flock"},
		Short:   "Manage registered sheep",
	}
	cmd.AddCommand(newSheepListCmd(a))
	cmd.AddCommand(newSheepGetCmd(a))
	cmd.AddCommand(newSheepAddCmd(a))
	cmd.AddCommand(newSheepEditCmd(a))
	cmd.AddCommand(newSheepDeleteCmd(a))
	cmd.AddCommand(newSheepExportCmd(a))
	cmd.AddCommand(newBreedingStockCmd(a, "rams", "List active rams available for mating", a.sheep.AvailableRams))
	cmd.AddCommand(newBreedingStockCmd(a, "ewes", "List active ewes available for mating", a.sheep.AvailableEwes))
	return cmd
}

type sheepFilterFlags struct {
	sex     string
	section string
	breed   string
}

func (f *sheepFilterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sex, "sex", "", "server-side filter: male or female")
	cmd.Flags().StringVar(&f.section, "section", "", "server-side filter: male, general or mating")
	cmd.Flags().StringVar(&f.breed, "breed", "", "server-side filter by breed")
}

func (a *app) sheepScreen(filter sheepFilterFlags) *listview.Screen[models.Sheep] {
	load := func(ctx context.Context) ([]models.Sheep, error) {
		return a.sheep.List(ctx, models.SheepFilter{
			Sex:     models.SheepSex(filter.sex),
			Section: models.SheepSection(filter.section),
			Breed:   filter.breed,
		})
	}
	return newScreen(a, listview.Sheep(), load, a.sheep.Delete)
}

func newSheepListCmd(a *app) *cobra.Command {
	var (
		flags  listFlags
		filter sheepFilterFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sheep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runList(cmd.Context(), a, a.sheepScreen(filter), flags)
		},
	}
	flags.bind(cmd, "status filter: all, active, sold or deceased", listview.Sheep().SortFields())
	filter.bind(cmd)
	return cmd
}

func newSheepGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one sheep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			sheep, err := a.sheep.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			renderRecord(a, listview.Sheep(), *sheep)
			return nil
		},
	}
}

func newSheepAddCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Register a sheep",
		Example: "  flockctl sheep add -f tag_id=UK0123 -f breed=Texel -f sex=female -f date_of_birth=2023-03-14",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			f := form.New(form.SheepDraft{Status: string(models.SheepActive), CurrentSection: string(models.SectionGeneral)},
				formOptions(a, "sheep", "register sheep", "Sheep registered"))
			return runForm(cmd.Context(), a, f, flags.fields, func(ctx context.Context, d form.SheepDraft) error {
				req, err := d.ToRequest()
				if err != nil {
					return err
				}
				created, err := a.sheep.Create(ctx, req)
				if err != nil {
					return err
				}
				a.printf("Registered sheep %d (%s)\n", created.ID, created.TagID)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newSheepEditCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:     "edit <id>",
		Short:   "Update a sheep, including recording a sale or death",
		Example: "  flockctl sheep edit 3 -f status=sold -f sale_date=2024-06-02 -f sale_price=180",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			current, err := a.sheep.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			f := form.New(form.SeedSheepEdit(*current), formOptions(a, "sheep", "update sheep", "Sheep updated"))
			return runForm(cmd.Context(), a, f, flags.fields, func(ctx context.Context, d form.SheepEditDraft) error {
				req, err := d.ToUpdate()
				if err != nil {
					return err
				}
				_, err = a.sheep.Update(ctx, id, req)
				return err
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newSheepDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sheep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runDelete(cmd.Context(), a, a.sheepScreen(sheepFilterFlags{}), id, yes, func(s models.Sheep) string {
				return s.TagID
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newSheepExportCmd(a *app) *cobra.Command {
	var (
		flags  exportFlags
		filter sheepFilterFlags
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered sheep list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			return runExport(cmd.Context(), a, a.sheepScreen(filter), flags)
		},
	}
	flags.bind(cmd, "status filter: all, active, sold or deceased", listview.Sheep().SortFields())
	filter.bind(cmd)
	return cmd
}

func newBreedingStockCmd(a *app, use, short string, fetch func(context.Context) ([]models.Sheep, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.authenticate(cmd.Context()); err != nil {
				return err
			}
			stock, err := fetch(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(stock))
			for _, s := range stock {
				rows = append(rows, []string{fmt.Sprint(s.ID), s.TagID, s.Breed, s.DateOfBirth.String()})
			}
			a.println(a.render.Table([]string{"ID", "Tag ID", "Breed", "Date of Birth"}, rows, "None available"))
			return nil
		},
	}
}
