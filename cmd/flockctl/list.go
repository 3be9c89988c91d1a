package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/form"
	"github.com/noah-isme/flock-console/internal/listview"
	"github.com/noah-isme/flock-console/internal/notify"
	"github.com/noah-isme/flock-console/internal/ui"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
	"github.com/noah-isme/flock-console/pkg/export"
)

// listFlags are the view-state flags shared by list and export commands.
type listFlags struct {
	search  string
	status  string
	sort    string
	order   string
	page    int
	retries int
}

func (f *listFlags) bind(cmd *cobra.Command, statusHelp string, sortFields []string) {
	flags := cmd.Flags()
	flags.StringVar(&f.search, "search", "", "case-insensitive search term")
	flags.StringVar(&f.status, "status", listview.StatusAll, statusHelp)
	flags.StringVar(&f.sort, "sort", "", "sort field: "+strings.Join(sortFields, ", "))
	flags.StringVar(&f.order, "order", "", "sort order: asc or desc")
	flags.IntVar(&f.page, "page", 1, "page number")
	flags.IntVar(&f.retries, "retries", 0, "retry a failed load this many times")
}

func newScreen[T any](a *app, spec listview.Spec[T], load listview.Loader[T], remove listview.Deleter) *listview.Screen[T] {
	return listview.NewScreen(spec, load, remove, listview.Options{
		PageSize: a.cfg.List.PageSize,
		Notifier: a.notifier,
		Logger:   a.logger.Named("list"),
	})
}

// applyListFlags sets search, status and sort before the page, since each of
// them resets the page to 1.
func applyListFlags[T any](screen *listview.Screen[T], f listFlags) error {
	screen.SetSearch(f.search)
	screen.SetStatus(f.status)
	if f.sort != "" || f.order != "" {
		q := screen.Query()
		field, order := q.SortField, q.SortOrder
		if f.sort != "" {
			field = f.sort
		}
		switch strings.ToLower(f.order) {
		case "":
		case string(listview.Asc):
			order = listview.Asc
		case string(listview.Desc):
			order = listview.Desc
		default:
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown sort order %q", f.order))
		}
		if err := screen.SetSort(field, order); err != nil {
			return err
		}
	}
	screen.SetPage(f.page)
	return nil
}

// loadScreen loads the collection, retrying through the failure banner up to
// retries times.
func loadScreen[T any](ctx context.Context, a *app, screen *listview.Screen[T], retries int) error {
	err := screen.Load(ctx)
	for attempt := 0; err != nil && attempt < retries; attempt++ {
		id, ok := retryableBanner(a.notifier)
		if !ok {
			break
		}
		a.logger.Debug("retrying load", zap.Int("attempt", attempt+1))
		_, err = a.notifier.Retry(ctx, id)
	}
	if err != nil {
		a.flushBanners(a.notifier)
		return err
	}
	return nil
}

func retryableBanner(n *notify.Notifier) (string, bool) {
	banners := n.List()
	for i := len(banners) - 1; i >= 0; i-- {
		if banners[i].Retryable() {
			return banners[i].ID, true
		}
	}
	return "", false
}

func runList[T any](ctx context.Context, a *app, screen *listview.Screen[T], f listFlags) error {
	if err := loadScreen(ctx, a, screen, f.retries); err != nil {
		return err
	}
	if err := applyListFlags(screen, f); err != nil {
		return err
	}
	renderPage(a, screen.Spec(), screen.View())
	return nil
}

func renderPage[T any](a *app, spec listview.Spec[T], page listview.Page[T]) {
	headers := append([]string{"ID"}, spec.Export.Headers...)
	rows := make([][]string, 0, len(page.Items))
	for _, record := range page.Items {
		rows = append(rows, append([]string{strconv.FormatInt(spec.ID(record), 10)}, spec.Export.Row(record)...))
	}
	a.println(a.render.Title(spec.Export.Title))
	a.println(a.render.Table(headers, rows, fmt.Sprintf("No %s found", spec.Plural)))
	a.println(a.render.PageFooter(page.From, page.To, page.TotalItems, page.Page, page.TotalPages))
}

// renderRecord prints one record as label/value lines.
func renderRecord[T any](a *app, spec listview.Spec[T], record T) {
	values := spec.Export.Row(record)
	pairs := make([]ui.Pair, 0, len(values)+1)
	pairs = append(pairs, ui.Pair{Label: "ID", Value: strconv.FormatInt(spec.ID(record), 10)})
	for i, header := range spec.Export.Headers {
		if i < len(values) {
			pairs = append(pairs, ui.Pair{Label: header, Value: values[i]})
		}
	}
	a.println(a.render.Summary(pairs))
}

type exportFlags struct {
	listFlags
	format string
}

func (f *exportFlags) bind(cmd *cobra.Command, statusHelp string, sortFields []string) {
	f.listFlags.bind(cmd, statusHelp, sortFields)
	cmd.Flags().StringVar(&f.format, "format", "csv", "export format: csv or pdf")
}

// runExport writes the filtered, sorted view (all pages) to the export dir.
func runExport[T any](ctx context.Context, a *app, screen *listview.Screen[T], f exportFlags) error {
	format := strings.ToLower(f.format)
	if format != "csv" && format != "pdf" {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format %q", f.format))
	}
	exports, err := a.exportService()
	if err != nil {
		return err
	}
	if err := loadScreen(ctx, a, screen, f.retries); err != nil {
		return err
	}
	if err := applyListFlags(screen, f.listFlags); err != nil {
		return err
	}

	var artifact export.Artifact
	if format == "pdf" {
		artifact, err = screen.ExportPDF(a.now())
	} else {
		artifact, err = screen.Export(a.now())
	}
	if err != nil {
		return err
	}
	spec := screen.Spec()
	path, err := exports.Save(spec.Export.Prefix, format, artifact)
	if err != nil {
		return err
	}
	a.printf("Exported %d %s to %s\n", len(screen.Filtered()), spec.Plural, path)
	return nil
}

// runDelete loads the list, asks for confirmation unless yes is set and
// deletes the record with id.
func runDelete[T any](ctx context.Context, a *app, screen *listview.Screen[T], id int64, yes bool, describe func(T) string) error {
	if err := loadScreen(ctx, a, screen, 0); err != nil {
		return err
	}
	spec := screen.Spec()
	confirm := func(record T) bool {
		if yes {
			return true
		}
		return a.confirm(fmt.Sprintf("Delete %s %s?", spec.Singular, describe(record)))
	}
	deleted, err := screen.Delete(ctx, id, confirm)
	a.flushBanners(a.notifier)
	if err != nil {
		return err
	}
	if !deleted {
		a.println("Cancelled")
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

// formFlags collect --field name=value pairs for create and edit commands.
type formFlags struct {
	fields map[string]string
}

func (f *formFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringToStringVarP(&f.fields, "field", "f", nil, "field value as name=value, repeatable")
}

func formOptions(a *app, name, action, success string) form.Options {
	return form.Options{
		Name:           name,
		Action:         action,
		SuccessMessage: success,
		ConfirmDelay:   a.cfg.Forms.ConfirmDelay,
		Notifier:       a.notifier,
		Metrics:        a.metrics,
		Logger:         a.logger.Named("form"),
	}
}

// runForm fills f from values, submits it and waits out the confirmation
// before returning.
func runForm[D any](ctx context.Context, a *app, f *form.Form[D], values map[string]string, submit form.SubmitFunc[D]) error {
	fields := f.Fields()
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if !slices.Contains(fields, key) {
			return f.Set(key, values[key])
		}
	}
	if err := f.SetAll(values, fields); err != nil {
		return err
	}
	if err := f.Submit(ctx, submit); err != nil {
		if !appErrors.IsValidation(err) {
			a.flushBanners(a.notifier)
		}
		return err
	}
	a.println(a.render.Banner(notify.Banner{Kind: notify.KindSuccess, Title: "Success", Message: f.Message()}))
	return f.AwaitNavigate(ctx)
}
