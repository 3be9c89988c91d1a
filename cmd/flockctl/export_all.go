package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/flock-console/internal/listview"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
	"github.com/noah-isme/flock-console/pkg/export"
	"github.com/noah-isme/flock-console/pkg/jobs"
)

type exportAllOptions struct {
	format     string
	retries    int
	retryDelay time.Duration
}

// newExportAllCmd exports the three unfiltered lists through a worker queue.
func newExportAllCmd(a *app) *cobra.Command {
	opts := &exportAllOptions{}
	cmd := &cobra.Command{
		Use:   "export-all",
		Short: "Export sheep, health events and mating pairs in one go",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExportAll(cmd.Context(), a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "csv", "export format: csv or pdf")
	cmd.Flags().IntVar(&opts.retries, "retries", 2, "extra attempts per list on backend failures")
	cmd.Flags().DurationVar(&opts.retryDelay, "retry-delay", time.Second, "wait between attempts")
	return cmd
}

// exportJob renders one list into an artifact.
type exportJob func(ctx context.Context, now time.Time, pdf bool) (export.Artifact, int, error)

func screenExport[T any](screen *listview.Screen[T]) exportJob {
	return func(ctx context.Context, now time.Time, pdf bool) (export.Artifact, int, error) {
		if err := screen.Load(ctx); err != nil {
			return export.Artifact{}, 0, err
		}
		var (
			artifact export.Artifact
			err      error
		)
		if pdf {
			artifact, err = screen.ExportPDF(now)
		} else {
			artifact, err = screen.Export(now)
		}
		return artifact, len(screen.Records()), err
	}
}

func runExportAll(ctx context.Context, a *app, opts *exportAllOptions) error {
	format := strings.ToLower(opts.format)
	if format != "csv" && format != "pdf" {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown export format %q", opts.format))
	}
	if err := a.authenticate(ctx); err != nil {
		return err
	}
	exports, err := a.exportService()
	if err != nil {
		return err
	}

	// Each screen gets its own notifier; outcomes are reported below instead.
	screenOpts := listview.Options{Logger: a.logger.Named("export")}
	work := map[string]exportJob{
		"sheep":         screenExport(listview.NewScreen(listview.Sheep(), a.sheep.All, nil, screenOpts)),
		"health-events": screenExport(listview.NewScreen(listview.HealthEvents(), a.health.All, nil, screenOpts)),
		"mating-pairs":  screenExport(listview.NewScreen(listview.MatingPairs(), a.mating.All, nil, screenOpts)),
	}
	order := []string{"sheep", "health-events", "mating-pairs"}

	now := a.now()
	type result struct {
		path    string
		records int
	}
	var resultsMu sync.Mutex
	results := make(map[string]result, len(order))

	queue := jobs.NewQueue("export", func(ctx context.Context, job jobs.Job) error {
		artifact, count, err := work[job.Type](ctx, now, format == "pdf")
		if err != nil {
			return err
		}
		path, err := exports.Save(job.Type, format, artifact)
		if err != nil {
			return err
		}
		resultsMu.Lock()
		results[job.Type] = result{path: path, records: count}
		resultsMu.Unlock()
		return nil
	}, jobs.QueueConfig{
		Workers:    len(order),
		MaxRetries: opts.retries,
		RetryDelay: opts.retryDelay,
		Retryable:  retryableExportError,
		Logger:     a.logger.Named("jobs"),
	})
	queue.Start(ctx)
	for _, entity := range order {
		if err := queue.Enqueue(jobs.Job{ID: entity, Type: entity}); err != nil {
			queue.Drain(ctx)
			return err
		}
	}
	outcomes := queue.Drain(ctx)

	failures := make(map[string]error)
	for _, o := range outcomes {
		if o.Err != nil {
			failures[o.Job.Type] = o.Err
		}
	}
	rows := make([][]string, 0, len(order))
	for _, entity := range order {
		if err, failed := failures[entity]; failed {
			rows = append(rows, []string{entity, "failed", userMessage(err)})
			continue
		}
		r, ok := results[entity]
		if !ok {
			rows = append(rows, []string{entity, "cancelled", ""})
			continue
		}
		rows = append(rows, []string{entity, fmt.Sprintf("%d records", r.records), r.path})
	}
	a.println(a.render.Table([]string{"List", "Result", "File"}, rows, ""))

	if len(failures) > 0 || len(results) < len(order) {
		return appErrors.Clone(appErrors.ErrRemote, fmt.Sprintf("%d of %d exports did not complete", len(order)-len(results), len(order)))
	}
	return nil
}

// retryableExportError retries backend and transport failures but not
// rejections that would fail the same way again.
func retryableExportError(err error) bool {
	e := appErrors.FromError(err)
	switch e.Code {
	case appErrors.ErrTransport.Code, appErrors.ErrUnavailable.Code:
		return true
	case appErrors.ErrRemote.Code:
		return e.Status == 0 || e.Status >= 500
	}
	return false
}
