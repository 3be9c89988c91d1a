package form

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/flock-console/internal/models"
)

type breedingStock interface {
	AvailableRams(ctx context.Context) ([]models.Sheep, error)
	AvailableEwes(ctx context.Context) ([]models.Sheep, error)
}

// MatingOptions are the choices offered by the mating pair form.
type MatingOptions struct {
	Rams []models.Sheep
	Ewes []models.Sheep
}

// LoadMatingOptions fetches available rams and ewes concurrently.
func LoadMatingOptions(ctx context.Context, stock breedingStock) (MatingOptions, error) {
	var opts MatingOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		opts.Rams, err = stock.AvailableRams(gctx)
		return err
	})
	g.Go(func() (err error) {
		opts.Ewes, err = stock.AvailableEwes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return MatingOptions{}, err
	}
	return opts, nil
}
