package catalog

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// GenerateAll builds every family concurrently and concatenates them in a fixed
// order (hotels, parks, attractions, tours) so output is deterministic for a given now.
func GenerateAll(ctx context.Context, now time.Time) ([]Entry, error) {
	var families [4][]Entry

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg, err := LoadHotelConfig()
		if err != nil {
			return err
		}
		families[0] = GenerateHotelEntries(cfg, now)
		return nil
	})
	g.Go(func() error {
		cfg, err := LoadParkConfig()
		if err != nil {
			return err
		}
		families[1] = GenerateParkEntries(cfg, now)
		return nil
	})
	g.Go(func() error {
		cfg, err := LoadAttractionConfig()
		if err != nil {
			return err
		}
		families[2] = GenerateAttractionEntries(cfg, now)
		return nil
	})
	g.Go(func() error {
		cfg, err := LoadTourConfig()
		if err != nil {
			return err
		}
		families[3] = GenerateTourEntries(cfg, now)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, f := range families {
		n += len(f)
	}
	out := make([]Entry, 0, n)
	for _, f := range families {
		out = append(out, f...)
	}
	return out, nil
}
