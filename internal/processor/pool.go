package processor

import (
	"sync"

	"github.com/frankchang1000/csv2geojson/internal/geo"
	"github.com/frankchang1000/csv2geojson/internal/records"
)

type task struct {
	Record records.Record
	Index  int
}

type result struct {
	Err     error
	Feature geo.GeoJSONFeature
	Index   int
}

// assembleBatch transforms records on a fixed pool of workers and puts the
// features back in source order. The reported error is the one with the lowest index.
func assembleBatch(j Job, recs []records.Record) ([]geo.GeoJSONFeature, error) {
	tasks := make(chan task, len(recs))
	results := make(chan result, len(recs))

	go func() {
		for i, rec := range recs {
			tasks <- task{Record: rec, Index: i}
		}
		close(tasks)
	}()

	var wg sync.WaitGroup
	for i := 0; i < j.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				f, err := j.feature(t.Record)
				results <- result{Feature: f, Err: err, Index: t.Index}
			}
		}()
	}
	wg.Wait()
	close(results)

	features := make([]geo.GeoJSONFeature, len(recs))
	var firstErr error
	firstIndex := len(recs)
	for res := range results {
		if res.Err != nil {
			if res.Index < firstIndex {
				firstIndex = res.Index
				firstErr = res.Err
			}
			continue
		}
		features[res.Index] = res.Feature
	}

	if firstErr != nil {
		return nil, firstErr
	}

	return features, nil
}
