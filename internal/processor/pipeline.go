// Package processor turns tabular point records into GeoJSON feature collections.
package processor

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/frankchang1000/csv2geojson/internal/geo"
	"github.com/frankchang1000/csv2geojson/internal/records"

	"github.com/rs/zerolog/log"
)

// Job describes a single conversion.
type Job struct {
	Name   string
	Input  string
	Output string // empty means the caller's writer
	Format Format
	Mode   geo.Mode

	// Comma is the input field delimiter, ',' when zero.
	Comma rune

	// H3 appends an "h3" cell property at H3Resolution.
	H3           bool
	H3Resolution int

	// Workers > 1 assembles features concurrently.
	Workers int
}

// Stats summarizes a finished job.
type Stats struct {
	Output   string
	Features int
	Duration time.Duration
}

// Validate checks the job parameters before any file is touched.
func (j Job) Validate() error {
	if j.Input == "" {
		return errors.New("input path is required")
	}
	if j.H3 && (j.H3Resolution < geo.H3MinResolution || j.H3Resolution > geo.H3MaxResolution) {
		return fmt.Errorf("h3 resolution %d outside [%d, %d]", j.H3Resolution, geo.H3MinResolution, geo.H3MaxResolution)
	}
	if j.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", j.Workers)
	}
	if _, err := ParseFormat(string(j.Format)); err != nil {
		return err
	}
	return nil
}

// Convert reads the job input and builds the feature collection in memory.
// Any failure aborts the whole conversion.
func Convert(j Job) (geo.GeoJSONFeatureCollection, error) {
	var (
		features []geo.GeoJSONFeature
		err      error
	)

	log.Debug().
		Str("job", j.Name).
		Str("input", j.Input).
		Str("mode", j.Mode.String()).
		Int("workers", j.Workers).
		Msg("Reading records")

	if j.Workers > 1 {
		var recs []records.Record
		_, recs, err = records.ReadAll(j.Input, records.Options{Comma: j.Comma})
		if err != nil {
			return geo.GeoJSONFeatureCollection{}, err
		}
		features, err = assembleBatch(j, recs)
	} else {
		features, err = assembleStream(j)
	}
	if err != nil {
		return geo.GeoJSONFeatureCollection{}, err
	}

	return geo.NewFeatureCollection(j.Mode.CRS(), features), nil
}

// assembleStream interleaves reading and assembling one record at a time.
func assembleStream(j Job) (features []geo.GeoJSONFeature, err error) {
	r, err := records.Open(j.Input, records.Options{Comma: j.Comma})
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", j.Input).Msg("Failed to close file")
		}
	}()

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		f, err := j.feature(rec)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}

	return features, nil
}

// Run converts the job input and writes the document to the job output,
// or to w when no output path is set. Nothing is written on failure.
func Run(j Job, w io.Writer) (Stats, error) {
	start := time.Now()

	if err := j.Validate(); err != nil {
		return Stats{}, err
	}

	fc, err := Convert(j)
	if err != nil {
		return Stats{}, err
	}

	data, err := Encode(fc, j.Format)
	if err != nil {
		return Stats{}, err
	}

	log.Debug().
		Str("job", j.Name).
		Int("features", len(fc.Features)).
		Str("format", string(j.Format)).
		Msg("Writing document")

	if j.Output != "" {
		if err := SaveGeoJSON(j.Output, data); err != nil {
			return Stats{}, err
		}
	} else if _, err := w.Write(data); err != nil {
		return Stats{}, fmt.Errorf("write document: %w", err)
	}

	return Stats{
		Output:   j.Output,
		Features: len(fc.Features),
		Duration: time.Since(start),
	}, nil
}
