// Package records reads delimited tabular point records.
package records

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/frankchang1000/csv2geojson/internal/failure"

	"github.com/rs/zerolog/log"
)

// Coordinate field names. Matching is case-sensitive.
const (
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
)

const utf8BOM = "\ufeff"

// Options tune the tabular parser.
type Options struct {
	// Comma is the field delimiter, ',' when zero.
	Comma rune
}

// Reader yields records in source order. A Reader is single pass.
type Reader struct {
	file   *os.File
	csv    *csv.Reader
	path   string
	header []string
	row    int
}

// Open opens path read-only and consumes the header row.
// The caller must Close the Reader; ReadAll does that on every path.
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.New(failure.SourceNotFound, err).WithPath(path)
	}

	r, err := newReader(f, path, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.file = f

	return r, nil
}

func newReader(src io.Reader, path string, opts Options) (*Reader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	// quotes inside unquoted fields are kept as literal text
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, failure.Newf(failure.MalformedInput, "missing header row").WithPath(path)
	}
	if err != nil {
		return nil, parseError(err, path, 0)
	}

	header = slices.Clone(header)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	for _, required := range []string{FieldLatitude, FieldLongitude} {
		if !slices.Contains(header, required) {
			return nil, failure.Newf(failure.MalformedInput, "header has no %q column", required).
				WithPath(path).
				AtLine(1).
				InField(required)
		}
	}

	log.Debug().
		Str("path", path).
		Strs("header", header).
		Msg("Header parsed")

	return &Reader{csv: cr, path: path, header: header}, nil
}

// Header returns the field names in source order.
func (r *Reader) Header() []string {
	return slices.Clone(r.header)
}

// Next returns the next record, or io.EOF after the last one.
func (r *Reader) Next() (Record, error) {
	values, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, parseError(err, r.path, r.row+1)
	}
	r.row++

	if len(values) != len(r.header) {
		line, _ := r.csv.FieldPos(0)
		return Record{}, failure.Newf(failure.MalformedInput,
			"expected %d fields, got %d", len(r.header), len(values)).
			WithPath(r.path).
			AtRow(r.row).
			AtLine(line)
	}

	line, _ := r.csv.FieldPos(0)

	return Record{
		header: r.header,
		values: slices.Clone(values),
		row:    r.row,
		line:   line,
	}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadAll opens path, reads every record and closes the file on all exit paths.
// Any error aborts the read and no records are returned.
func ReadAll(path string, opts Options) (header []string, recs []Record, err error) {
	r, err := Open(path, opts)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		recs = append(recs, rec)
	}

	return r.Header(), recs, nil
}

// parseError converts a csv parse failure into MalformedInput with its position.
// Plain I/O errors mean the source is unreadable.
func parseError(err error, path string, row int) error {
	var pe *csv.ParseError
	if !errors.As(err, &pe) {
		return failure.New(failure.SourceNotFound, err).WithPath(path)
	}

	return failure.New(failure.MalformedInput, pe.Err).
		WithPath(path).
		AtRow(row).
		AtLine(pe.Line)
}
