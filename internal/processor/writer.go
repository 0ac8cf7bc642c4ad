package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/frankchang1000/csv2geojson/internal/failure"
	"github.com/frankchang1000/csv2geojson/internal/geo"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Format is the output document encoding.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, geojson, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json", "geojson":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Encode serializes the collection, pretty-printed with a stable key order.
func Encode(fc geo.GeoJSONFeatureCollection, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatJSON, "":
		data, err := json.MarshalIndent(fc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil

	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// writeFile is replaced in tests to simulate a failing destination.
var writeFile = renameio.WriteFile

// SaveGeoJSON writes data to path atomically. On failure the destination is left
// untouched and any parent directories created for it are removed again.
func SaveGeoJSON(path string, data []byte) error {
	created, err := mkdirParents(filepath.Dir(path))
	if err != nil {
		return failure.New(failure.DestinationWrite, err).WithPath(path)
	}

	if err := writeFile(path, data, 0644); err != nil {
		removeDirs(created)
		return failure.New(failure.DestinationWrite, err).WithPath(path)
	}

	log.Debug().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("Document written")

	return nil
}

// mkdirParents creates dir and returns the directories that did not exist before,
// deepest first.
func mkdirParents(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); !os.IsNotExist(err) {
			break
		}
		missing = append(missing, d)
		if filepath.Dir(d) == d {
			break
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		removeDirs(missing)
		return nil, err
	}
	return missing, nil
}

func removeDirs(dirs []string) {
	for _, d := range dirs {
		if err := os.Remove(d); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", d).Msg("Failed to remove directory")
		}
	}
}
