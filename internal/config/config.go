// Package config handles loading of conversion job files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/frankchang1000/csv2geojson/internal/geo"
	"github.com/frankchang1000/csv2geojson/internal/processor"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Defaults Job   `yaml:"defaults,omitempty"`
	Jobs     []Job `yaml:"jobs"`
}

// Job is one conversion as written in the configuration file.
type Job struct {
	// H3Resolution enables the h3 property when set.
	H3Resolution *int `yaml:"h3_resolution,omitempty"`

	Name      string `yaml:"name"`
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Mode      string `yaml:"mode,omitempty"`   // geographic | mercator
	Format    string `yaml:"format,omitempty"` // json | yaml
	Delimiter string `yaml:"delimiter,omitempty"`
	Workers   int    `yaml:"workers,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
// Defaults are applied to every job and relative paths are resolved against
// the directory of the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		job.applyDefaults(cfg.Defaults)

		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}
		job.Input = resolvePath(base, job.Input)
		job.Output = resolvePath(base, job.Output)
	}

	return &cfg, nil
}

// Select returns the jobs whose names are listed, in the order given.
// Unknown names are returned separately. An empty list selects every job.
func (c *Config) Select(names []string) (jobs []Job, unknown []string) {
	if len(names) == 0 {
		return c.Jobs, nil
	}

	available := make(map[string]Job, len(c.Jobs))
	for _, j := range c.Jobs {
		available[j.Name] = j
	}

	seen := make(map[string]bool)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if j, ok := available[name]; ok {
			jobs = append(jobs, j)
		} else {
			unknown = append(unknown, name)
		}
	}

	return jobs, unknown
}

// Build converts the configuration entry into a runnable processor job.
func (j Job) Build() (processor.Job, error) {
	mode, err := geo.ParseMode(j.Mode)
	if err != nil {
		return processor.Job{}, err
	}

	format, err := processor.ParseFormat(j.Format)
	if err != nil {
		return processor.Job{}, err
	}

	comma, err := ParseDelimiter(j.Delimiter)
	if err != nil {
		return processor.Job{}, err
	}

	pj := processor.Job{
		Name:    j.Name,
		Input:   j.Input,
		Output:  j.Output,
		Format:  format,
		Mode:    mode,
		Comma:   comma,
		Workers: j.Workers,
	}
	if j.H3Resolution != nil && *j.H3Resolution >= 0 {
		pj.H3 = true
		pj.H3Resolution = *j.H3Resolution
	}

	return pj, pj.Validate()
}

// ParseDelimiter accepts a single character or one of the names "tab", "comma",
// "semicolon", "pipe". Empty means comma.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "comma":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}

	return r, nil
}

func (j *Job) applyDefaults(d Job) {
	if j.Mode == "" {
		j.Mode = d.Mode
	}
	if j.Format == "" {
		j.Format = d.Format
	}
	if j.Delimiter == "" {
		j.Delimiter = d.Delimiter
	}
	if j.Workers == 0 {
		j.Workers = d.Workers
	}
	if j.H3Resolution == nil && d.H3Resolution != nil {
		res := *d.H3Resolution
		j.H3Resolution = &res
	}
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
