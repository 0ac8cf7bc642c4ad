package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/frankchang1000/csv2geojson/internal/config"
)

func TestRunJobs_ExitCode(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.csv")
	if err := os.WriteFile(good, []byte("name,latitude,longitude\na,1,2\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	pole := filepath.Join(dir, "pole.csv")
	if err := os.WriteFile(pole, []byte("name,latitude,longitude\np,90,0\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	missing := filepath.Join(dir, "missing.csv")

	ok := func(name string) config.Job {
		return config.Job{Name: name, Input: good, Output: filepath.Join(dir, name+".geojson")}
	}
	notFound := config.Job{Name: "missing", Input: missing, Output: filepath.Join(dir, "missing.geojson")}
	outOfDomain := config.Job{Name: "pole", Input: pole, Output: filepath.Join(dir, "pole.geojson"), Mode: "mercator"}
	invalid := config.Job{Name: "invalid", Input: good, Mode: "lambert"}

	tests := []struct {
		name     string
		jobs     []config.Job
		want     int
		produced []string
	}{
		{name: "all succeed", jobs: []config.Job{ok("a"), ok("b")}, want: 0, produced: []string{"a", "b"}},
		{name: "success then missing input", jobs: []config.Job{ok("c"), notFound}, want: 2, produced: []string{"c"}},
		{name: "missing input then success", jobs: []config.Job{notFound, ok("d")}, want: 2, produced: []string{"d"}},
		{name: "invalid job", jobs: []config.Job{invalid, ok("e")}, want: 1, produced: []string{"e"}},
		{name: "first failure wins", jobs: []config.Job{outOfDomain, notFound}, want: 5},
		{name: "first failure wins over invalid", jobs: []config.Job{notFound, invalid}, want: 2},
		{name: "no jobs", want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout bytes.Buffer
			if got := runJobs(tc.jobs, &stdout); got != tc.want {
				t.Errorf("expected exit code %d, got %d", tc.want, got)
			}
			for _, name := range tc.produced {
				if _, err := os.Stat(filepath.Join(dir, name+".geojson")); err != nil {
					t.Errorf("expected output for job %s: %v", name, err)
				}
			}
			if stdout.Len() != 0 {
				t.Errorf("expected nothing on stdout, got %q", stdout.String())
			}
		})
	}
}

func TestRunJobs_StdoutWhenNoOutput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(input, []byte("name,latitude,longitude\na,1,2\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	var stdout bytes.Buffer
	if code := runJobs([]config.Job{{Name: "cli", Input: input}}, &stdout); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !bytes.Contains(stdout.Bytes(), []byte(`"FeatureCollection"`)) {
		t.Errorf("expected a feature collection on stdout, got %q", stdout.String())
	}
}
