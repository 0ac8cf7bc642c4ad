package main

import (
	"errors"
	"io"
	"os"

	"github.com/frankchang1000/csv2geojson/internal/config"
	"github.com/frankchang1000/csv2geojson/internal/failure"
	"github.com/frankchang1000/csv2geojson/internal/logger"
	"github.com/frankchang1000/csv2geojson/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile   string   `short:"c" long:"config"        env:"CONFIG_FILE"   description:"Path to a YAML jobs file; input/output flags are ignored when set"`
	Limit        []string `short:"l" long:"limit"         env:"LIMIT_NAMES"   description:"Limit processing to specific job names (with --config)"`
	Input        string   `short:"i" long:"in"            env:"INPUT_FILE"    description:"Input delimited file with latitude and longitude columns"`
	Output       string   `short:"o" long:"out"           env:"OUTPUT_FILE"   description:"Output file path. Writes to stdout if empty"`
	Mode         string   `short:"m" long:"mode"          env:"MODE"          description:"Coordinate mode" choice:"geographic" choice:"mercator" default:"geographic"`
	Format       string   `short:"f" long:"format"        env:"FORMAT"        description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Delimiter    string   `short:"d" long:"delimiter"     env:"DELIMITER"     description:"Input field delimiter (character, tab, semicolon, pipe)" default:","`
	H3Resolution int      `long:"h3-resolution"           env:"H3_RESOLUTION" description:"Add an h3 cell property at this resolution (0-15), -1 disables" default:"-1"`
	Workers      int      `short:"w" long:"workers"       env:"WORKERS"       description:"Assemble features on this many workers" default:"1"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	jobs, err := opts.jobs()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare jobs")
	}

	log.Debug().Int("jobs", len(jobs)).Msg("Starting conversion")

	os.Exit(runJobs(jobs, os.Stdout))
}

// runJobs converts every job in order and keeps going after a failure.
// The exit code is that of the first failing job: 1 for an invalid job,
// otherwise the code of its failure kind.
func runJobs(jobs []config.Job, stdout io.Writer) int {
	exitCode := 0
	for _, cj := range jobs {
		job, err := cj.Build()
		if err != nil {
			log.Error().Err(err).Str("job", cj.Name).Msg("Invalid job")
			if exitCode == 0 {
				exitCode = 1
			}
			continue
		}

		stats, err := processor.Run(job, stdout)
		if err != nil {
			logFailure(job, err)
			if exitCode == 0 {
				exitCode = failure.KindOf(err).ExitCode()
			}
			continue
		}

		log.Info().
			Str("job", job.Name).
			Str("mode", job.Mode.String()).
			Str("output", stats.Output).
			Int("features", stats.Features).
			Dur("duration", stats.Duration).
			Msg("Conversion finished")
	}
	return exitCode
}

// jobs returns the jobs from the configuration file, or a single job built from flags.
func (o Options) jobs() ([]config.Job, error) {
	if o.ConfigFile == "" {
		if o.Input == "" {
			return nil, errors.New("either --in or --config is required")
		}

		job := config.Job{
			Name:      "cli",
			Input:     o.Input,
			Output:    o.Output,
			Mode:      o.Mode,
			Format:    o.Format,
			Delimiter: o.Delimiter,
			Workers:   o.Workers,
		}
		if o.H3Resolution >= 0 {
			res := o.H3Resolution
			job.H3Resolution = &res
		}
		return []config.Job{job}, nil
	}

	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, err
	}

	jobs, unknown := cfg.Select(o.Limit)
	for _, name := range unknown {
		log.Error().
			Str("name", name).
			Msg("Job specified in --limit not found in configuration")
	}

	return jobs, nil
}

func logFailure(job processor.Job, err error) {
	ev := log.Error().Err(err).Str("job", job.Name).Str("input", job.Input)

	if fe, ok := failure.As(err); ok {
		ev = ev.Str("kind", fe.Kind.String())
		if fe.Row > 0 {
			ev = ev.Int("row", fe.Row)
		}
		if fe.Line > 0 {
			ev = ev.Int("line", fe.Line)
		}
		if fe.Field != "" {
			ev = ev.Str("field", fe.Field)
		}
	}

	ev.Msg("Conversion failed")
}
